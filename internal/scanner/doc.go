// Package scanner owns one duplicate-detection session: collection,
// concurrent fingerprinting, grouping, audio refinement and canonical
// ordering. All aggregation state lives on the session; there are no
// package globals, and concurrent scans do not observe each other.
package scanner
