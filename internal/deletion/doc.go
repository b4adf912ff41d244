// Package deletion executes a caller-chosen deletion set over duplicate
// groups with per-file failure isolation. Removal is irreversible; the
// batch always runs to completion and reports its aggregate outcome.
package deletion
