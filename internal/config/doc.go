// Package config loads, defaults and validates dupescan configuration
// from TOML.
package config
