// Package logging constructs the slog loggers used across dupescan,
// with a compact console handler for interactive use and a JSON handler
// for machine consumption.
package logging
