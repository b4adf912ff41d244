// Package media defines the file model shared by the scan pipeline:
// media kind classification by extension and best-effort creation
// timestamps used for canonical ordering.
package media
