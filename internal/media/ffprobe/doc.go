// Package ffprobe wraps the ffprobe binary for container inspection.
//
// The scan pipeline uses it to read frame counts, frame rates, durations
// and audio stream presence before committing to frame or audio decodes.
package ffprobe
