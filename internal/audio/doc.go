// Package audio extracts bounded-duration spectral fingerprints from
// video audio tracks and scores their similarity.
//
// Every failure mode degrades to a sentinel or a recorded fallback; the
// package never returns an error to the scan pipeline.
package audio
