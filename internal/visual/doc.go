// Package visual produces perceptual fingerprints for images and videos.
//
// Images hash to a 64-bit average hash over an 8x8 luminance grid, tagged
// static or animated so identical first frames never collide across the
// two families. Videos hash a fixed number of evenly spaced frames and
// combine the per-frame hashes order-independently.
package visual
