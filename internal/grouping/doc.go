// Package grouping clusters fingerprinted files into duplicate groups.
//
// Phase 1 buckets by exact visual fingerprint equality. Phase 2 refines
// any bucket holding two or more videos by audio similarity to a seed,
// deliberately without transitive closure. Each final group is ordered so
// the earliest-created member sits first as the canonical keeper.
package grouping
