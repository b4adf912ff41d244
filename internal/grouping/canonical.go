package grouping

import (
	"sort"

	"dupescan/internal/media"
)

// OrderCanonical sorts group members ascending by creation time, oldest
// first, so index 0 is the canonical keeper. Creation timestamps are
// resolved at collection with a non-failing fallback chain, and path
// order breaks ties to keep the result independent of worker timing.
func OrderCanonical(members []media.File) {
	sort.SliceStable(members, func(i, j int) bool {
		a, b := members[i], members[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.Path < b.Path
	})
}
