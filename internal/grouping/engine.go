package grouping

import (
	"sort"

	"dupescan/internal/audio"
	"dupescan/internal/media"
	"dupescan/internal/visual"
)

// Key identifies a final duplicate group. The visual fingerprint and the
// audio sub-cluster ordinal are kept as separate typed fields so keys from
// distinct visual groups can never collide through string concatenation.
type Key struct {
	Visual  visual.Fingerprint
	Cluster int
}

// Group is a final duplicate set. Members[0] is the canonical file kept
// by default; every other member is a deletion candidate.
type Group struct {
	Key     Key
	Members []media.File
}

// Entry pairs a collected file with its visual fingerprint.
type Entry struct {
	File   media.File
	Visual visual.Fingerprint
}

// Engine turns fingerprinted entries into ordered duplicate groups.
type Engine struct {
	// Threshold is the audio similarity at or above which two videos in
	// the same visual bucket count as the same content.
	Threshold float64

	// Similarity scores two audio fingerprints; audio.Similarity unless a
	// test injects its own scoring.
	Similarity func(a, b audio.Fingerprint) float64
}

// NewEngine returns an Engine with the default similarity scoring.
func NewEngine(threshold float64) *Engine {
	if threshold <= 0 {
		threshold = audio.DefaultSimilarityThreshold
	}
	return &Engine{Threshold: threshold, Similarity: audio.Similarity}
}

// Candidates buckets entries by exact fingerprint equality. Entries with
// an absent fingerprint are ignored. Only buckets of two or more members
// qualify; they come back ordered deterministically by fingerprint so
// worker completion order never shows through.
func (e *Engine) Candidates(entries []Entry) []Group {
	buckets := make(map[visual.Fingerprint][]media.File)
	for _, entry := range entries {
		if entry.Visual.IsZero() {
			continue
		}
		buckets[entry.Visual] = append(buckets[entry.Visual], entry.File)
	}

	var groups []Group
	for fp, members := range buckets {
		if len(members) < 2 {
			continue
		}
		sortMembersByPath(members)
		groups = append(groups, Group{Key: Key{Visual: fp}, Members: members})
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Key.Visual.String() < groups[j].Key.Visual.String()
	})
	return groups
}

// Refine applies audio sub-clustering to one candidate group. Groups with
// fewer than two video members pass through unchanged. Otherwise the video
// members are clustered by similarity to a seed: each unvisited video
// seeds a new sub-cluster that absorbs every remaining video similar
// enough to that seed specifically, not to other members, so the
// relation is not transitive. Singleton sub-clusters are dropped.
// Non-video members are already proven visually identical and join every
// surviving sub-cluster.
func (e *Engine) Refine(group Group, audioBy map[string]audio.Fingerprint) []Group {
	var videos, others []media.File
	for _, member := range group.Members {
		if member.Kind == media.KindVideo {
			videos = append(videos, member)
		} else {
			others = append(others, member)
		}
	}
	if len(videos) < 2 {
		return []Group{group}
	}

	similarity := e.Similarity
	if similarity == nil {
		similarity = audio.Similarity
	}

	visited := make(map[string]bool, len(videos))
	var out []Group
	cluster := 0
	for _, seed := range videos {
		if visited[seed.Path] {
			continue
		}
		visited[seed.Path] = true
		members := []media.File{seed}
		for _, other := range videos {
			if visited[other.Path] {
				continue
			}
			if similarity(audioBy[seed.Path], audioBy[other.Path]) >= e.Threshold {
				visited[other.Path] = true
				members = append(members, other)
			}
		}
		if len(members) < 2 {
			continue
		}
		members = append(members, others...)
		out = append(out, Group{
			Key:     Key{Visual: group.Key.Visual, Cluster: cluster},
			Members: members,
		})
		cluster++
	}
	return out
}

// Finalize refines every candidate group and orders each survivor so the
// canonical member leads.
func (e *Engine) Finalize(candidates []Group, audioBy map[string]audio.Fingerprint) []Group {
	var final []Group
	for _, candidate := range candidates {
		for _, group := range e.Refine(candidate, audioBy) {
			if len(group.Members) < 2 {
				continue
			}
			OrderCanonical(group.Members)
			final = append(final, group)
		}
	}
	return final
}

func sortMembersByPath(members []media.File) {
	sort.Slice(members, func(i, j int) bool {
		return members[i].Path < members[j].Path
	})
}
