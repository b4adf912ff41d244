package audio

import "math"

// Similarity scores two fingerprints on [0, 1].
//
// Sentinel rules: two NO_AUDIO fingerprints are identical (1.0); NO_AUDIO
// against any vector is 0.0; an unusable fingerprint against anything is
// 0.0. Metadata fallback signatures only ever match other fallback
// signatures, and then by duration and frame-rate tolerance rather than
// cosine: cosine is scale-invariant, so a 1-minute and a 10-minute clip
// with the same frame rate would otherwise score as near-identical.
// Real spectral vectors score by cosine similarity rescaled from [-1, 1].
func Similarity(a, b Fingerprint) float64 {
	if a.Status == 0 || b.Status == 0 || a.Status == StatusUnusable || b.Status == StatusUnusable {
		return 0
	}
	if a.Status == StatusNoAudio && b.Status == StatusNoAudio {
		return 1
	}
	if a.Status == StatusNoAudio || b.Status == StatusNoAudio {
		return 0
	}
	if a.Status == StatusFallback || b.Status == StatusFallback {
		if a.Status != b.Status {
			return 0
		}
		return fallbackMatch(a.Vector, b.Vector)
	}
	return rescaledCosine(a.Vector, b.Vector)
}

const (
	// fallbackDurationTolerance is the allowed absolute difference in
	// rounded container duration, in seconds.
	fallbackDurationTolerance = 2.0
	// fallbackRateTolerance absorbs rational frame rates reported with
	// slightly different precision (29.97 vs 30000/1001).
	fallbackRateTolerance = 0.1
)

// fallbackMatch scores two metadata signatures [duration, rate]. The
// outcome is binary: the coarse signature carries no notion of partial
// similarity.
func fallbackMatch(a, b []float64) float64 {
	if len(a) != 2 || len(b) != 2 {
		return 0
	}
	if math.Abs(a[0]-b[0]) > fallbackDurationTolerance {
		return 0
	}
	if math.Abs(a[1]-b[1]) > fallbackRateTolerance {
		return 0
	}
	return 1
}

func rescaledCosine(a, b []float64) float64 {
	// Vectors of different widths cannot count as similar.
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	if math.IsNaN(cos) {
		return 0
	}
	if cos > 1 {
		cos = 1
	}
	if cos < -1 {
		cos = -1
	}
	return (cos + 1) / 2
}

// DefaultSimilarityThreshold is the score at or above which two videos
// count as acoustically similar.
const DefaultSimilarityThreshold = 0.85
