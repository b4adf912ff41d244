package audio

import (
	"math"
	"testing"
)

func vector(values ...float64) Fingerprint {
	return Fingerprint{Status: StatusVector, Vector: values}
}

func TestSimilaritySentinelRules(t *testing.T) {
	real := vector(1, 2, 3)

	if got := Similarity(NoAudio(), NoAudio()); got != 1.0 {
		t.Errorf("NO_AUDIO vs NO_AUDIO = %f, want 1.0", got)
	}
	if got := Similarity(NoAudio(), real); got != 0.0 {
		t.Errorf("NO_AUDIO vs vector = %f, want 0.0", got)
	}
	if got := Similarity(real, NoAudio()); got != 0.0 {
		t.Errorf("vector vs NO_AUDIO = %f, want 0.0", got)
	}
	unusable := Fingerprint{Status: StatusUnusable, Reason: "decode abandoned"}
	if got := Similarity(unusable, real); got != 0.0 {
		t.Errorf("unusable vs vector = %f, want 0.0", got)
	}
	if got := Similarity(unusable, unusable); got != 0.0 {
		t.Errorf("unusable vs unusable = %f, want 0.0", got)
	}
	if got := Similarity(Fingerprint{}, real); got != 0.0 {
		t.Errorf("zero fingerprint vs vector = %f, want 0.0", got)
	}
}

func TestSimilarityCosine(t *testing.T) {
	if got := Similarity(vector(1, 2, 3), vector(1, 2, 3)); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("identical vectors = %f, want 1.0", got)
	}
	if got := Similarity(vector(1, 0), vector(-1, 0)); math.Abs(got) > 1e-12 {
		t.Errorf("opposite vectors = %f, want 0.0", got)
	}
	if got := Similarity(vector(1, 0), vector(0, 1)); math.Abs(got-0.5) > 1e-12 {
		t.Errorf("orthogonal vectors = %f, want 0.5", got)
	}
}

func TestSimilarityFallbackNeverMatchesSpectral(t *testing.T) {
	fallback := Fingerprint{Status: StatusFallback, Vector: []float64{120, 29.97}, Reason: "timeout"}
	spectral := vector(make([]float64, FeatureLength)...)
	if got := Similarity(fallback, spectral); got != 0.0 {
		t.Errorf("fallback vs spectral = %f, want 0.0", got)
	}
	// Two identical fallback signatures still match each other.
	if got := Similarity(fallback, fallback); got != 1.0 {
		t.Errorf("fallback vs itself = %f, want 1.0", got)
	}
}

func TestSimilarityFallbackDiscriminatesByMetadata(t *testing.T) {
	signature := func(duration, rate float64) Fingerprint {
		return Fingerprint{Status: StatusFallback, Vector: []float64{duration, rate}, Reason: "timeout"}
	}
	cases := []struct {
		name string
		a, b Fingerprint
		want float64
	}{
		{"same metadata", signature(60, 30), signature(60, 30), 1},
		{"duration within tolerance", signature(60, 30), signature(61, 30), 1},
		{"rate rational precision", signature(60, 29.97), signature(60, 30000.0/1001.0), 1},
		{"duration 10x apart", signature(60, 30), signature(600, 30), 0},
		{"duration just outside tolerance", signature(60, 30), signature(63, 30), 0},
		{"rate mismatch", signature(60, 24), signature(60, 30), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Similarity(tc.a, tc.b); got != tc.want {
				t.Fatalf("Similarity = %f, want %f", got, tc.want)
			}
		})
	}
}

func TestSimilarityZeroNorm(t *testing.T) {
	if got := Similarity(vector(0, 0, 0), vector(1, 2, 3)); got != 0.0 {
		t.Errorf("zero-norm vector = %f, want 0.0", got)
	}
}
