package visual

import (
	"fmt"
	"image"
	"sort"
	"strings"

	"github.com/corona10/goimagehash"
)

// Kind discriminates the fingerprint families. Keeping the discriminant
// out of the payload string prevents accidental collisions between, say,
// a static image and an animation sharing a first frame.
type Kind uint8

const (
	// KindStatic tags single-frame images.
	KindStatic Kind = iota + 1
	// KindAnimated tags multi-frame images (animated GIFs).
	KindAnimated
	// KindVideo tags sampled video signatures.
	KindVideo
)

// String returns a short label for logging.
func (k Kind) String() string {
	switch k {
	case KindStatic:
		return "static"
	case KindAnimated:
		return "animated"
	case KindVideo:
		return "video"
	default:
		return "invalid"
	}
}

// Fingerprint is an opaque equality key for visual content. The zero value
// means "no fingerprint": the file could not be hashed and is excluded
// from grouping. Fingerprints are comparable and usable as map keys.
type Fingerprint struct {
	Kind    Kind
	Payload string
}

// IsZero reports whether the fingerprint is absent.
func (f Fingerprint) IsZero() bool {
	return f.Kind == 0 && f.Payload == ""
}

// String renders the fingerprint for logs and deterministic group naming.
func (f Fingerprint) String() string {
	if f.IsZero() {
		return "none"
	}
	return f.Kind.String() + ":" + f.Payload
}

// frameHash computes the 64-bit average hash of a single decoded frame,
// rendered as fixed-width hex so payload concatenation stays unambiguous.
func frameHash(img image.Image) (string, error) {
	hash, err := goimagehash.AverageHash(img)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%016x", hash.GetHash()), nil
}

// CombineFrameHashes folds per-frame hashes into one video payload. The
// lexicographic sort makes the signature independent of physical frame
// order, so renders of the same content sampled from different offsets
// still collide.
func CombineFrameHashes(hashes []string) string {
	sorted := append([]string(nil), hashes...)
	sort.Strings(sorted)
	return strings.Join(sorted, "")
}
