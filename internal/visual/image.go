package visual

import (
	"image"
	"image/gif"
	"os"
	"path/filepath"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "github.com/sergeymakinen/go-ico"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// HashImage fingerprints a single image file. The second return value is
// false when the file cannot be decoded; per pipeline policy that is a
// silent exclusion, never an error surfaced to the caller.
func HashImage(path string) (Fingerprint, bool) {
	if strings.EqualFold(filepath.Ext(path), ".gif") {
		return hashGIF(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return Fingerprint{}, false
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return Fingerprint{}, false
	}
	hash, err := frameHash(img)
	if err != nil {
		return Fingerprint{}, false
	}
	return Fingerprint{Kind: KindStatic, Payload: hash}, true
}

// hashGIF decodes the full GIF so multi-frame animations can be tagged
// separately from stills. The hash itself covers only the first frame,
// matching how single-frame decoding treats every other format.
func hashGIF(path string) (Fingerprint, bool) {
	file, err := os.Open(path)
	if err != nil {
		return Fingerprint{}, false
	}
	defer file.Close()

	decoded, err := gif.DecodeAll(file)
	if err != nil || len(decoded.Image) == 0 {
		return Fingerprint{}, false
	}
	hash, err := frameHash(decoded.Image[0])
	if err != nil {
		return Fingerprint{}, false
	}
	kind := KindStatic
	if len(decoded.Image) > 1 {
		kind = KindAnimated
	}
	return Fingerprint{Kind: kind, Payload: hash}, true
}
