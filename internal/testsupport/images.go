// Package testsupport provides deterministic media fixtures for tests.
package testsupport

import (
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// Pattern draws a half dark, half light gradient so average hashes have
// structure instead of collapsing to all-ones or all-zeroes. bright
// mirrors the pattern, producing a visually distinct image.
func Pattern(w, h int, bright bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if (x >= w/2) == bright {
				v = 220
			}
			v += uint8(y % 16)
			img.Set(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return img
}

// WritePNG writes a deterministic 64x64 PNG, creating parent directories.
func WritePNG(t testing.TB, path string, bright bool) {
	t.Helper()
	mkparents(t, path)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, Pattern(64, 64, bright)); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

// WriteGIF writes a GIF whose every frame repeats the deterministic
// pattern; frames > 1 produces an animation with an identical first
// frame to the single-frame variant.
func WriteGIF(t testing.TB, path string, frames int) {
	t.Helper()
	mkparents(t, path)

	palette := make(color.Palette, 0, 256)
	for i := 0; i < 256; i++ {
		palette = append(palette, color.Gray{Y: uint8(i)})
	}
	src := Pattern(64, 64, true)
	out := &gif.GIF{}
	for i := 0; i < frames; i++ {
		frame := image.NewPaletted(src.Bounds(), palette)
		for y := src.Bounds().Min.Y; y < src.Bounds().Max.Y; y++ {
			for x := src.Bounds().Min.X; x < src.Bounds().Max.X; x++ {
				frame.Set(x, y, src.At(x, y))
			}
		}
		out.Image = append(out.Image, frame)
		out.Delay = append(out.Delay, 10)
	}

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, out); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
}

// WriteBytes writes arbitrary content, creating parent directories.
func WriteBytes(t testing.TB, path string, content []byte) {
	t.Helper()
	mkparents(t, path)
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func mkparents(t testing.TB, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
}
