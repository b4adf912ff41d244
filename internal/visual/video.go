package visual

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os/exec"

	"dupescan/internal/media/ffprobe"
)

// DefaultFramesPerVideo is the sample count used when none is configured.
const DefaultFramesPerVideo = 10

// VideoHasher fingerprints videos by hashing a fixed number of evenly
// spaced frames extracted through ffmpeg.
type VideoHasher struct {
	FFmpeg  string
	FFprobe string
	Frames  int
	Logger  *slog.Logger
}

// Hash fingerprints one video. Identical bytes with the same frame count
// always produce identical fingerprints. Individual frame decode failures
// are skipped; only a fully unhashable video reports false.
func (h *VideoHasher) Hash(ctx context.Context, path string) (Fingerprint, bool) {
	probe, err := ffprobe.Inspect(ctx, h.FFprobe, path)
	if err != nil {
		h.debug("probe failed", path, err)
		return Fingerprint{}, false
	}
	total := probe.FrameCount()
	rate := probe.FrameRate()
	if total <= 0 || rate <= 0 {
		h.debug("frame metadata unavailable", path, nil)
		return Fingerprint{}, false
	}

	frames := h.Frames
	if frames <= 0 {
		frames = DefaultFramesPerVideo
	}

	hashes := make([]string, 0, frames)
	for _, index := range frameIndices(total, frames) {
		img, err := h.extractFrame(ctx, path, float64(index)/rate)
		if err != nil {
			h.debug("frame extract failed", path, err)
			continue
		}
		hash, err := frameHash(img)
		if err != nil {
			h.debug("frame hash failed", path, err)
			continue
		}
		hashes = append(hashes, hash)
	}
	if len(hashes) == 0 {
		return Fingerprint{}, false
	}
	return Fingerprint{Kind: KindVideo, Payload: CombineFrameHashes(hashes)}, true
}

// frameIndices picks count evenly spaced frame indices across [0, total-1].
// A single sample lands on the middle frame. Indices that round to the same
// frame collapse to one sample, which keeps short clips deterministic.
func frameIndices(total int64, count int) []int64 {
	if total <= 0 || count <= 0 {
		return nil
	}
	if count == 1 || total == 1 {
		return []int64{total / 2}
	}
	seen := make(map[int64]struct{}, count)
	indices := make([]int64, 0, count)
	for i := 0; i < count; i++ {
		index := int64(math.Round(float64(i) * float64(total-1) / float64(count-1)))
		if index < 0 {
			index = 0
		}
		if index > total-1 {
			index = total - 1
		}
		if _, ok := seen[index]; ok {
			continue
		}
		seen[index] = struct{}{}
		indices = append(indices, index)
	}
	return indices
}

func (h *VideoHasher) extractFrame(ctx context.Context, path string, offsetSeconds float64) (image.Image, error) {
	payload, err := h.decodeFrame(ctx, path, offsetSeconds)
	if err != nil {
		return nil, err
	}
	return png.Decode(bytes.NewReader(payload))
}

func (h *VideoHasher) debug(msg, path string, err error) {
	if h.Logger == nil {
		return
	}
	if err != nil {
		h.Logger.Debug(msg, "path", path, "error", err)
		return
	}
	h.Logger.Debug(msg, "path", path)
}

func (h *VideoHasher) ffmpegBinary() string {
	if h.FFmpeg == "" {
		return "ffmpeg"
	}
	return h.FFmpeg
}

func (h *VideoHasher) decodeFrame(ctx context.Context, path string, offsetSeconds float64) ([]byte, error) {
	cmd := exec.CommandContext(ctx, h.ffmpegBinary(),
		"-v", "error",
		"-ss", fmt.Sprintf("%.3f", offsetSeconds),
		"-i", path,
		"-frames:v", "1",
		"-f", "image2pipe",
		"-c:v", "png",
		"-",
	)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg frame extract: %w", err)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg frame extract: empty output at %.3fs", offsetSeconds)
	}
	return stdout.Bytes(), nil
}
