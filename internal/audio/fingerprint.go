package audio

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os/exec"
	"strconv"
	"time"

	"dupescan/internal/media/ffprobe"
)

// Status describes what a Fingerprint actually carries.
type Status uint8

const (
	// StatusVector is a real spectral feature vector.
	StatusVector Status = iota + 1
	// StatusNoAudio is the sentinel covering a missing track, effective
	// silence, and unreadable streams. The three are intentionally
	// indistinguishable: a noisy decoder error string is no evidence the
	// content differs from an intentionally silent track.
	StatusNoAudio
	// StatusFallback is a coarse metadata-only signature substituted when
	// decoding overran its deadline. Reason records why, for surfacing to
	// the caller; it must never pass as a quiet success.
	StatusFallback
	// StatusUnusable means no signature of any sort could be produced.
	StatusUnusable
)

// Fingerprint is the audio identity of one video within a scan session.
type Fingerprint struct {
	Status Status
	Vector []float64
	Reason string
}

// NoAudio returns the shared sentinel fingerprint.
func NoAudio() Fingerprint {
	return Fingerprint{Status: StatusNoAudio}
}

// Degraded reports whether the fingerprint should be surfaced to the
// caller as a warning rather than used silently.
func (f Fingerprint) Degraded() bool {
	return f.Status == StatusFallback || f.Status == StatusUnusable
}

const (
	// DefaultSampleSeconds bounds how much audio is decoded per file.
	DefaultSampleSeconds = 30
	// DefaultDecodeTimeout bounds decode wall-clock time. Some containers
	// stall general-purpose decoders indefinitely.
	DefaultDecodeTimeout = 20 * time.Second

	sampleRate = 8000
	// silenceEpsilon is the peak amplitude (full scale 1.0) below which a
	// track counts as silent.
	silenceEpsilon = 1.0 / 1024
)

// Extractor produces audio fingerprints through ffprobe and ffmpeg.
type Extractor struct {
	FFmpeg        string
	FFprobe       string
	SampleSeconds int
	DecodeTimeout time.Duration
	Logger        *slog.Logger
}

// Fingerprint extracts the audio identity of one video. It never returns
// an error: missing tracks, silence and decode failures fold into the
// NO_AUDIO sentinel, and a decode timeout substitutes a metadata-derived
// fallback with a recorded reason.
func (e *Extractor) Fingerprint(ctx context.Context, path string) Fingerprint {
	probe, err := ffprobe.Inspect(ctx, e.FFprobe, path)
	if err != nil {
		e.debug(path, "probe failed", err)
		return NoAudio()
	}
	if !probe.HasAudio() {
		return NoAudio()
	}

	samples, err := e.decodePCM(ctx, path)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return e.fallback(path, probe)
		}
		e.debug(path, "decode failed", err)
		return NoAudio()
	}
	if len(samples) == 0 || peak(samples) < silenceEpsilon {
		return NoAudio()
	}

	vector := Features(samples)
	for _, v := range vector {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NoAudio()
		}
	}
	return Fingerprint{Status: StatusVector, Vector: vector}
}

// decodePCM shells out to ffmpeg for a bounded mono PCM sample. The child
// process runs under a hard deadline and is killed on expiry, so an
// overrunning decoder cannot leak past the scan.
func (e *Extractor) decodePCM(ctx context.Context, path string) ([]float64, error) {
	timeout := e.DecodeTimeout
	if timeout <= 0 {
		timeout = DefaultDecodeTimeout
	}
	seconds := e.SampleSeconds
	if seconds <= 0 {
		seconds = DefaultSampleSeconds
	}

	decodeCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	bin := e.FFmpeg
	if bin == "" {
		bin = "ffmpeg"
	}
	cmd := exec.CommandContext(decodeCtx, bin,
		"-v", "error",
		"-t", strconv.Itoa(seconds),
		"-i", path,
		"-vn",
		"-ac", "1",
		"-ar", strconv.Itoa(sampleRate),
		"-f", "s16le",
		"-",
	)
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		if decodeCtx.Err() != nil {
			return nil, decodeCtx.Err()
		}
		return nil, fmt.Errorf("ffmpeg audio decode: %w", err)
	}
	return pcmToFloat(stdout.Bytes()), nil
}

// fallback builds the coarse metadata signature used when decoding timed
// out. Similarity compares it only against other fallback signatures,
// by duration and frame-rate tolerance.
func (e *Extractor) fallback(path string, probe ffprobe.Result) Fingerprint {
	reason := fmt.Sprintf("audio decode exceeded %s; using container metadata signature", e.timeoutLabel())
	e.warn(path, reason)
	duration := probe.DurationSeconds()
	rate := probe.FrameRate()
	if duration <= 0 && rate <= 0 {
		return Fingerprint{Status: StatusUnusable, Reason: reason + "; no usable metadata"}
	}
	return Fingerprint{
		Status: StatusFallback,
		Vector: []float64{math.Round(duration), math.Round(rate*100) / 100},
		Reason: reason,
	}
}

func (e *Extractor) timeoutLabel() string {
	if e.DecodeTimeout > 0 {
		return e.DecodeTimeout.String()
	}
	return DefaultDecodeTimeout.String()
}

func pcmToFloat(raw []byte) []float64 {
	n := len(raw) / 2
	samples := make([]float64, n)
	for i := 0; i < n; i++ {
		v := int16(binary.LittleEndian.Uint16(raw[2*i:]))
		samples[i] = float64(v) / 32768
	}
	return samples
}

func peak(samples []float64) float64 {
	max := 0.0
	for _, s := range samples {
		if a := math.Abs(s); a > max {
			max = a
		}
	}
	return max
}

func (e *Extractor) debug(path, msg string, err error) {
	if e.Logger != nil {
		e.Logger.Debug(msg, "path", path, "error", err)
	}
}

func (e *Extractor) warn(path, reason string) {
	if e.Logger != nil {
		e.Logger.Warn("audio fingerprint degraded", "path", path, "reason", reason)
	}
}
