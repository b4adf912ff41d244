package audio

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

const probeWithAudioJSON = `{"streams":[{"index":0,"codec_type":"video","avg_frame_rate":"30000/1001","nb_frames":"300"},{"index":1,"codec_type":"audio","channels":2}],"format":{"duration":"120.0"}}`

const probeVideoOnlyJSON = `{"streams":[{"index":0,"codec_type":"video","avg_frame_rate":"25","nb_frames":"100"}],"format":{"duration":"4.0"}}`

const probeBareAudioJSON = `{"streams":[{"index":0,"codec_type":"audio","channels":2}],"format":{}}`

func TestFingerprintMissingAudioStream(t *testing.T) {
	dir := t.TempDir()
	extractor := &Extractor{
		FFprobe: writeScript(t, dir, "ffprobe", "echo '"+probeVideoOnlyJSON+"'"),
		FFmpeg:  filepath.Join(dir, "never-invoked"),
	}

	fp := extractor.Fingerprint(context.Background(), "clip.mp4")
	if fp.Status != StatusNoAudio {
		t.Fatalf("status = %v, want NO_AUDIO", fp.Status)
	}
	if fp.Degraded() {
		t.Error("missing audio track is a normal outcome, not a warning")
	}
}

func TestFingerprintSilentTrack(t *testing.T) {
	dir := t.TempDir()
	extractor := &Extractor{
		FFprobe: writeScript(t, dir, "ffprobe", "echo '"+probeWithAudioJSON+"'"),
		FFmpeg:  writeScript(t, dir, "ffmpeg", "dd if=/dev/zero bs=1600 count=10 2>/dev/null"),
	}

	fp := extractor.Fingerprint(context.Background(), "clip.mp4")
	if fp.Status != StatusNoAudio {
		t.Fatalf("status = %v, want NO_AUDIO for silence", fp.Status)
	}
}

func TestFingerprintDecodeFailure(t *testing.T) {
	dir := t.TempDir()
	extractor := &Extractor{
		FFprobe: writeScript(t, dir, "ffprobe", "echo '"+probeWithAudioJSON+"'"),
		FFmpeg:  writeScript(t, dir, "ffmpeg", "exit 1"),
	}

	fp := extractor.Fingerprint(context.Background(), "clip.mp4")
	if fp.Status != StatusNoAudio {
		t.Fatalf("status = %v, want NO_AUDIO for a failed decode", fp.Status)
	}
}

func TestFingerprintTimeoutSubstitutesFallback(t *testing.T) {
	dir := t.TempDir()
	extractor := &Extractor{
		FFprobe:       writeScript(t, dir, "ffprobe", "echo '"+probeWithAudioJSON+"'"),
		FFmpeg:        writeScript(t, dir, "ffmpeg", "exec sleep 5"),
		DecodeTimeout: 50 * time.Millisecond,
	}

	fp := extractor.Fingerprint(context.Background(), "clip.mp4")
	if fp.Status != StatusFallback {
		t.Fatalf("status = %v, want fallback after timeout", fp.Status)
	}
	if fp.Reason == "" {
		t.Fatal("fallback must record why it was substituted")
	}
	if !fp.Degraded() {
		t.Fatal("a timed-out decode must never pass as a normal success")
	}
	if len(fp.Vector) != 2 {
		t.Fatalf("fallback vector = %v, want [duration, rate]", fp.Vector)
	}
	if fp.Vector[0] != 120 {
		t.Errorf("fallback duration = %f, want 120", fp.Vector[0])
	}
	if math.Abs(fp.Vector[1]-29.97) > 1e-9 {
		t.Errorf("fallback rate = %f, want 29.97", fp.Vector[1])
	}
}

func TestFingerprintTimeoutWithoutMetadataIsUnusable(t *testing.T) {
	dir := t.TempDir()
	extractor := &Extractor{
		FFprobe:       writeScript(t, dir, "ffprobe", "echo '"+probeBareAudioJSON+"'"),
		FFmpeg:        writeScript(t, dir, "ffmpeg", "exec sleep 5"),
		DecodeTimeout: 50 * time.Millisecond,
	}

	fp := extractor.Fingerprint(context.Background(), "clip.mp4")
	if fp.Status != StatusUnusable {
		t.Fatalf("status = %v, want unusable without container metadata", fp.Status)
	}
	if fp.Reason == "" || !fp.Degraded() {
		t.Fatalf("unusable fingerprint must carry a reason and surface as degraded: %+v", fp)
	}
}

func TestFingerprintProbeFailure(t *testing.T) {
	dir := t.TempDir()
	extractor := &Extractor{
		FFprobe: writeScript(t, dir, "ffprobe", "exit 1"),
		FFmpeg:  filepath.Join(dir, "never-invoked"),
	}

	fp := extractor.Fingerprint(context.Background(), "clip.mp4")
	if fp.Status != StatusNoAudio {
		t.Fatalf("status = %v, want NO_AUDIO for an unreadable container", fp.Status)
	}
}
