package ffprobe

import "testing"

const sampleVideoJSON = `{
  "streams": [
    {
      "index": 0,
      "codec_name": "h264",
      "codec_type": "video",
      "width": 1920,
      "height": 1080,
      "duration": "12.512500",
      "nb_frames": "300",
      "avg_frame_rate": "30000/1001"
    },
    {
      "index": 1,
      "codec_name": "aac",
      "codec_type": "audio",
      "sample_rate": "48000",
      "channels": 2
    }
  ],
  "format": {
    "filename": "clip.mp4",
    "nb_streams": 2,
    "duration": "12.545000",
    "format_name": "mov,mp4,m4a,3gp,3g2,mj2"
  }
}`

const sampleSilentJSON = `{
  "streams": [
    {
      "index": 0,
      "codec_type": "video",
      "avg_frame_rate": "25",
      "nb_frames": "N/A"
    }
  ],
  "format": {"duration": "10.0"}
}`

func TestParseVideoMetadata(t *testing.T) {
	result, err := parse([]byte(sampleVideoJSON))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if !result.HasAudio() {
		t.Error("expected audio stream")
	}
	stream, ok := result.FirstVideoStream()
	if !ok {
		t.Fatal("expected video stream")
	}
	if stream.Width != 1920 || stream.Height != 1080 {
		t.Errorf("unexpected dimensions %dx%d", stream.Width, stream.Height)
	}
	if got := result.FrameCount(); got != 300 {
		t.Errorf("FrameCount() = %d, want 300", got)
	}
	rate := result.FrameRate()
	if rate < 29.9 || rate > 30.0 {
		t.Errorf("FrameRate() = %f, want ~29.97", rate)
	}
	if got := result.DurationSeconds(); got != 12.545 {
		t.Errorf("DurationSeconds() = %f", got)
	}
}

func TestFrameCountDerivedFromDuration(t *testing.T) {
	result, err := parse([]byte(sampleSilentJSON))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if result.HasAudio() {
		t.Error("expected no audio stream")
	}
	// nb_frames is unusable, so 10s at 25fps derives 250 frames.
	if got := result.FrameCount(); got != 250 {
		t.Errorf("FrameCount() = %d, want 250", got)
	}
}

func TestParseRational(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"25", 25},
		{"30000/1001", 30000.0 / 1001.0},
		{"0/0", 0},
		{"", 0},
		{"garbage", 0},
	}
	for _, tc := range cases {
		if got := parseRational(tc.in); got != tc.want {
			t.Errorf("parseRational(%q) = %f, want %f", tc.in, got, tc.want)
		}
	}
}
