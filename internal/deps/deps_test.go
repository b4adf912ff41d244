package deps

import (
	"os"
	"path/filepath"
	"testing"

	"dupescan/internal/config"
)

func stubBinary(t *testing.T, name string) {
	t.Helper()
	binDir := t.TempDir()
	target := filepath.Join(binDir, name)
	if err := os.WriteFile(target, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
}

func TestCheckBinariesFindsStub(t *testing.T) {
	stubBinary(t, "fake-ffprobe")

	statuses := CheckBinaries([]Requirement{
		{Name: "Probe", Command: "fake-ffprobe"},
		{Name: "Gone", Command: "definitely-not-installed-anywhere"},
		{Name: "Blank", Command: "  "},
	})
	if len(statuses) != 3 {
		t.Fatalf("expected 3 statuses, got %d", len(statuses))
	}
	if !statuses[0].Available {
		t.Errorf("stub should be available: %+v", statuses[0])
	}
	if statuses[1].Available || statuses[1].Detail == "" {
		t.Errorf("missing binary should be unavailable with detail: %+v", statuses[1])
	}
	if statuses[2].Available || statuses[2].Detail != "command not configured" {
		t.Errorf("blank command: %+v", statuses[2])
	}
}

func TestRequirementsUseConfiguredBinaries(t *testing.T) {
	cfg := config.Default()
	cfg.Tools.FFmpeg = "/opt/ffmpeg/bin/ffmpeg"

	reqs := Requirements(&cfg)
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements, got %d", len(reqs))
	}
	if reqs[0].Command != "/opt/ffmpeg/bin/ffmpeg" {
		t.Errorf("ffmpeg command = %q", reqs[0].Command)
	}
	if reqs[1].Command != "ffprobe" {
		t.Errorf("ffprobe command = %q", reqs[1].Command)
	}
	for _, r := range reqs {
		if !r.Optional {
			t.Errorf("%s should be optional", r.Name)
		}
	}
}
