// Package deps reports the availability of the external binaries the
// scan pipeline shells out to.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"dupescan/internal/config"
)

// Requirement defines an external dependency dupescan relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements returns the binaries a scan wants available. Both are
// optional: without them video files simply produce no fingerprints and
// fall out of grouping.
func Requirements(cfg *config.Config) []Requirement {
	ffmpeg := "ffmpeg"
	ffprobe := "ffprobe"
	if cfg != nil {
		if cfg.Tools.FFmpeg != "" {
			ffmpeg = cfg.Tools.FFmpeg
		}
		if cfg.Tools.FFprobe != "" {
			ffprobe = cfg.Tools.FFprobe
		}
	}
	return []Requirement{
		{
			Name:        "FFmpeg",
			Command:     ffmpeg,
			Description: "Video frame extraction and audio decoding",
			Optional:    true,
		},
		{
			Name:        "FFprobe",
			Command:     ffprobe,
			Description: "Container metadata inspection",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
