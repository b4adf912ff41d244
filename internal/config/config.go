package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Scan contains fingerprinting and grouping settings.
type Scan struct {
	// Workers caps concurrent fingerprint jobs; 0 means one per CPU.
	Workers int `toml:"workers"`
	// FramesPerVideo is how many evenly spaced frames form a video signature.
	FramesPerVideo int `toml:"frames_per_video"`
}

// Audio contains audio refinement settings.
type Audio struct {
	// SimilarityThreshold is the cosine similarity (rescaled to [0,1]) at
	// or above which two videos count as the same content.
	SimilarityThreshold float64 `toml:"similarity_threshold"`
	// SampleSeconds bounds how much audio is decoded per video.
	SampleSeconds int `toml:"sample_seconds"`
	// DecodeTimeoutSeconds is the hard wall-clock limit on one decode.
	DecodeTimeoutSeconds int `toml:"decode_timeout_seconds"`
}

// Tools names the external binaries the pipeline shells out to.
type Tools struct {
	FFmpeg  string `toml:"ffmpeg"`
	FFprobe string `toml:"ffprobe"`
}

// Deletion contains deletion batch settings.
type Deletion struct {
	// LockPath serializes deletion batches across processes. Empty
	// disables locking.
	LockPath string `toml:"lock_path"`
}

// Logging contains log output settings.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for dupescan.
type Config struct {
	Scan     Scan     `toml:"scan"`
	Audio    Audio    `toml:"audio"`
	Tools    Tools    `toml:"tools"`
	Deletion Deletion `toml:"deletion"`
	Logging  Logging  `toml:"logging"`
}

// DecodeTimeout returns the audio decode deadline as a duration.
func (c *Config) DecodeTimeout() time.Duration {
	return time.Duration(c.Audio.DecodeTimeoutSeconds) * time.Second
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/dupescan/config.toml")
}

// Load locates, parses, and validates a configuration file. A missing
// file is not an error; defaults apply. The third return reports whether
// a file was actually read.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	projectPath, err := filepath.Abs("dupescan.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}
	return defaultPath, false, nil
}

func (c *Config) normalize() error {
	c.Tools.FFmpeg = strings.TrimSpace(c.Tools.FFmpeg)
	c.Tools.FFprobe = strings.TrimSpace(c.Tools.FFprobe)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Deletion.LockPath != "" {
		expanded, err := ExpandPath(c.Deletion.LockPath)
		if err != nil {
			return err
		}
		c.Deletion.LockPath = expanded
	}
	return nil
}

// ExpandPath expands a leading ~ and returns an absolute, cleaned path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
