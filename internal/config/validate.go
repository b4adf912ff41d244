package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateAudio(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateScan() error {
	if c.Scan.Workers < 0 {
		return errors.New("scan.workers must not be negative")
	}
	if c.Scan.FramesPerVideo < 1 {
		return errors.New("scan.frames_per_video must be at least 1")
	}
	return nil
}

func (c *Config) validateAudio() error {
	if c.Audio.SimilarityThreshold <= 0 || c.Audio.SimilarityThreshold > 1 {
		return errors.New("audio.similarity_threshold must be in (0, 1]")
	}
	if c.Audio.SampleSeconds < 1 {
		return errors.New("audio.sample_seconds must be at least 1")
	}
	if c.Audio.DecodeTimeoutSeconds < 1 {
		return errors.New("audio.decode_timeout_seconds must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
