package config

const (
	defaultFramesPerVideo      = 10
	defaultSimilarityThreshold = 0.85
	defaultSampleSeconds       = 30
	defaultDecodeTimeout       = 20
	defaultFFmpegBinary        = "ffmpeg"
	defaultFFprobeBinary       = "ffprobe"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Scan: Scan{
			FramesPerVideo: defaultFramesPerVideo,
		},
		Audio: Audio{
			SimilarityThreshold:  defaultSimilarityThreshold,
			SampleSeconds:        defaultSampleSeconds,
			DecodeTimeoutSeconds: defaultDecodeTimeout,
		},
		Tools: Tools{
			FFmpeg:  defaultFFmpegBinary,
			FFprobe: defaultFFprobeBinary,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
