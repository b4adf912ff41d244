package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"dupescan/internal/audio"
	"dupescan/internal/collect"
	"dupescan/internal/grouping"
	"dupescan/internal/media"
	"dupescan/internal/visual"
)

// Options configures one scan session.
type Options struct {
	// Roots are the directories to search for duplicates.
	Roots []string
	// FramesPerVideo is the video sample count; <= 0 uses the default.
	FramesPerVideo int
	// AudioThreshold is the acoustic similarity cut-off in (0, 1];
	// 0 uses the default.
	AudioThreshold float64
	// Workers caps concurrent fingerprint jobs; <= 0 uses GOMAXPROCS.
	Workers int

	FFmpeg             string
	FFprobe            string
	AudioSampleSeconds int
	AudioDecodeTimeout time.Duration

	// Progress, when set, receives incremental updates. Sends never
	// block: a slow consumer drops updates instead of stalling workers.
	Progress chan<- Progress
}

// Progress reports scan advancement for one file.
type Progress struct {
	Stage string
	Path  string
	Done  int
	Total int
}

// Progress stage labels.
const (
	StageFingerprint = "fingerprint"
	StageAudio       = "audio"
)

// Result is the outcome of a completed scan.
type Result struct {
	// Groups are the final duplicate groups, canonical member first,
	// in deterministic key order.
	Groups []grouping.Group
	// AudioWarnings maps file path to the reason its audio fingerprint
	// was degraded (decode timeout fallback or unusable signature).
	AudioWarnings map[string]string
	// SkippedRoots lists roots that were not directories or unreadable.
	SkippedRoots []string
}

type session struct {
	logger *slog.Logger
	opts   Options

	mu       sync.Mutex
	entries  []grouping.Entry
	audioBy  map[string]audio.Fingerprint
	warnings map[string]string
	done     int
}

// Scan runs the full duplicate-detection pipeline over opts.Roots.
// Worker completion order never influences the result: grouping keys and
// canonical ordering are both deterministic. Cancelling ctx stops
// dispatch of new fingerprint work immediately; in-flight file operations
// run to completion.
func Scan(ctx context.Context, logger *slog.Logger, opts Options) (Result, error) {
	if err := normalize(&opts); err != nil {
		return Result{}, err
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	s := &session{
		logger:   logger.With("scan_id", uuid.NewString()),
		opts:     opts,
		audioBy:  make(map[string]audio.Fingerprint),
		warnings: make(map[string]string),
	}
	return s.run(ctx)
}

func normalize(opts *Options) error {
	if len(opts.Roots) == 0 {
		return errors.New("scan: at least one root directory is required")
	}
	if opts.AudioThreshold == 0 {
		opts.AudioThreshold = audio.DefaultSimilarityThreshold
	}
	if opts.AudioThreshold <= 0 || opts.AudioThreshold > 1 {
		return fmt.Errorf("scan: audio threshold %v outside (0, 1]", opts.AudioThreshold)
	}
	if opts.FramesPerVideo <= 0 {
		opts.FramesPerVideo = visual.DefaultFramesPerVideo
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return nil
}

func (s *session) run(ctx context.Context) (Result, error) {
	started := time.Now()
	files, skipped := s.collect()
	s.logger.Info("scan started",
		"roots", len(s.opts.Roots),
		"files", len(files),
		"workers", s.opts.Workers)

	if err := s.fingerprintAll(ctx, files); err != nil {
		return Result{}, err
	}

	engine := grouping.NewEngine(s.opts.AudioThreshold)
	candidates := engine.Candidates(s.entries)
	if err := s.fingerprintAudio(ctx, candidates); err != nil {
		return Result{}, err
	}
	groups := engine.Finalize(candidates, s.audioBy)

	s.logger.Info("scan finished",
		"groups", len(groups),
		"audio_warnings", len(s.warnings),
		"elapsed", time.Since(started).Round(time.Millisecond))

	return Result{
		Groups:        groups,
		AudioWarnings: s.warnings,
		SkippedRoots:  skipped,
	}, nil
}

// collect walks the roots and classifies every recognized media file.
// Unrecognized extensions are silently ignored.
func (s *session) collect() ([]media.File, []string) {
	var skipped []string
	collector := collect.Collector{
		Roots: s.opts.Roots,
		OnSkip: func(root string, err error) {
			s.logger.Warn("skipping invalid root", "root", root, "error", err)
			skipped = append(skipped, root)
		},
	}

	var files []media.File
	for path := range collector.Files() {
		kind := media.Classify(path)
		if kind == media.KindUnknown {
			continue
		}
		files = append(files, media.NewFile(path, kind))
	}
	return files, skipped
}

// fingerprintAll hashes every file on a bounded worker pool, funnelling
// results into the session under its mutex.
func (s *session) fingerprintAll(ctx context.Context, files []media.File) error {
	hasher := &visual.VideoHasher{
		FFmpeg:  s.opts.FFmpeg,
		FFprobe: s.opts.FFprobe,
		Frames:  s.opts.FramesPerVideo,
		Logger:  s.logger,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.opts.Workers)
	total := len(files)
	for _, file := range files {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			var fp visual.Fingerprint
			var ok bool
			switch file.Kind {
			case media.KindImage:
				fp, ok = visual.HashImage(file.Path)
			case media.KindVideo:
				fp, ok = hasher.Hash(groupCtx, file.Path)
			}
			if !ok {
				s.logger.Debug("no fingerprint, excluding file", "path", file.Path)
			}

			s.mu.Lock()
			if ok {
				s.entries = append(s.entries, grouping.Entry{File: file, Visual: fp})
			}
			s.done++
			done := s.done
			s.mu.Unlock()
			s.notify(Progress{Stage: StageFingerprint, Path: file.Path, Done: done, Total: total})
			return groupCtx.Err()
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// fingerprintAudio extracts audio for every video inside a candidate
// group that holds at least two videos; other files never pay for an
// audio decode.
func (s *session) fingerprintAudio(ctx context.Context, candidates []grouping.Group) error {
	var videos []media.File
	for _, candidate := range candidates {
		var groupVideos []media.File
		for _, member := range candidate.Members {
			if member.Kind == media.KindVideo {
				groupVideos = append(groupVideos, member)
			}
		}
		if len(groupVideos) >= 2 {
			videos = append(videos, groupVideos...)
		}
	}
	if len(videos) == 0 {
		return nil
	}

	extractor := &audio.Extractor{
		FFmpeg:        s.opts.FFmpeg,
		FFprobe:       s.opts.FFprobe,
		SampleSeconds: s.opts.AudioSampleSeconds,
		DecodeTimeout: s.opts.AudioDecodeTimeout,
		Logger:        s.logger,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.opts.Workers)
	total := len(videos)
	done := 0
	for _, video := range videos {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			fp := extractor.Fingerprint(groupCtx, video.Path)

			s.mu.Lock()
			s.audioBy[video.Path] = fp
			if fp.Degraded() {
				s.warnings[video.Path] = fp.Reason
			}
			done++
			current := done
			s.mu.Unlock()
			s.notify(Progress{Stage: StageAudio, Path: video.Path, Done: current, Total: total})
			return groupCtx.Err()
		})
	}
	if err := group.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// notify delivers progress without ever blocking a worker.
func (s *session) notify(update Progress) {
	if s.opts.Progress == nil {
		return
	}
	select {
	case s.opts.Progress <- update:
	default:
	}
}
