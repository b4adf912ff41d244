package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"dupescan/internal/deletion"
	"dupescan/internal/grouping"
	"dupescan/internal/scanner"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	var (
		framesFlag    int
		thresholdFlag float64
		workersFlag   int
		deleteFlag    bool
		yesFlag       bool
	)

	cmd := &cobra.Command{
		Use:   "scan <root> [root...]",
		Short: "Find duplicate media under the given directories",
		Long: `Scan walks every root, fingerprints image and video files, and reports
groups of perceptual duplicates. Each group keeps its oldest member as the
canonical original. Nothing is removed unless --delete is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.logger()
			if err != nil {
				return err
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			opts := scanner.Options{
				Roots:              args,
				FramesPerVideo:     cfg.Scan.FramesPerVideo,
				AudioThreshold:     cfg.Audio.SimilarityThreshold,
				Workers:            cfg.Scan.Workers,
				FFmpeg:             cfg.Tools.FFmpeg,
				FFprobe:            cfg.Tools.FFprobe,
				AudioSampleSeconds: cfg.Audio.SampleSeconds,
				AudioDecodeTimeout: cfg.DecodeTimeout(),
			}
			if cmd.Flags().Changed("frames") {
				opts.FramesPerVideo = framesFlag
			}
			if cmd.Flags().Changed("threshold") {
				if thresholdFlag <= 0 || thresholdFlag > 1 {
					return fmt.Errorf("--threshold %v outside (0, 1]", thresholdFlag)
				}
				opts.AudioThreshold = thresholdFlag
			}
			if cmd.Flags().Changed("workers") {
				opts.Workers = workersFlag
			}

			progress, done := startProgressDisplay(cmd.ErrOrStderr())
			opts.Progress = progress

			result, err := scanner.Scan(runCtx, logger, opts)
			close(progress)
			<-done
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			printScanReport(out, result)
			if !deleteFlag || len(result.Groups) == 0 {
				return nil
			}
			return runDeletion(runCtx, ctx, cmd, result.Groups, yesFlag)
		},
	}

	cmd.Flags().IntVar(&framesFlag, "frames", 0, "Frames sampled per video signature")
	cmd.Flags().Float64Var(&thresholdFlag, "threshold", 0, "Audio similarity threshold in (0, 1]")
	cmd.Flags().IntVar(&workersFlag, "workers", 0, "Concurrent fingerprint workers")
	cmd.Flags().BoolVar(&deleteFlag, "delete", false, "Delete non-canonical duplicates after confirmation")
	cmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Skip the deletion confirmation prompt")
	return cmd
}

// startProgressDisplay consumes scan progress on the returned channel and
// rewrites a single status line when writing to a terminal. The done
// channel closes once the channel is drained, so callers can close
// progress and wait without racing the final write.
func startProgressDisplay(w io.Writer) (chan scanner.Progress, <-chan struct{}) {
	progress := make(chan scanner.Progress, 64)
	done := make(chan struct{})

	tty := false
	if f, ok := w.(*os.File); ok {
		tty = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	go func() {
		defer close(done)
		wrote := false
		for update := range progress {
			if !tty {
				continue
			}
			fmt.Fprintf(w, "\r%s %d/%d", update.Stage, update.Done, update.Total)
			wrote = true
		}
		if wrote {
			fmt.Fprintln(w)
		}
	}()
	return progress, done
}

func printScanReport(out io.Writer, result scanner.Result) {
	for _, root := range result.SkippedRoots {
		fmt.Fprintf(out, "Skipped root %s: not a readable directory\n", root)
	}

	if len(result.Groups) == 0 {
		fmt.Fprintln(out, "No duplicates found.")
		return
	}

	fmt.Fprintln(out, renderGroups(result.Groups))

	redundant := 0
	for _, group := range result.Groups {
		redundant += len(group.Members) - 1
	}
	fmt.Fprintf(out, "%d duplicate group(s), %d redundant file(s).\n", len(result.Groups), redundant)

	if len(result.AudioWarnings) > 0 {
		paths := make([]string, 0, len(result.AudioWarnings))
		for path := range result.AudioWarnings {
			paths = append(paths, path)
		}
		sort.Strings(paths)
		fmt.Fprintln(out, "\nAudio fingerprinting was degraded for:")
		for _, path := range paths {
			fmt.Fprintf(out, "  %s (%s)\n", path, result.AudioWarnings[path])
		}
	}
}

func runDeletion(runCtx context.Context, ctx *commandContext, cmd *cobra.Command, groups []grouping.Group, assumeYes bool) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.logger()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	selected := make(map[string]struct{})
	for _, group := range groups {
		for _, member := range group.Members[1:] {
			selected[member.Path] = struct{}{}
		}
	}
	if len(selected) == 0 {
		fmt.Fprintln(out, "Nothing to delete.")
		return nil
	}

	if !assumeYes {
		fmt.Fprintf(out, "\nDelete %d file(s)? [y/N] ", len(selected))
		confirmed, err := readConfirmation(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read confirmation: %w", err)
		}
		if !confirmed {
			fmt.Fprintln(out, "Aborted; nothing deleted.")
			return nil
		}
	}

	planner := &deletion.Planner{Logger: logger, LockPath: cfg.Deletion.LockPath}
	outcome, err := planner.Execute(runCtx, groups, selected)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Deleted %d file(s), kept %d.\n", len(outcome.Deleted), len(outcome.Kept))
	if len(outcome.Failed) > 0 {
		fmt.Fprintf(out, "%d file(s) could not be removed:\n", len(outcome.Failed))
		for _, failure := range outcome.Failed {
			fmt.Fprintf(out, "  %s: %s\n", failure.Path, failure.Reason)
		}
	}
	return nil
}

// readConfirmation reads one line and accepts y or yes, case-insensitive.
// End of input without an answer counts as a refusal, so piped runs never
// delete by accident.
func readConfirmation(in io.Reader) (bool, error) {
	reader := bufio.NewReader(in)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
