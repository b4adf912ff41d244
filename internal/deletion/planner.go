package deletion

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gofrs/flock"

	"dupescan/internal/grouping"
)

// Failure records one path that could not be removed.
type Failure struct {
	Path   string
	Reason string
}

// Outcome summarizes a completed deletion batch.
//
// Kept holds every group member that was not targeted for deletion. A
// targeted path whose removal failed is excluded from Kept even though it
// still exists on disk; Failed is the caller's signal to re-inspect those
// paths. This is a deliberate policy choice, documented here because the
// two readings are both defensible.
type Outcome struct {
	Deleted []string
	Failed  []Failure
	Kept    []string
}

// Planner removes selected duplicate files.
type Planner struct {
	Logger *slog.Logger
	// LockPath, when set, serializes deletion batches across processes
	// through an advisory file lock.
	LockPath string
}

// Execute removes every selected path. The selection must not include any
// group's canonical member; that is a contract violation and fails the
// whole call before anything is removed. Per-file OS errors never abort
// the batch. Cancelling ctx stops dispatch of further removals while the
// outcome so far is still reported.
func (p *Planner) Execute(ctx context.Context, groups []grouping.Group, selected map[string]struct{}) (Outcome, error) {
	logger := p.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	membership := make(map[string]struct{})
	for _, group := range groups {
		if len(group.Members) == 0 {
			continue
		}
		if _, ok := selected[group.Members[0].Path]; ok {
			return Outcome{}, fmt.Errorf("deletion: selection includes canonical member %s", group.Members[0].Path)
		}
		for _, member := range group.Members {
			membership[member.Path] = struct{}{}
		}
	}

	if p.LockPath != "" {
		lock := flock.New(p.LockPath)
		locked, err := lock.TryLock()
		if err != nil {
			return Outcome{}, fmt.Errorf("deletion: acquire lock: %w", err)
		}
		if !locked {
			return Outcome{}, fmt.Errorf("deletion: another deletion batch holds %s", p.LockPath)
		}
		defer func() {
			_ = lock.Unlock()
		}()
	}

	var out Outcome
	cancelled := false
	for _, group := range groups {
		for _, member := range group.Members {
			if _, targeted := selected[member.Path]; !targeted {
				out.Kept = append(out.Kept, member.Path)
				continue
			}
			if cancelled || ctx.Err() != nil {
				cancelled = true
				out.Failed = append(out.Failed, Failure{Path: member.Path, Reason: "deletion cancelled before removal"})
				continue
			}
			if err := os.Remove(member.Path); err != nil {
				logger.Warn("delete failed", "path", member.Path, "error", err)
				out.Failed = append(out.Failed, Failure{Path: member.Path, Reason: err.Error()})
				continue
			}
			logger.Info("deleted duplicate", "path", member.Path)
			out.Deleted = append(out.Deleted, member.Path)
		}
	}

	// Selections outside any group cannot be honored; report them instead
	// of silently dropping part of the request.
	for path := range selected {
		if _, ok := membership[path]; !ok {
			out.Failed = append(out.Failed, Failure{Path: path, Reason: "not a member of any duplicate group"})
		}
	}

	if cancelled {
		return out, ctx.Err()
	}
	return out, nil
}
