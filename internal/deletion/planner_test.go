package deletion

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"dupescan/internal/grouping"
	"dupescan/internal/media"
	"dupescan/internal/visual"
)

func makeGroup(t *testing.T, dir string, names ...string) grouping.Group {
	t.Helper()
	group := grouping.Group{Key: grouping.Key{Visual: visual.Fingerprint{Kind: visual.KindStatic, Payload: "aa"}}}
	for i, name := range names {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
			t.Fatal(err)
		}
		group.Members = append(group.Members, media.File{
			Path:      path,
			Kind:      media.KindImage,
			CreatedAt: time.Unix(int64(100+i), 0),
		})
	}
	return group
}

func selection(paths ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		out[p] = struct{}{}
	}
	return out
}

func TestExecuteDeletesSelectedAndKeepsCanonical(t *testing.T) {
	dir := t.TempDir()
	group := makeGroup(t, dir, "old.jpg", "new.jpg")
	planner := &Planner{}

	out, err := planner.Execute(context.Background(), []grouping.Group{group}, selection(group.Members[1].Path))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(out.Deleted) != 1 || out.Deleted[0] != group.Members[1].Path {
		t.Fatalf("Deleted = %v", out.Deleted)
	}
	if len(out.Failed) != 0 {
		t.Fatalf("Failed = %v", out.Failed)
	}
	if len(out.Kept) != 1 || out.Kept[0] != group.Members[0].Path {
		t.Fatalf("Kept = %v", out.Kept)
	}
	if _, err := os.Stat(group.Members[1].Path); !os.IsNotExist(err) {
		t.Error("selected file still exists")
	}
	if _, err := os.Stat(group.Members[0].Path); err != nil {
		t.Error("canonical file should survive")
	}
}

func TestExecuteIsolatesPerFileFailures(t *testing.T) {
	dir := t.TempDir()
	group := makeGroup(t, dir, "keep.jpg", "a.jpg", "b.jpg", "c.jpg")

	missing := group.Members[2].Path
	if err := os.Remove(missing); err != nil {
		t.Fatal(err)
	}

	targets := selection(group.Members[1].Path, missing, group.Members[3].Path)
	out, err := (&Planner{}).Execute(context.Background(), []grouping.Group{group}, targets)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if got := len(out.Deleted) + len(out.Failed); got != len(targets) {
		t.Fatalf("deleted+failed = %d, want %d", got, len(targets))
	}
	if len(out.Failed) != 1 || out.Failed[0].Path != missing {
		t.Fatalf("Failed = %v, want the missing path", out.Failed)
	}
	if out.Failed[0].Reason == "" {
		t.Error("failure must carry a reason")
	}
	// Targeted-but-failed paths stay out of the kept set.
	sort.Strings(out.Kept)
	if len(out.Kept) != 1 || out.Kept[0] != group.Members[0].Path {
		t.Fatalf("Kept = %v", out.Kept)
	}
}

func TestExecuteRejectsCanonicalSelection(t *testing.T) {
	dir := t.TempDir()
	group := makeGroup(t, dir, "old.jpg", "new.jpg")

	_, err := (&Planner{}).Execute(context.Background(), []grouping.Group{group}, selection(group.Members[0].Path))
	if err == nil {
		t.Fatal("expected contract violation error")
	}
	if _, statErr := os.Stat(group.Members[0].Path); statErr != nil {
		t.Error("nothing may be removed on contract violation")
	}
}

func TestExecuteReportsUnknownSelection(t *testing.T) {
	dir := t.TempDir()
	group := makeGroup(t, dir, "old.jpg", "new.jpg")

	stranger := filepath.Join(dir, "stranger.jpg")
	out, err := (&Planner{}).Execute(context.Background(), []grouping.Group{group}, selection(group.Members[1].Path, stranger))
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(out.Deleted) != 1 {
		t.Fatalf("Deleted = %v", out.Deleted)
	}
	found := false
	for _, f := range out.Failed {
		if f.Path == stranger {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unknown selection in Failed, got %v", out.Failed)
	}
}

func TestExecuteCancelledBeforeStart(t *testing.T) {
	dir := t.TempDir()
	group := makeGroup(t, dir, "old.jpg", "new.jpg")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out, err := (&Planner{}).Execute(ctx, []grouping.Group{group}, selection(group.Members[1].Path))
	if err == nil {
		t.Fatal("expected context error")
	}
	if len(out.Deleted) != 0 {
		t.Fatalf("nothing should be deleted after cancellation, got %v", out.Deleted)
	}
	if len(out.Failed) != 1 {
		t.Fatalf("expected targeted path in Failed, got %v", out.Failed)
	}
}

func TestExecuteLockSerialization(t *testing.T) {
	dir := t.TempDir()
	group := makeGroup(t, dir, "old.jpg", "new.jpg")
	lockPath := filepath.Join(dir, "delete.lock")

	planner := &Planner{LockPath: lockPath}
	out, err := planner.Execute(context.Background(), []grouping.Group{group}, selection(group.Members[1].Path))
	if err != nil {
		t.Fatalf("Execute with lock: %v", err)
	}
	if len(out.Deleted) != 1 {
		t.Fatalf("Deleted = %v", out.Deleted)
	}
}
