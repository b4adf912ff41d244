package collect

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

// Collector enumerates candidate files under a set of root directories.
type Collector struct {
	// Roots are the directories to walk. They do not have to exist; a
	// missing or non-directory root is reported through OnSkip and the
	// walk continues with the remaining roots.
	Roots []string

	// OnSkip, when set, receives every root that could not be walked
	// together with the condition that disqualified it.
	OnSkip func(root string, err error)
}

// Files returns a lazy sequence of absolute file paths from a full
// recursive walk of every valid root. The sequence is restartable: each
// range re-walks the filesystem. No extension filtering happens here;
// kind classification is the fingerprinter's concern.
func (c Collector) Files() iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, root := range c.Roots {
			abs, err := filepath.Abs(root)
			if err != nil {
				c.skip(root, err)
				continue
			}
			info, err := os.Stat(abs)
			if err != nil {
				c.skip(root, err)
				continue
			}
			if !info.IsDir() {
				c.skip(root, &fs.PathError{Op: "walk", Path: abs, Err: ErrNotDirectory})
				continue
			}
			if !walkRoot(abs, yield) {
				return
			}
		}
	}
}

func walkRoot(root string, yield func(string) bool) bool {
	stopped := false
	_ = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees degrade to "skip", never abort the scan.
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}
		if !yield(path) {
			stopped = true
			return fs.SkipAll
		}
		return nil
	})
	return !stopped
}

func (c Collector) skip(root string, err error) {
	if c.OnSkip != nil {
		c.OnSkip(root, err)
	}
}
