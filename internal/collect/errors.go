package collect

import "errors"

// ErrNotDirectory marks a root that exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")
