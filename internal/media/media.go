package media

import (
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Kind classifies a file by the media family its extension belongs to.
type Kind uint8

const (
	// KindUnknown marks files the pipeline ignores entirely.
	KindUnknown Kind = iota
	// KindImage covers still and animated raster images.
	KindImage
	// KindVideo covers video containers.
	KindVideo
)

// String returns a short label for logging.
func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindVideo:
		return "video"
	default:
		return "unknown"
	}
}

var imageExtensions = map[string]struct{}{
	".jpg": {}, ".jpeg": {}, ".png": {}, ".bmp": {}, ".tiff": {},
	".webp": {}, ".gif": {}, ".ico": {},
}

var videoExtensions = map[string]struct{}{
	".mp4": {}, ".avi": {}, ".mkv": {}, ".mov": {}, ".wmv": {},
	".webm": {}, ".m4v": {}, ".flv": {}, ".mpg": {}, ".mpeg": {}, ".mts": {},
}

// Classify maps a path to its media kind by extension, case-insensitively.
// Unrecognized extensions return KindUnknown and are silently skipped by
// callers rather than reported as errors.
func Classify(path string) Kind {
	ext := strings.ToLower(filepath.Ext(path))
	if _, ok := imageExtensions[ext]; ok {
		return KindImage
	}
	if _, ok := videoExtensions[ext]; ok {
		return KindVideo
	}
	return KindUnknown
}

// File is an immutable record of one candidate media file.
type File struct {
	Path      string
	Kind      Kind
	CreatedAt time.Time
}

// NewFile builds a File for path with its creation timestamp resolved.
// The timestamp is best-effort: filesystem birth time where the platform
// exposes one, otherwise modification time, otherwise the current clock.
// Resolution never fails, so downstream sorting never has to.
func NewFile(path string, kind Kind) File {
	return File{Path: path, Kind: kind, CreatedAt: creationTime(path)}
}

func creationTime(path string) time.Time {
	if ts, ok := birthTime(path); ok {
		return ts
	}
	if info, err := os.Stat(path); err == nil {
		return info.ModTime()
	}
	return time.Now()
}
