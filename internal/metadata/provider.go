// Package metadata extracts camera metadata from media files. The Provider
// interface isolates the rest of the pipeline from how tags are read: the
// exiftool subprocess, the native EXIF decoder, or a test double.
package metadata

import (
	"os/exec"
	"time"

	"camsort/internal/errors"
)

// Tag names the pipeline reads. Providers may return more.
const (
	TagModel            = "Model"
	TagDateTimeOriginal = "DateTimeOriginal"
	TagCreateDate       = "CreateDate"
)

// Tags is a snapshot of the metadata read from one file. An absent tag is
// simply an absent key, never an error.
type Tags map[string]string

// Provider reads the metadata snapshot of a single file. An error means the
// provider itself failed (launch failure, malformed output, timeout), not
// that a tag was absent.
type Provider interface {
	Extract(path string) (Tags, error)
}

// New selects a provider by name. "auto" prefers exiftool when it is on the
// PATH and falls back to the native decoder otherwise.
func New(tool string, timeout time.Duration) (Provider, error) {
	switch tool {
	case "exiftool":
		return NewExifTool(timeout), nil
	case "native":
		return &Native{}, nil
	case "auto":
		if _, err := exec.LookPath(exiftoolBinary); err == nil {
			return NewExifTool(timeout), nil
		}
		return &Native{}, nil
	}
	return nil, errors.Newf("unknown metadata tool %q", tool)
}

// Static is a deterministic Provider keyed by file base name, for tests and
// rehearsals. Files not present yield empty Tags.
type Static struct {
	Files map[string]Tags  // keyed by base filename
	Errs  map[string]error // per-file provider failures
}

// Extract implements Provider.
func (s *Static) Extract(path string) (Tags, error) {
	name := basename(path)
	if err, ok := s.Errs[name]; ok {
		return nil, err
	}
	if tags, ok := s.Files[name]; ok {
		return tags, nil
	}
	return Tags{}, nil
}
