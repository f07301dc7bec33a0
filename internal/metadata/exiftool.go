package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"os/exec"

	"camsort/internal/errors"
	"camsort/internal/log"
)

const exiftoolBinary = "exiftool"

// ExifTool reads metadata by running exiftool as a subprocess per file,
// the same way the archive was originally maintained. Each call is bounded
// by a timeout so a wedged exiftool cannot stall the whole run.
type ExifTool struct {
	binary  string
	timeout time.Duration
}

// NewExifTool returns an exiftool-backed provider with the given per-file
// timeout. A zero timeout means no bound beyond exiftool's own.
func NewExifTool(timeout time.Duration) *ExifTool {
	return &ExifTool{binary: exiftoolBinary, timeout: timeout}
}

// Extract implements Provider. It asks exiftool for JSON output restricted
// to the tags the pipeline reads.
func (p *ExifTool) Extract(path string) (Tags, error) {
	ctx := context.Background()
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, p.binary,
		"-j", "-"+TagModel, "-"+TagDateTimeOriginal, "-"+TagCreateDate, path)
	out, err := cmd.Output()
	if ctx.Err() == context.DeadlineExceeded {
		return nil, errors.Wrap(errors.MetadataUnavailable, path, "exiftool timed out", ctx.Err())
	}
	if err != nil {
		return nil, errors.Wrap(errors.MetadataUnavailable, path, "exiftool failed", err)
	}

	// exiftool -j emits a one-element array of tag objects.
	var records []map[string]interface{}
	if err := json.Unmarshal(out, &records); err != nil {
		return nil, errors.Wrap(errors.MetadataUnavailable, path, "malformed exiftool output", err)
	}
	if len(records) == 0 {
		log.Debug("exiftool returned no record for %s", path)
		return Tags{}, nil
	}

	tags := make(Tags, len(records[0]))
	for key, value := range records[0] {
		if key == "SourceFile" {
			continue
		}
		if s, ok := value.(string); ok {
			tags[key] = s
		} else {
			tags[key] = fmt.Sprint(value)
		}
	}
	return tags, nil
}

func basename(path string) string {
	return filepath.Base(path)
}
