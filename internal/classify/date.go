package classify

import (
	"os"
	"strings"
	"time"

	"camsort/internal/errors"
	"camsort/internal/log"
	"camsort/internal/metadata"
	"camsort/pkg/types"
)

// exifTimeLayout is the timestamp format cameras write into EXIF tags.
const exifTimeLayout = "2006:01:02 15:04:05"

// DateResolver derives a capture date for a file from a prioritized list of
// sources: DateTimeOriginal, CreateDate, filesystem creation time, filesystem
// modification time. Each source is attempted only when the prior one fails;
// a parse failure is a warning, never fatal.
type DateResolver struct{}

// NewDateResolver returns a DateResolver.
func NewDateResolver() *DateResolver {
	return &DateResolver{}
}

// Resolve returns the capture date attributed to the file, after the
// month-boundary adjustment. When every source fails it returns an error of
// kind DateUnresolvable; the caller decides the last-resort default.
func (r *DateResolver) Resolve(path string, tags metadata.Tags) (types.ResolvedDate, error) {
	for _, tag := range []string{metadata.TagDateTimeOriginal, metadata.TagCreateDate} {
		raw, ok := tags[tag]
		if !ok || raw == "" {
			continue
		}
		t, err := parseExifTime(raw)
		if err != nil {
			log.Warn("unparseable %s %q in %s: %v", tag, raw, path, err)
			continue
		}
		return attribute(t, types.SourceExif), nil
	}

	if t, ok := creationTime(path); ok {
		return attribute(t, types.SourceFilesystemCreate), nil
	}
	if info, err := os.Stat(path); err == nil {
		return attribute(info.ModTime(), types.SourceFilesystemModify), nil
	} else {
		log.Warn("no filesystem timestamp for %s: %v", path, err)
	}

	return types.ResolvedDate{}, errors.New(errors.DateUnresolvable, path, "no capture date source")
}

// parseExifTime parses an EXIF timestamp, discarding fractional seconds.
func parseExifTime(raw string) (time.Time, error) {
	if i := strings.IndexByte(raw, '.'); i >= 0 {
		raw = raw[:i]
	}
	return time.Parse(exifTimeLayout, strings.TrimSpace(raw))
}

// attribute applies the month-boundary rule and reduces the timestamp to an
// archive bucket. A capture on day 1 before 08:00 belongs to the previous
// day's overnight session, which by construction falls in the prior month.
func attribute(t time.Time, source types.DateSource) types.ResolvedDate {
	if t.Day() == 1 && t.Hour() < 8 {
		t = t.AddDate(0, 0, -1)
	}
	return types.ResolvedDate{Year: t.Year(), Month: t.Month(), Source: source}
}
