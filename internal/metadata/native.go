package metadata

import (
	"os"
	"strings"

	"github.com/rwcarlsen/goexif/exif"

	"camsort/internal/errors"
)

// Native reads EXIF tags in-process using goexif. It needs no external
// binary but only understands EXIF-bearing formats (JPEG and most raws),
// so it is the fallback when exiftool is not installed.
type Native struct{}

// Extract implements Provider. Files without a decodable EXIF block yield
// a MetadataUnavailable error; callers treat that as "no tags".
func (p *Native) Extract(path string) (Tags, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.MetadataUnavailable, path, "opening file", err)
	}
	defer f.Close()

	x, err := exif.Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.MetadataUnavailable, path, "decoding EXIF", err)
	}

	tags := Tags{}
	fields := map[string]exif.FieldName{
		TagModel:            exif.Model,
		TagDateTimeOriginal: exif.DateTimeOriginal,
		// exiftool's CreateDate is the EXIF DateTimeDigitized field.
		TagCreateDate: exif.DateTimeDigitized,
	}
	for name, field := range fields {
		tag, err := x.Get(field)
		if err != nil {
			continue
		}
		value, err := tag.StringVal()
		if err != nil {
			continue
		}
		value = strings.TrimSpace(strings.Trim(value, "\x00"))
		if value != "" {
			tags[name] = value
		}
	}
	return tags, nil
}
