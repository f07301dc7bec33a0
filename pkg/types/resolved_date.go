package types

import (
	"fmt"
	"time"
)

// DateSource records where a capture date came from.
type DateSource string

const (
	SourceExif             DateSource = "exif"
	SourceFilesystemCreate DateSource = "fs_create"
	SourceFilesystemModify DateSource = "fs_modify"
)

// ResolvedDate is the capture date attributed to a file after the
// month-boundary adjustment, reduced to the fields the archive cares about.
type ResolvedDate struct {
	Year   int        `json:"year"`
	Month  time.Month `json:"month"`
	Source DateSource `json:"source"`
}

// Bucket returns the destination month folder name, e.g. "2024.03".
func (d ResolvedDate) Bucket() string {
	return fmt.Sprintf("%04d.%02d", d.Year, int(d.Month))
}
