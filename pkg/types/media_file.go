package types

import "path/filepath"

// MediaFile describes a media file discovered in the capture directory.
// Its identity is the filesystem path at discovery time; once the file
// is moved the record refers to a path that no longer exists.
type MediaFile struct {
	Path      string `json:"path"`
	Extension string `json:"extension"` // lowercased, including the dot
	SizeBytes int64  `json:"size_bytes"`
}

// Name returns the base name of the file.
func (f MediaFile) Name() string {
	return filepath.Base(f.Path)
}
