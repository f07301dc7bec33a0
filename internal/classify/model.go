// Package classify resolves the owning camera model and the capture date of
// a media file from unreliable metadata, with documented fallback rules.
package classify

import (
	"strings"

	"camsort/internal/errors"
	"camsort/internal/metadata"
)

// folderIllegal are the characters replaced when a mapped folder name is
// sanitized for the filesystem.
const folderIllegal = `<>:"/\|?*`

// ModelResolver maps raw camera-model tags to canonical destination folder
// names. It is a pure lookup with no hidden state.
type ModelResolver struct {
	folders map[string]string
}

// NewModelResolver builds a resolver over the given raw-tag to folder map.
func NewModelResolver(cameras map[string]string) *ModelResolver {
	return &ModelResolver{folders: cameras}
}

// Resolve returns the canonical folder for the model tag in tags. It fails
// with kind NoModelTag when no model tag is present and UnmappedModel when
// the tag has no entry in the camera map.
func (r *ModelResolver) Resolve(path string, tags metadata.Tags) (string, error) {
	raw := strings.TrimSpace(tags[metadata.TagModel])
	if raw == "" {
		return "", errors.New(errors.NoModelTag, path, "no camera model tag")
	}
	folder, ok := r.folders[raw]
	if !ok {
		return "", errors.New(errors.UnmappedModel, path, "model not in camera map: "+raw)
	}
	return SanitizeFolderName(folder), nil
}

// SanitizeFolderName replaces filesystem-illegal characters with underscores.
func SanitizeFolderName(name string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(folderIllegal, r) {
			return '_'
		}
		return r
	}, name)
}
