package organize

import (
	"os"
	"path/filepath"

	"camsort/internal/dedup"
	"camsort/internal/errors"
	"camsort/internal/log"
	"camsort/pkg/types"
)

// Mover relocates files into destination directories, consulting a
// per-destination dedup.Index so identical content is never stored twice.
// It owns every index for the run; nothing else touches them.
type Mover struct {
	indexes map[string]*dedup.Index
	dryRun  bool
}

// NewMover returns a Mover. With dryRun set it records what would happen
// without creating directories or touching files.
func NewMover(dryRun bool) *Mover {
	return &Mover{indexes: make(map[string]*dedup.Index), dryRun: dryRun}
}

func (m *Mover) index(destDir string) *dedup.Index {
	ix, ok := m.indexes[destDir]
	if !ok {
		ix = dedup.NewIndex(destDir)
		m.indexes[destDir] = ix
	}
	return ix
}

// Place moves file into destDir under its original name and reports the
// outcome. Duplicate content is skipped without touching the filesystem; a
// same-name file with different content at the target is an error, never an
// overwrite. Filesystem failures are absorbed into the record so the caller
// can continue with the next file.
func (m *Mover) Place(file types.MediaFile, destDir string, phase types.Phase) types.MoveRecord {
	rec := types.MoveRecord{
		SourcePath: file.Path,
		Phase:      phase,
		SizeBytes:  file.SizeBytes,
	}

	status, err := m.index(destDir).CheckAndRegister(file.Path)
	if err != nil {
		// Unreadable for digesting: proceed rather than silently dropping
		// the file, it just cannot be deduplicated.
		log.Warn("digest failed, treating as new content: %v", err)
	}
	if status == dedup.Duplicate {
		log.Warn("duplicate content, skipped: %s (destination %s)", file.Path, destDir)
		rec.Outcome = types.SkippedDuplicate
		return rec
	}

	destPath := filepath.Join(destDir, file.Name())
	if m.dryRun {
		log.Info("would move %s -> %s", file.Path, destPath)
		rec.Outcome = types.Moved
		rec.DestinationPath = destPath
		return rec
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		rec.Outcome = types.Error
		rec.Err = errors.Wrap(errors.FilesystemError, destDir, "creating destination", err)
		log.Error("%v", rec.Err)
		return rec
	}

	// The index said this content is new, so anything already occupying the
	// target name has different bytes. Never overwrite it.
	if _, err := os.Lstat(destPath); err == nil {
		rec.Outcome = types.Error
		rec.Err = errors.New(errors.DestinationCollision, destPath, "different content already at destination")
		log.Error("%v", rec.Err)
		return rec
	}

	if err := os.Rename(file.Path, destPath); err != nil {
		rec.Outcome = types.Error
		rec.Err = errors.Wrap(errors.FilesystemError, file.Path, "moving file", err)
		log.Error("%v", rec.Err)
		return rec
	}

	log.Info("moved %s -> %s", file.Name(), destDir)
	rec.Outcome = types.Moved
	rec.DestinationPath = destPath
	return rec
}
