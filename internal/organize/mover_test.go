package organize_test

import (
	"os"
	"path/filepath"
	"testing"

	"camsort/internal/errors"
	"camsort/internal/organize"
	"camsort/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func mediaFile(t *testing.T, path string) types.MediaFile {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	return types.MediaFile{Path: path, Extension: filepath.Ext(path), SizeBytes: info.Size()}
}

func TestPlaceMovesFile(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "img001.jpg", "payload")
	dest := filepath.Join(dir, "Gopro Hero7 White")

	mover := organize.NewMover(false)
	rec := mover.Place(mediaFile(t, src), dest, types.PhaseModel)

	assert.Equal(t, types.Moved, rec.Outcome)
	assert.Equal(t, filepath.Join(dest, "img001.jpg"), rec.DestinationPath)

	_, err := os.Stat(src)
	assert.ErrorIs(t, err, os.ErrNotExist, "source should be gone after move")
	_, err = os.Stat(rec.DestinationPath)
	assert.NoError(t, err, "destination should exist after move")
}

func TestPlaceSkipsDuplicateContent(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "dest")
	writeFile(t, dest, "existing.jpg", "identical bytes")
	src := writeFile(t, dir, "newname.jpg", "identical bytes")

	mover := organize.NewMover(false)
	rec := mover.Place(mediaFile(t, src), dest, types.PhaseModel)

	assert.Equal(t, types.SkippedDuplicate, rec.Outcome)
	assert.Empty(t, rec.DestinationPath)

	_, err := os.Stat(src)
	assert.NoError(t, err, "duplicate source must stay at its original path")
}

func TestPlaceExactlyOneOfTwoIdenticalFiles(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "dest")
	a := writeFile(t, dir, "a.jpg", "same content")
	b := writeFile(t, dir, "b.jpg", "same content")

	mover := organize.NewMover(false)
	recA := mover.Place(mediaFile(t, a), dest, types.PhaseModel)
	recB := mover.Place(mediaFile(t, b), dest, types.PhaseModel)

	assert.Equal(t, types.Moved, recA.Outcome)
	assert.Equal(t, types.SkippedDuplicate, recB.Outcome)
}

func TestPlaceNameCollisionDifferentContent(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "dest")
	writeFile(t, dest, "img001.jpg", "original content")
	src := writeFile(t, dir, "img001.jpg", "different content")

	mover := organize.NewMover(false)
	rec := mover.Place(mediaFile(t, src), dest, types.PhaseModel)

	assert.Equal(t, types.Error, rec.Outcome)
	assert.True(t, errors.IsDestinationCollision(rec.Err))

	// Neither file may be touched.
	data, err := os.ReadFile(filepath.Join(dest, "img001.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "original content", string(data))
	_, err = os.Stat(src)
	assert.NoError(t, err)
}

func TestPlaceDryRun(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "img001.jpg", "payload")
	dest := filepath.Join(dir, "dest")

	mover := organize.NewMover(true)
	rec := mover.Place(mediaFile(t, src), dest, types.PhaseModel)

	assert.Equal(t, types.Moved, rec.Outcome)
	_, err := os.Stat(src)
	assert.NoError(t, err, "dry run must not move the file")
	_, err = os.Stat(dest)
	assert.ErrorIs(t, err, os.ErrNotExist, "dry run must not create directories")
}

func TestPlaceCreatesDestinationIdempotently(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "dest")
	require.NoError(t, os.MkdirAll(dest, 0755))
	src := writeFile(t, dir, "img001.jpg", "payload")

	mover := organize.NewMover(false)
	rec := mover.Place(mediaFile(t, src), dest, types.PhaseModel)
	assert.Equal(t, types.Moved, rec.Outcome, "pre-existing destination directory is not an error")
}
