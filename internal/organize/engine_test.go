package organize_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"camsort/internal/config"
	"camsort/internal/metadata"
	"camsort/internal/organize"
	"camsort/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newArchive builds a config rooted in a temp dir, the standard engine test
// fixture.
func newArchive(t *testing.T) (*config.Config, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "CAMARAS")
	require.NoError(t, os.MkdirAll(root, 0755))
	cfg := config.New()
	cfg.Archive.Root = root
	return cfg, root
}

func heroTags(stamp string) metadata.Tags {
	tags := metadata.Tags{metadata.TagModel: "HERO7 White"}
	if stamp != "" {
		tags[metadata.TagDateTimeOriginal] = stamp
	}
	return tags
}

func outcomes(records []types.MoveRecord) map[string]types.Outcome {
	m := make(map[string]types.Outcome)
	for _, rec := range records {
		m[filepath.Base(rec.SourcePath)+"/"+string(rec.Phase)] = rec.Outcome
	}
	return m
}

func TestRunFullScenario(t *testing.T) {
	provider := &metadata.Static{Files: map[string]metadata.Tags{
		"img001.jpg": heroTags("2023:12:31 23:10:00"),
		"img002.jpg": heroTags("2023:12:31 23:30:00"),
	}}
	cfg, root := newArchive(t)

	// img002 is byte-identical to a file already archived in
	// Gopro Hero7 White/2023.12/.
	writeFile(t, root, "Gopro Hero7 White/2023.12/old.jpg", "archived bytes")
	writeFile(t, root, "img001.jpg", "fresh capture")
	writeFile(t, root, "img002.jpg", "archived bytes")

	engine := organize.NewEngine(cfg, provider)
	result, err := engine.Run(context.Background(), organize.AllFolders())
	require.NoError(t, err)

	got := outcomes(result.Records)
	assert.Equal(t, types.Moved, got["img001.jpg/model"])
	assert.Equal(t, types.Moved, got["img001.jpg/date"])
	assert.Equal(t, types.Moved, got["img002.jpg/model"])
	assert.Equal(t, types.SkippedDuplicate, got["img002.jpg/date"])

	// img001 landed in its month bucket.
	_, err = os.Stat(filepath.Join(root, "Gopro Hero7 White", "2023.12", "img001.jpg"))
	assert.NoError(t, err)

	// img002 was never relocated into the bucket; it stopped at the camera
	// folder once its content proved to be a duplicate.
	_, err = os.Stat(filepath.Join(root, "Gopro Hero7 White", "2023.12", "img002.jpg"))
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = os.Stat(filepath.Join(root, "Gopro Hero7 White", "img002.jpg"))
	assert.NoError(t, err)

	c := result.Counters
	assert.Equal(t, 3, c.Count(types.Moved))
	assert.Equal(t, 1, c.Count(types.SkippedDuplicate))
	assert.Equal(t, 1, c.ByFolder["Gopro Hero7 White/2023.12"].Files)
}

func TestRunIsIdempotent(t *testing.T) {
	provider := &metadata.Static{Files: map[string]metadata.Tags{
		"img001.jpg": heroTags("2024:05:10 09:00:00"),
		"img002.jpg": heroTags("2024:05:11 10:00:00"),
	}}
	cfg, root := newArchive(t)
	writeFile(t, root, "img001.jpg", "capture one")
	writeFile(t, root, "img002.jpg", "capture two")

	first, err := organize.NewEngine(cfg, provider).Run(context.Background(), organize.AllFolders())
	require.NoError(t, err)
	assert.Equal(t, 4, first.Counters.Count(types.Moved), "two files through two phases")

	// A fresh engine (fresh indexes) over the already-organized archive
	// must find nothing to do.
	second, err := organize.NewEngine(cfg, provider).Run(context.Background(), organize.AllFolders())
	require.NoError(t, err)
	assert.Zero(t, second.Counters.Count(types.Moved))
	assert.Zero(t, second.Counters.Count(types.Error))

	// Reintroducing identical content gets suppressed before it can land in
	// a month bucket again: the date phase flags it as a duplicate of the
	// already-archived copy.
	writeFile(t, root, "img001.jpg", "capture one")
	third, err := organize.NewEngine(cfg, provider).Run(context.Background(), organize.AllFolders())
	require.NoError(t, err)
	got := outcomes(third.Records)
	assert.Equal(t, types.SkippedDuplicate, got["img001.jpg/date"])
	_, err = os.Stat(filepath.Join(root, "Gopro Hero7 White", "2024.05", "img001.jpg"))
	assert.NoError(t, err, "the archived copy is untouched")
}

func TestRunUnmappedModelStaysPut(t *testing.T) {
	provider := &metadata.Static{Files: map[string]metadata.Tags{
		"mystery.jpg": {metadata.TagModel: "Unknown Camera X"},
	}}
	cfg, root := newArchive(t)
	src := writeFile(t, root, "mystery.jpg", "bytes")

	result, err := organize.NewEngine(cfg, provider).Run(context.Background(), organize.AllFolders())
	require.NoError(t, err)

	require.Len(t, result.Records, 1)
	assert.Equal(t, types.SkippedUnclassified, result.Records[0].Outcome)
	_, err = os.Stat(src)
	assert.NoError(t, err, "unclassified files must stay at their original path")
}

func TestRunProviderFailureTreatedAsNoTag(t *testing.T) {
	provider := &metadata.Static{Errs: map[string]error{
		"broken.jpg": assert.AnError,
	}}
	cfg, root := newArchive(t)
	writeFile(t, root, "broken.jpg", "bytes")

	result, err := organize.NewEngine(cfg, provider).Run(context.Background(), organize.AllFolders())
	require.NoError(t, err, "a provider failure never aborts the run")
	require.Len(t, result.Records, 1)
	assert.Equal(t, types.SkippedUnclassified, result.Records[0].Outcome)
}

func TestRunEmptyScope(t *testing.T) {
	provider := &metadata.Static{Files: map[string]metadata.Tags{
		"img001.jpg": heroTags("2024:05:10 09:00:00"),
	}}
	cfg, root := newArchive(t)
	writeFile(t, root, "img001.jpg", "bytes")

	result, err := organize.NewEngine(cfg, provider).Run(context.Background(), organize.StaticScope(nil))
	require.NoError(t, err)

	// Model phase ran, date phase did not.
	_, err = os.Stat(filepath.Join(root, "Gopro Hero7 White", "img001.jpg"))
	assert.NoError(t, err)
	for _, rec := range result.Records {
		assert.NotEqual(t, types.PhaseDate, rec.Phase)
	}
}

func TestRunScopeValidationDropsUnknownFolders(t *testing.T) {
	provider := &metadata.Static{Files: map[string]metadata.Tags{
		"img001.jpg": heroTags("2024:05:10 09:00:00"),
	}}
	cfg, root := newArchive(t)
	writeFile(t, root, "img001.jpg", "bytes")

	scope := organize.StaticScope([]string{"No Such Camera", "Gopro Hero7 White"})
	result, err := organize.NewEngine(cfg, provider).Run(context.Background(), scope)
	require.NoError(t, err, "unknown scope entries are skipped, not fatal")

	_, err = os.Stat(filepath.Join(root, "Gopro Hero7 White", "2024.05", "img001.jpg"))
	assert.NoError(t, err)
	assert.Equal(t, 2, result.Counters.Count(types.Moved))
}

func TestRunMissingRootIsFatal(t *testing.T) {
	cfg := config.New()
	cfg.Archive.Root = filepath.Join(t.TempDir(), "does-not-exist")

	_, err := organize.NewEngine(cfg, &metadata.Static{}).Run(context.Background(), organize.AllFolders())
	assert.Error(t, err)
}

func TestDiscoverFilters(t *testing.T) {
	provider := &metadata.Static{}
	cfg, root := newArchive(t)
	// Extension matching is case-insensitive, unrecognized extensions are
	// skipped, and subdirectories are never descended into.
	writeFile(t, root, "keep.JPG", "a")
	writeFile(t, root, "skip.txt", "b")
	writeFile(t, root, "Existing/nested.jpg", "c")

	engine := organize.NewEngine(cfg, provider)
	files, err := engine.Discover()
	require.NoError(t, err)

	require.Len(t, files, 1)
	assert.Equal(t, "keep.JPG", files[0].Name())
	assert.Equal(t, ".jpg", files[0].Extension)
}

func TestCanonicalFoldersExcludesReserved(t *testing.T) {
	provider := &metadata.Static{}
	cfg, root := newArchive(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Sony ILCE-6000"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "PRIVATE"), 0755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Canon EOS 650D"), 0755))

	folders, err := organize.NewEngine(cfg, provider).CanonicalFolders()
	require.NoError(t, err)
	assert.Equal(t, []string{"Canon EOS 650D", "Sony ILCE-6000"}, folders)
}

func TestProcessFile(t *testing.T) {
	provider := &metadata.Static{Files: map[string]metadata.Tags{
		"img001.jpg": heroTags(""),
	}}
	cfg, root := newArchive(t)
	src := writeFile(t, root, "img001.jpg", "bytes")

	engine := organize.NewEngine(cfg, provider)

	rec, ok := engine.ProcessFile(src)
	require.True(t, ok)
	assert.Equal(t, types.Moved, rec.Outcome)

	_, ok = engine.ProcessFile(filepath.Join(root, "notes.txt"))
	assert.False(t, ok, "unrecognized extensions are ignored")
}

func TestRunHonorsCancellation(t *testing.T) {
	provider := &metadata.Static{Files: map[string]metadata.Tags{
		"img001.jpg": heroTags("2024:05:10 09:00:00"),
	}}
	cfg, root := newArchive(t)
	src := writeFile(t, root, "img001.jpg", "bytes")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := organize.NewEngine(cfg, provider).Run(ctx, organize.AllFolders())
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(src)
	assert.NoError(t, statErr, "nothing moved after pre-run cancellation")
}
