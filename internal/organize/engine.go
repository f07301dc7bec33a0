// Package organize runs the two-phase classification pipeline over a capture
// directory: first into per-camera folders by EXIF model, then into YYYY.MM
// month folders by capture date, suppressing byte-identical duplicates.
package organize

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"camsort/internal/classify"
	"camsort/internal/config"
	"camsort/internal/errors"
	"camsort/internal/log"
	"camsort/internal/metadata"
	"camsort/pkg/types"
)

// ScopeProvider narrows which canonical camera folders proceed to the date
// phase. It is called once per run with the folders that actually exist.
type ScopeProvider interface {
	Select(available []string) ([]string, error)
}

// ScopeFunc adapts a function to the ScopeProvider interface.
type ScopeFunc func(available []string) ([]string, error)

// Select implements ScopeProvider.
func (f ScopeFunc) Select(available []string) ([]string, error) {
	return f(available)
}

// AllFolders is a ScopeProvider selecting every available camera folder.
func AllFolders() ScopeProvider {
	return ScopeFunc(func(available []string) ([]string, error) {
		return available, nil
	})
}

// StaticScope is a ScopeProvider returning a fixed folder list. Entries that
// don't exist are silently dropped by the engine's validation.
func StaticScope(folders []string) ScopeProvider {
	return ScopeFunc(func([]string) ([]string, error) {
		return folders, nil
	})
}

// Result is the complete, read-only outcome of one pipeline run.
type Result struct {
	Records  []types.MoveRecord
	Counters *types.Counters
}

func newResult() *Result {
	return &Result{Counters: types.NewCounters()}
}

func (r *Result) add(rec types.MoveRecord, folderKey string) {
	r.Records = append(r.Records, rec)
	r.Counters.Record(rec, folderKey)
}

// Engine orchestrates the pipeline: Discover, ClassifyByModel, SelectScope,
// ClassifyByDate, Summarize. Failures of individual files are absorbed and
// recorded; only a missing capture root aborts a run.
type Engine struct {
	cfg      *config.Config
	provider metadata.Provider
	models   *classify.ModelResolver
	dates    *classify.DateResolver
	mover    *Mover
	exts     map[string]bool

	// now supplies the last-resort capture date; injectable for tests.
	now func() time.Time
}

// NewEngine builds an Engine over the given configuration and metadata
// provider.
func NewEngine(cfg *config.Config, provider metadata.Provider) *Engine {
	return &Engine{
		cfg:      cfg,
		provider: provider,
		models:   classify.NewModelResolver(cfg.Cameras),
		dates:    classify.NewDateResolver(),
		mover:    NewMover(cfg.Settings.DryRun),
		exts:     cfg.ExtensionSet(),
		now:      time.Now,
	}
}

// Run executes the full pipeline and returns its result. The scope provider
// is consulted once, between the model and date phases. Cancelling the
// context stops between files, leaving every completed move in place.
func (e *Engine) Run(ctx context.Context, scope ScopeProvider) (*Result, error) {
	files, err := e.Discover()
	if err != nil {
		return nil, err
	}
	log.Info("discovered %d media files in %s", len(files), e.cfg.Archive.Root)

	result := newResult()
	if err := e.classifyByModel(ctx, files, result); err != nil {
		return result, err
	}

	available, err := e.CanonicalFolders()
	if err != nil {
		return result, err
	}
	selected, err := scope.Select(available)
	if err != nil {
		return result, err
	}
	selected = validateScope(selected, available)
	log.Info("date phase scope: %d of %d camera folders", len(selected), len(available))

	if err := e.classifyByDate(ctx, selected, result); err != nil {
		return result, err
	}

	c := result.Counters
	log.Info("run complete: %d processed, %d moved, %d duplicates, %d unclassified, %d errors",
		c.Processed, c.Count(types.Moved), c.Count(types.SkippedDuplicate),
		c.Count(types.SkippedUnclassified), c.Count(types.Error))
	return result, nil
}

// Discover lists media files directly inside the capture root, one level
// deep. Subdirectories and unrecognized extensions are ignored. A missing
// root is the only fatal condition of a run.
func (e *Engine) Discover() ([]types.MediaFile, error) {
	entries, err := os.ReadDir(e.cfg.Archive.Root)
	if err != nil {
		return nil, errors.Wrap(errors.FilesystemError, e.cfg.Archive.Root, "capture directory unavailable", err)
	}

	var files []types.MediaFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if f, ok := e.mediaFile(e.cfg.Archive.Root, entry); ok {
			files = append(files, f)
		}
	}
	return files, nil
}

func (e *Engine) mediaFile(dir string, entry os.DirEntry) (types.MediaFile, bool) {
	ext := strings.ToLower(filepath.Ext(entry.Name()))
	if !e.exts[ext] {
		return types.MediaFile{}, false
	}
	info, err := entry.Info()
	if err != nil {
		log.Warn("cannot stat %s: %v", entry.Name(), err)
		return types.MediaFile{}, false
	}
	return types.MediaFile{
		Path:      filepath.Join(dir, entry.Name()),
		Extension: ext,
		SizeBytes: info.Size(),
	}, true
}

// classifyByModel resolves each file's camera model and moves it into the
// matching canonical folder. Files with no tag or an unmapped model stay at
// their original path, recorded as unclassified.
func (e *Engine) classifyByModel(ctx context.Context, files []types.MediaFile, result *Result) error {
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}

		folder, err := e.models.Resolve(file.Path, e.extract(file.Path))
		if err != nil {
			log.Error("unclassified: %v", err)
			result.add(types.MoveRecord{
				SourcePath: file.Path,
				Outcome:    types.SkippedUnclassified,
				Phase:      types.PhaseModel,
				SizeBytes:  file.SizeBytes,
				Err:        err,
			}, "")
			continue
		}

		rec := e.mover.Place(file, filepath.Join(e.cfg.Archive.Root, folder), types.PhaseModel)
		result.add(rec, folder)
	}
	return nil
}

// classifyByDate groups the current residents of each selected camera folder
// into YYYY.MM subfolders. It operates on whatever lives there now, so a
// rerun over an already-sorted archive is a no-op.
func (e *Engine) classifyByDate(ctx context.Context, folders []string, result *Result) error {
	for _, folder := range folders {
		base := filepath.Join(e.cfg.Archive.Root, folder)
		entries, err := os.ReadDir(base)
		if err != nil {
			log.Error("cannot read camera folder %s: %v", base, err)
			continue
		}

		for _, entry := range entries {
			if err := ctx.Err(); err != nil {
				return err
			}
			if entry.IsDir() {
				continue
			}
			file, ok := e.mediaFile(base, entry)
			if !ok {
				continue
			}

			date, err := e.dates.Resolve(file.Path, e.extract(file.Path))
			if err != nil {
				// Last resort: attribute to the current wall clock so the
				// file still lands somewhere visible.
				log.Error("no capture date for %s, using current time", file.Path)
				now := e.now()
				date = types.ResolvedDate{Year: now.Year(), Month: now.Month(), Source: types.SourceFilesystemModify}
			}

			rec := e.mover.Place(file, filepath.Join(base, date.Bucket()), types.PhaseDate)
			result.add(rec, folder+"/"+date.Bucket())
		}
	}
	return nil
}

// ProcessFile runs the model phase for a single file, used by watch mode
// when new captures appear in the root. Unrecognized extensions are ignored.
func (e *Engine) ProcessFile(path string) (types.MoveRecord, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if !e.exts[ext] {
		return types.MoveRecord{}, false
	}
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return types.MoveRecord{}, false
	}
	file := types.MediaFile{Path: path, Extension: ext, SizeBytes: info.Size()}

	result := newResult()
	if err := e.classifyByModel(context.Background(), []types.MediaFile{file}, result); err != nil {
		return types.MoveRecord{}, false
	}
	return result.Records[0], true
}

// CanonicalFolders lists the camera folders currently present under the
// root, excluding the reserved private folder, sorted by name.
func (e *Engine) CanonicalFolders() ([]string, error) {
	entries, err := os.ReadDir(e.cfg.Archive.Root)
	if err != nil {
		return nil, errors.Wrap(errors.FilesystemError, e.cfg.Archive.Root, "capture directory unavailable", err)
	}

	var folders []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if strings.EqualFold(entry.Name(), e.cfg.Archive.Reserved) {
			continue
		}
		folders = append(folders, entry.Name())
	}
	sort.Strings(folders)
	return folders, nil
}

// extract downgrades provider failures to an empty tag set: a broken
// metadata read means "no tags", not a dead file.
func (e *Engine) extract(path string) metadata.Tags {
	tags, err := e.provider.Extract(path)
	if err != nil {
		log.Warn("metadata unavailable for %s: %v", path, err)
		return metadata.Tags{}
	}
	return tags
}

// validateScope keeps only selected names that actually exist, preserving
// selection order and dropping unknown entries silently.
func validateScope(selected, available []string) []string {
	exists := make(map[string]bool, len(available))
	for _, name := range available {
		exists[name] = true
	}
	var valid []string
	for _, name := range selected {
		if exists[name] {
			valid = append(valid, name)
		}
	}
	return valid
}
