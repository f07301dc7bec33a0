// Package private mirrors marked folders into a reserved PRIVATE area of
// the archive. A folder is marked by its name matching the configured glob
// (by default any name containing "(X)"). Existing mirrors are never
// overwritten, so the copy is safe to rerun.
package private

import (
	"io"
	"os"
	"path/filepath"

	"github.com/gobwas/glob"

	"camsort/internal/log"
)

// Status classifies what happened to one candidate folder.
type Status string

const (
	Copied  Status = "copied"
	Skipped Status = "skipped"
	Failed  Status = "error"
)

// Entry is the result for a single candidate folder, relative to the root.
type Entry struct {
	RelPath string
	Status  Status
	Bytes   int64
}

// Report summarizes one mirror run.
type Report struct {
	Entries    []Entry
	Copied     int
	Skipped    int
	Errors     int
	TotalBytes int64
}

// Copier mirrors marked folders under root into root/<destName>.
type Copier struct {
	root     string
	destName string
	marker   glob.Glob
}

// NewCopier builds a Copier. The marker is a glob a folder's base name must
// match to be mirrored, e.g. "*(X)*".
func NewCopier(root, destName, marker string) (*Copier, error) {
	g, err := glob.Compile(marker)
	if err != nil {
		return nil, err
	}
	return &Copier{root: root, destName: destName, marker: g}, nil
}

// Run walks the archive, mirroring every marked folder that is not already
// present in the destination. The destination folder itself is excluded
// from the walk so the mirror never feeds on its own output.
func (c *Copier) Run() (*Report, error) {
	dest := filepath.Join(c.root, c.destName)
	if err := os.MkdirAll(dest, 0755); err != nil {
		return nil, err
	}

	report := &Report{}
	err := filepath.WalkDir(c.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Warn("walk error at %s: %v", path, err)
			return nil
		}
		if !d.IsDir() || path == c.root {
			return nil
		}
		if d.Name() == c.destName {
			return filepath.SkipDir
		}
		if !c.marker.Match(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(c.root, path)
		if err != nil {
			return nil
		}
		c.mirror(report, path, filepath.Join(dest, rel), rel)
		// Marked folders are mirrored whole; nested marks inside them
		// would only duplicate content already covered.
		return filepath.SkipDir
	})
	if err != nil {
		return report, err
	}
	log.Info("private mirror: %d copied, %d skipped, %d errors, %d bytes",
		report.Copied, report.Skipped, report.Errors, report.TotalBytes)
	return report, nil
}

func (c *Copier) mirror(report *Report, src, dst, rel string) {
	if _, err := os.Stat(dst); err == nil {
		log.Info("mirror already exists, skipped: %s", rel)
		report.Entries = append(report.Entries, Entry{RelPath: rel, Status: Skipped})
		report.Skipped++
		return
	}

	bytes, err := copyTree(src, dst)
	if err != nil {
		log.Error("mirroring %s: %v", rel, err)
		report.Entries = append(report.Entries, Entry{RelPath: rel, Status: Failed})
		report.Errors++
		return
	}
	log.Info("mirrored %s (%d bytes)", rel, bytes)
	report.Entries = append(report.Entries, Entry{RelPath: rel, Status: Copied, Bytes: bytes})
	report.Copied++
	report.TotalBytes += bytes
}

// copyTree copies a directory tree and returns the bytes written.
func copyTree(src, dst string) (int64, error) {
	var total int64
	err := filepath.WalkDir(src, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0755)
		}
		n, err := copyFile(path, target)
		total += n
		return err
	})
	return total, err
}

func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if err != nil {
		out.Close()
		return n, err
	}
	return n, out.Close()
}
