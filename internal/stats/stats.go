// Package stats scans an organized archive and aggregates collection
// statistics: how many files, how large, split by extension, camera and
// year. It only reads; the archive is never modified.
package stats

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"camsort/internal/log"
)

// monthFolder matches the YYYY.MM month buckets the pipeline produces.
var monthFolder = regexp.MustCompile(`^(\d{4})\.(\d{2})$`)

// Scope narrows a scan. Empty fields mean "all".
type Scope struct {
	Camera string
	Month  string // YYYY.MM
}

// Stats is the aggregate over all scanned files.
type Stats struct {
	TotalFiles  int
	TotalBytes  int64
	ByExtension map[string]int
	ByCamera    map[string]int
	ByYear      map[int]int
}

// Collector scans an archive root.
type Collector struct {
	root     string
	reserved string
	exts     map[string]bool
}

// NewCollector builds a Collector over root, skipping the reserved folder
// and counting only the given extensions.
func NewCollector(root, reserved string, exts map[string]bool) *Collector {
	return &Collector{root: root, reserved: reserved, exts: exts}
}

// Cameras lists the camera folders available for scoping, sorted.
func (c *Collector) Cameras() ([]string, error) {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		return nil, err
	}
	var cameras []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.EqualFold(entry.Name(), c.reserved) {
			cameras = append(cameras, entry.Name())
		}
	}
	sort.Strings(cameras)
	return cameras, nil
}

// Collect walks the archive within scope and returns the aggregates.
func (c *Collector) Collect(scope Scope) (*Stats, error) {
	stats := &Stats{
		ByExtension: make(map[string]int),
		ByCamera:    make(map[string]int),
		ByYear:      make(map[int]int),
	}

	cameras, err := c.Cameras()
	if err != nil {
		return nil, err
	}
	for _, camera := range cameras {
		if scope.Camera != "" && camera != scope.Camera {
			continue
		}
		if err := c.collectCamera(stats, camera, scope); err != nil {
			log.Warn("scanning %s: %v", camera, err)
		}
	}
	log.Info("collected stats over %d files (%d bytes)", stats.TotalFiles, stats.TotalBytes)
	return stats, nil
}

func (c *Collector) collectCamera(stats *Stats, camera string, scope Scope) error {
	cameraPath := filepath.Join(c.root, camera)
	entries, err := os.ReadDir(cameraPath)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		m := monthFolder.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		if scope.Month != "" && entry.Name() != scope.Month {
			continue
		}
		year, _ := strconv.Atoi(m[1])
		c.collectMonth(stats, camera, year, filepath.Join(cameraPath, entry.Name()))
	}
	return nil
}

// collectMonth counts every media file under the month folder, including
// theme subfolders and their RAW directories.
func (c *Collector) collectMonth(stats *Stats, camera string, year int, monthPath string) {
	_ = filepath.WalkDir(monthPath, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			log.Warn("walk error at %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(d.Name()))
		if !c.exts[ext] {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return nil
		}
		stats.TotalFiles++
		stats.TotalBytes += info.Size()
		stats.ByExtension[ext]++
		stats.ByCamera[camera]++
		stats.ByYear[year]++
		return nil
	})
}
