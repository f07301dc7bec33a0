package dedup

import (
	"os"
	"path/filepath"

	"camsort/internal/log"
)

// Status is the result of a duplicate check.
type Status int

const (
	// Accepted means the content is new to the destination and its digest
	// has been registered.
	Accepted Status = iota
	// Duplicate means identical content is already present.
	Duplicate
)

// Index is the set of content digests known to exist in one destination
// directory. It is process-local state scoped to a single run; sharing a
// destination between concurrent runs loses updates and is not supported.
type Index struct {
	dir     string
	seeded  bool
	digests map[string]struct{}
}

// NewIndex returns an empty index for the given destination directory.
// Existing files are not hashed until the first CheckAndRegister call.
func NewIndex(dir string) *Index {
	return &Index{dir: dir, digests: make(map[string]struct{})}
}

// Dir returns the destination directory this index covers.
func (ix *Index) Dir() string {
	return ix.dir
}

// CheckAndRegister computes the digest of srcPath and answers whether that
// content is already present in the destination. New content is registered
// before returning, so of two identical files checked in sequence exactly
// one is Accepted, whichever order they arrive in.
//
// A digest failure on srcPath is returned to the caller; the index is left
// unchanged so the file can still proceed conservatively.
func (ix *Index) CheckAndRegister(srcPath string) (Status, error) {
	if !ix.seeded {
		ix.seed()
	}

	digest, err := HashFile(srcPath)
	if err != nil {
		return Accepted, err
	}
	if _, seen := ix.digests[digest]; seen {
		return Duplicate, nil
	}
	ix.digests[digest] = struct{}{}
	return Accepted, nil
}

// seed hashes the regular files already in the destination directory,
// non-recursively. Unreadable entries are logged and excluded from the seed
// set; a missing directory simply seeds empty.
func (ix *Index) seed() {
	ix.seeded = true

	entries, err := os.ReadDir(ix.dir)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warn("cannot scan destination %s: %v", ix.dir, err)
		}
		return
	}
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		path := filepath.Join(ix.dir, entry.Name())
		digest, err := HashFile(path)
		if err != nil {
			log.Warn("skipping unreadable file in %s seed scan: %v", ix.dir, err)
			continue
		}
		ix.digests[digest] = struct{}{}
	}
	log.Debug("seeded index for %s with %d digests", ix.dir, len(ix.digests))
}
