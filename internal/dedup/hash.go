// Package dedup detects byte-identical duplicate files via content digests.
// An Index owns the set of digests already present in one destination
// directory, seeded lazily from the directory's current contents.
package dedup

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"

	"camsort/internal/errors"
)

// hashBlockSize is the read block used when streaming a file.
const hashBlockSize = 64 * 1024

// HashFile computes the SHA-256 digest of the file at path, streaming it in
// fixed-size blocks. Equal digests mean byte-identical content.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(errors.HashFailure, path, "opening file for digest", err)
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, hashBlockSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", errors.Wrap(errors.HashFailure, path, "reading file for digest", err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
