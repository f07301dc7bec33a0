//go:build !linux

package classify

import "time"

// creationTime is unavailable on this platform; the resolver falls through
// to the modification time.
func creationTime(path string) (time.Time, bool) {
	return time.Time{}, false
}
