//go:build linux

package classify

import (
	"os"
	"syscall"
	"time"
)

// creationTime returns the closest thing Unix filesystems expose to a file
// creation timestamp: the inode change time. This matches how the archive
// was historically dated on the machines it lives on.
func creationTime(path string) (time.Time, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, false
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return time.Time{}, false
	}
	return time.Unix(stat.Ctim.Sec, stat.Ctim.Nsec), true
}
