//go:build linux

package media

import (
	"time"

	"golang.org/x/sys/unix"
)

// birthTime queries the filesystem birth timestamp via statx. Not every
// filesystem fills STATX_BTIME, so absence is a normal outcome.
func birthTime(path string) (time.Time, bool) {
	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME, &stx); err != nil {
		return time.Time{}, false
	}
	if stx.Mask&unix.STATX_BTIME == 0 {
		return time.Time{}, false
	}
	return time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec)), true
}
