//go:build !linux && !darwin

package media

import "time"

func birthTime(string) (time.Time, bool) {
	return time.Time{}, false
}
