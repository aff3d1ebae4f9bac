//go:build !netbsd

package safefileio

import (
	"errors"
	"os"
	"syscall"
)

// noFollowErrnos are the errno values reported for O_NOFOLLOW on a symlink.
// Linux uses ELOOP, FreeBSD uses EMLINK.
var noFollowErrnos = []syscall.Errno{syscall.ELOOP, syscall.EMLINK}

// isNoFollowError checks if the error indicates we tried to open a symlink
func isNoFollowError(err error) bool {
	var e *os.PathError
	if !errors.As(err, &e) {
		return false
	}
	for _, errno := range noFollowErrnos {
		if errors.Is(e.Err, errno) {
			return true
		}
	}
	return false
}
