//go:build linux

package filelock

import (
	"errors"

	"golang.org/x/sys/unix"
)

// osFlock applies (or upgrades/downgrades) an advisory lock on fd in the
// given mode. nonblock controls whether unix.LOCK_NB is set.
func osFlock(fd int, kind LockKind, nonblock bool) error {
	op := unix.LOCK_SH
	if kind == Exclusive {
		op = unix.LOCK_EX
	}
	if nonblock {
		op |= unix.LOCK_NB
	}
	return unix.Flock(fd, op)
}

func osUnlock(fd int) error {
	return unix.Flock(fd, unix.LOCK_UN)
}

// isLockWouldBlock reports whether err is the "lock is held elsewhere"
// failure a LOCK_NB flock returns, as opposed to a hard I/O error.
func isLockWouldBlock(err error) bool {
	return errors.Is(err, unix.EWOULDBLOCK)
}
