//go:build !linux

package filelock

import "errors"

// osFlock has no portable implementation outside Linux in this module; it
// fails loudly rather than silently granting an unenforced lock.
func osFlock(fd int, kind LockKind, nonblock bool) error {
	return errors.New("filelock: OS-level locking is not implemented on this platform")
}

func osUnlock(fd int) error {
	return nil
}

// isLockWouldBlock always reports false here: osFlock never succeeds on
// this platform, so it never produces a "would block" condition distinct
// from its blanket unimplemented error.
func isLockWouldBlock(err error) bool {
	return false
}
