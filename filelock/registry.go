// Package filelock implements LockingFile: a per-canonical-path facade
// composing an in-process reentrant shared/exclusive lock with an OS-level
// advisory lock (golang.org/x/sys/unix.Flock), plus the process-wide
// canonical-path registry that hands out a single shared instance per
// filesystem entity.
package filelock

import (
	"os"
	"path/filepath"
	"sync"
	"weak"
)

var registry = struct {
	mu    sync.Mutex
	files map[string]weak.Pointer[LockingFile]
}{files: make(map[string]weak.Pointer[LockingFile])}

// pinned holds a strong reference to every LockingFile that currently has
// at least one OS lock held, so the weak map above cannot let the garbage
// collector reclaim it mid-hold.
var pinned = struct {
	mu    sync.Mutex
	files map[string]*LockingFile
}{files: make(map[string]*LockingFile)}

// CanonicalPath resolves path to the absolute, symlink-resolved form used
// as the registry key. If the path does not yet exist but its parent
// directory does, the parent is symlink-resolved and the base name appended;
// otherwise the absolute path is returned unresolved.
func CanonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	// Path (or a component of it) doesn't exist yet; resolve the parent
	// directory if it exists, and append the base name unchanged.
	dir, base := filepath.Split(abs)
	dir = filepath.Clean(dir)
	if resolvedDir, err := filepath.EvalSymlinks(dir); err == nil {
		return filepath.Join(resolvedDir, base), nil
	}
	return abs, nil
}

// For returns the shared LockingFile for path's canonical filesystem
// entity, creating it on first access. Every subsequent lookup for any
// path naming the same entity, canonical or not, returns the same
// instance while a strong reference to it survives.
func For(path string) (*LockingFile, error) {
	canon, err := CanonicalPath(path)
	if err != nil {
		return nil, err
	}

	registry.mu.Lock()
	defer registry.mu.Unlock()

	if wp, ok := registry.files[canon]; ok {
		if lf := wp.Value(); lf != nil {
			return lf, nil
		}
	}

	lf := newLockingFile(canon)
	registry.files[canon] = weak.Make(lf)
	return lf, nil
}

func pin(lf *LockingFile) {
	pinned.mu.Lock()
	pinned.files[lf.path] = lf
	pinned.mu.Unlock()
}

func unpin(lf *LockingFile) {
	pinned.mu.Lock()
	delete(pinned.files, lf.path)
	pinned.mu.Unlock()
}

// lockFilePath applies the lock-file path rule: a directory's lock file is
// <dir>/.lock; a regular file's lock file is the file path with ".lock"
// appended in the same directory.
func lockFilePath(protected string) string {
	if info, err := os.Stat(protected); err == nil && info.IsDir() {
		return filepath.Join(protected, ".lock")
	}
	return protected + ".lock"
}
