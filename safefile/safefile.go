// Package safefile implements atomic "write-temp-then-rename" file
// publication: writers never expose partial contents at the destination
// path, coordinated across processes by a *filelock.LockingFile held in
// exclusive mode for the duration of the write.
package safefile

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/simon-greatrix/textcodecs/filelock"
)

// Config holds the one documented tunable for this package.
type Config struct {
	// KeepBadTempFile, when true, retains the temporary file after a
	// failed or aborted write instead of deleting it, for post-mortem.
	KeepBadTempFile bool
}

// Output is an open-for-writing destination: writes go to a temporary
// sibling file and only become visible at Path on a committing Close.
type Output struct {
	path     string
	tempPath string
	temp     *os.File
	lf       *filelock.LockingFile
	owner    any
	cfg      Config
	closed   bool
}

// Open acquires the destination's lock in exclusive mode (blocking on
// ctx) and creates a temporary sibling file to receive writes. If the
// destination already exists and overwrite is false, Open returns
// ok == false without creating anything.
func Open(ctx context.Context, path string, overwrite bool, cfg Config) (out *Output, ok bool, err error) {
	lf, err := filelock.For(path)
	if err != nil {
		return nil, false, err
	}

	owner := filelock.NewOwner()
	if err := lf.Lock(ctx, filelock.Exclusive, owner); err != nil {
		return nil, false, err
	}

	if !overwrite {
		if _, statErr := os.Stat(path); statErr == nil {
			_ = lf.Unlock(owner)
			return nil, false, nil
		}
	}

	tempPath, err := tempSiblingName(path)
	if err != nil {
		_ = lf.Unlock(owner)
		return nil, false, err
	}

	temp, err := os.OpenFile(tempPath, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		_ = lf.Unlock(owner)
		return nil, false, err
	}

	return &Output{
		path:     path,
		tempPath: tempPath,
		temp:     temp,
		lf:       lf,
		owner:    owner,
		cfg:      cfg,
	}, true, nil
}

func tempSiblingName(destPath string) (string, error) {
	dir := filepath.Dir(destPath)
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", err
	}
	name := "__SETL__." + hex.EncodeToString(buf[:]) + ".pending"
	return filepath.Join(dir, name), nil
}

// Write implements io.Writer against the temporary file.
func (o *Output) Write(p []byte) (int, error) {
	if o.closed {
		return 0, &IllegalStateError{Path: o.path, Msg: "write after close"}
	}
	n, err := o.temp.Write(p)
	if err != nil {
		return n, &WriteError{Path: o.path, Err: err}
	}
	return n, nil
}

// WriteAt writes p at the given offset within the temporary file.
func (o *Output) WriteAt(p []byte, off int64) (int, error) {
	if o.closed {
		return 0, &IllegalStateError{Path: o.path, Msg: "write after close"}
	}
	n, err := o.temp.WriteAt(p, off)
	if err != nil {
		return n, &WriteError{Path: o.path, Err: err}
	}
	return n, nil
}

// TransferFrom copies all of src into the temporary file using buf as
// scratch space (buf may be nil to let io.CopyBuffer choose its own).
func (o *Output) TransferFrom(src io.Reader, buf []byte) (int64, error) {
	if o.closed {
		return 0, &IllegalStateError{Path: o.path, Msg: "write after close"}
	}
	n, err := io.CopyBuffer(o.temp, src, buf)
	if err != nil {
		return n, &WriteError{Path: o.path, Err: err}
	}
	return n, nil
}

// Close finalizes the write. With commit true, the temporary file is
// renamed onto the destination (replacing it if present); with commit
// false, the temporary file is discarded unless KeepBadTempFile is set.
// Either way the destination's lock is released.
func (o *Output) Close(commit bool) error {
	if o.closed {
		return &IllegalStateError{Path: o.path, Msg: "already closed"}
	}
	o.closed = true

	var primary error
	closeErr := o.temp.Close()

	if commit && closeErr == nil {
		if _, err := os.Stat(o.path); err == nil {
			if err := os.Remove(o.path); err != nil {
				primary = err
			}
		}
		if primary == nil {
			if err := os.Rename(o.tempPath, o.path); err != nil {
				primary = err
			}
		}
	} else {
		if closeErr != nil {
			primary = closeErr
		}
		if !o.cfg.KeepBadTempFile {
			if err := os.Remove(o.tempPath); err != nil && !os.IsNotExist(err) {
				primary = errors.Join(primary, err)
			}
		}
	}

	if err := o.lf.Unlock(o.owner); err != nil {
		primary = errors.Join(primary, err)
	}

	if primary != nil {
		return &WriteError{Path: o.path, Err: primary}
	}
	return nil
}

// Probe reports the publication state of path without blocking.
func Probe(path string) (Progress, error) {
	if _, err := os.Stat(path); err == nil {
		return Complete, nil
	}

	lf, err := filelock.For(path)
	if err != nil {
		return Missing, err
	}
	lockPath := lf.LockFilePath()

	if _, err := os.Stat(lockPath); err != nil {
		return Missing, nil
	}

	owner := filelock.NewOwner()
	ok, err := lf.TryLock(context.Background(), filelock.Shared, owner, 0)
	if err != nil {
		return Missing, err
	}
	if !ok {
		return InProgress, nil
	}
	_ = lf.Unlock(owner)
	return Failed, nil
}

// WaitFor blocks until either path is published or no writer holds the
// lock. It acquires and immediately releases a shared lock, then checks
// whether the destination exists, so it cannot race a writer's rename.
func WaitFor(ctx context.Context, path string) (Progress, error) {
	lf, err := filelock.For(path)
	if err != nil {
		return Missing, err
	}

	owner := filelock.NewOwner()
	if err := lf.Lock(ctx, filelock.Shared, owner); err != nil {
		return Missing, err
	}
	defer lf.Unlock(owner)

	if _, err := os.Stat(path); err == nil {
		return Complete, nil
	}
	return Missing, nil
}
