package filelock

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// helperLockPathEnv names the environment variable that tells a re-exec'd
// copy of this test binary to run as a lock-holding helper process rather
// than the test suite itself; see TestMain.
const helperLockPathEnv = "FILELOCK_HELPER_LOCK_PATH"

// TestMain lets this binary re-exec itself as a helper process that holds
// an exclusive OS lock, so tests can exercise cross-process contention -
// the in-process canAcquire gate never runs in a fresh process, so this is
// the only way to reach the real flock syscall from a test.
func TestMain(m *testing.M) {
	if path := os.Getenv(helperLockPathEnv); path != "" {
		os.Exit(runLockHolderHelper(path))
	}
	os.Exit(m.Run())
}

func runLockHolderHelper(path string) int {
	lf, err := For(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := lf.Lock(context.Background(), Exclusive, NewOwner()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("locked")
	io.Copy(io.Discard, os.Stdin)
	return 0
}

func tempProtectedFile(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	return path
}

func TestForReturnsSameInstance(t *testing.T) {
	is := assert.New(t)
	req := require.New(t)

	path := tempProtectedFile(t)

	a, err := For(path)
	req.NoError(err)
	b, err := For(path)
	req.NoError(err)
	is.Same(a, b)
}

func TestLockFilePathRule(t *testing.T) {
	is := assert.New(t)

	dir := t.TempDir()
	is.Equal(filepath.Join(dir, ".lock"), lockFilePath(dir))

	file := filepath.Join(dir, "f.bin")
	is.Equal(file+".lock", lockFilePath(file))
}

func TestExclusiveExcludesShared(t *testing.T) {
	is := assert.New(t)
	req := require.New(t)

	lf := newLockingFile(filepath.Join(t.TempDir(), "data.bin"))
	owner1, owner2 := NewOwner(), NewOwner()

	req.NoError(lf.Lock(context.Background(), Exclusive, owner1))

	ok, err := lf.TryLock(context.Background(), Shared, owner2, 0)
	req.NoError(err)
	is.False(ok)

	req.NoError(lf.Unlock(owner1))

	ok, err = lf.TryLock(context.Background(), Shared, owner2, 0)
	req.NoError(err)
	is.True(ok)
	req.NoError(lf.Unlock(owner2))
}

func TestReentrantNestingUnderExclusive(t *testing.T) {
	is := assert.New(t)
	req := require.New(t)

	lf := newLockingFile(filepath.Join(t.TempDir(), "data.bin"))
	owner := NewOwner()

	req.NoError(lf.Lock(context.Background(), Exclusive, owner))
	req.NoError(lf.Lock(context.Background(), Shared, owner))
	req.NoError(lf.Lock(context.Background(), Exclusive, owner))

	is.Len(lf.owners[owner], 3)

	req.NoError(lf.Unlock(owner))
	req.NoError(lf.Unlock(owner))
	is.NotNil(lf.exclusiveOwner)
	req.NoError(lf.Unlock(owner))
	is.Nil(lf.exclusiveOwner)
}

func TestUnlockWithoutLockIsIllegalState(t *testing.T) {
	is := assert.New(t)

	lf := newLockingFile(filepath.Join(t.TempDir(), "data.bin"))
	err := lf.Unlock(NewOwner())
	is.Error(err)

	var lockErr *Error
	is.ErrorAs(err, &lockErr)
	is.Equal(IllegalState, lockErr.Kind)
}

func TestLockInterruptedByContext(t *testing.T) {
	is := assert.New(t)
	req := require.New(t)

	lf := newLockingFile(filepath.Join(t.TempDir(), "data.bin"))
	owner1, owner2 := NewOwner(), NewOwner()

	req.NoError(lf.Lock(context.Background(), Exclusive, owner1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := lf.Lock(ctx, Exclusive, owner2)
	is.Error(err)

	var lockErr *Error
	is.ErrorAs(err, &lockErr)
	is.Equal(LockInterrupted, lockErr.Kind)
}

// Two distinct owners may both hold Shared at once; neither is required
// to unlock in the order it acquired relative to the other.
func TestSharedMultipleOwnersUnlockOutOfOrder(t *testing.T) {
	is := assert.New(t)
	req := require.New(t)

	lf := newLockingFile(filepath.Join(t.TempDir(), "data.bin"))
	ownerA, ownerB := NewOwner(), NewOwner()

	ok, err := lf.TryLock(context.Background(), Shared, ownerA, 0)
	req.NoError(err)
	is.True(ok)

	ok, err = lf.TryLock(context.Background(), Shared, ownerB, 0)
	req.NoError(err)
	is.True(ok)

	// ownerA unlocks first even though ownerB acquired second; a single
	// process-wide LIFO stack would pop ownerB's entry here and reject
	// this call with IllegalState.
	req.NoError(lf.Unlock(ownerA))

	ok, err = lf.TryLock(context.Background(), Shared, NewOwner(), 0)
	req.NoError(err)
	is.True(ok)

	req.NoError(lf.Unlock(ownerB))
}

// TryLock's zero timeout must make exactly one non-blocking attempt even
// when the OS-level exclusive lock is held by a different process, rather
// than falling through to a blocking flock syscall that ignores the
// timeout entirely.
func TestTryLockNonBlockingAcrossProcesses(t *testing.T) {
	is := assert.New(t)
	req := require.New(t)

	path := tempProtectedFile(t)

	cmd := exec.Command(os.Args[0], "-test.run=^TestMain$")
	cmd.Env = append(os.Environ(), helperLockPathEnv+"="+path)
	stdin, err := cmd.StdinPipe()
	req.NoError(err)
	stdout, err := cmd.StdoutPipe()
	req.NoError(err)
	cmd.Stderr = os.Stderr

	req.NoError(cmd.Start())
	defer func() {
		stdin.Close()
		cmd.Wait()
	}()

	scanner := bufio.NewScanner(stdout)
	req.True(scanner.Scan())
	is.Equal("locked", scanner.Text())

	lf, err := For(path)
	req.NoError(err)

	start := time.Now()
	ok, err := lf.TryLock(context.Background(), Shared, NewOwner(), 0)
	elapsed := time.Since(start)

	req.NoError(err)
	is.False(ok)
	is.Less(elapsed, 2*time.Second)
}
