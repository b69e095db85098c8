package safefile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommitPublishesAtomically(t *testing.T) {
	is := assert.New(t)
	req := require.New(t)

	dir := t.TempDir()
	dest := filepath.Join(dir, "out.txt")

	out, ok, err := Open(context.Background(), dest, true, Config{})
	req.NoError(err)
	req.True(ok)

	_, err = out.Write([]byte("hello"))
	req.NoError(err)

	req.NoError(out.Close(true))

	got, err := os.ReadFile(dest)
	req.NoError(err)
	is.Equal("hello", string(got))

	entries, err := os.ReadDir(dir)
	req.NoError(err)
	for _, e := range entries {
		is.NotContains(e.Name(), "__SETL__")
	}
}

func TestAbortDiscardsTempFile(t *testing.T) {
	is := assert.New(t)
	req := require.New(t)

	dir := t.TempDir()
	dest := filepath.Join(dir, "out.txt")

	out, ok, err := Open(context.Background(), dest, true, Config{})
	req.NoError(err)
	req.True(ok)

	_, err = out.Write([]byte("partial"))
	req.NoError(err)
	req.NoError(out.Close(false))

	_, statErr := os.Stat(dest)
	is.True(os.IsNotExist(statErr))

	entries, err := os.ReadDir(dir)
	req.NoError(err)
	is.Empty(entries)
}

func TestOpenWithoutOverwriteSkipsExisting(t *testing.T) {
	req := require.New(t)
	is := assert.New(t)

	dir := t.TempDir()
	dest := filepath.Join(dir, "out.txt")
	req.NoError(os.WriteFile(dest, []byte("existing"), 0o644))

	out, ok, err := Open(context.Background(), dest, false, Config{})
	req.NoError(err)
	is.False(ok)
	is.Nil(out)
}

func TestProbeStates(t *testing.T) {
	is := assert.New(t)
	req := require.New(t)

	dir := t.TempDir()
	dest := filepath.Join(dir, "out.txt")

	p, err := Probe(dest)
	req.NoError(err)
	is.Equal(Missing, p)

	req.NoError(os.WriteFile(dest, []byte("done"), 0o644))
	p, err = Probe(dest)
	req.NoError(err)
	is.Equal(Complete, p)
}

func TestWaitForMissing(t *testing.T) {
	is := assert.New(t)
	req := require.New(t)

	dir := t.TempDir()
	dest := filepath.Join(dir, "out.txt")

	p, err := WaitFor(context.Background(), dest)
	req.NoError(err)
	is.Equal(Missing, p)
}
