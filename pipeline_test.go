package dmgvram

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatch(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".hidden"), 0o755))

	writeDump(t, dir, "a.bin", pattern())
	writeDump(t, dir, "sub/b.BIN", pattern())
	writeDump(t, dir, "c.bin", make([]byte, 100))
	writeDump(t, dir, ".hidden/d.bin", pattern())
	writeDump(t, dir, "e.txt", pattern())

	require.NoError(t, newTestViewer(nil).Batch(dir, FormatGIF, 1, 2))

	tables := map[string]bool{
		"a.gif":         true,
		"sub/b.gif":     true,
		"c.gif":         false,
		".hidden/d.gif": false,
		"e.gif":         false,
	}

	for file, exists := range tables {
		_, err := os.Stat(filepath.Join(dir, file))
		if exists {
			assert.NoError(t, err, file)
		} else {
			assert.True(t, os.IsNotExist(err), file)
		}
	}
}

func TestBatchErrors(t *testing.T) {
	dir := t.TempDir()
	v := newTestViewer(nil)

	assert.Error(t, v.Batch(dir, "tga", 1, 1))
	assert.Error(t, v.Batch(filepath.Join(dir, "missing"), FormatPNG, 1, 1))

	// The output path is a directory so the export fails
	writeDump(t, dir, "x.bin", pattern())
	require.NoError(t, os.Mkdir(filepath.Join(dir, "x.png"), 0o755))
	assert.Error(t, v.Batch(dir, FormatPNG, 1, 0))
}

func TestBatchStopsOnFirstError(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.bin", "b.bin", "c.bin", "d.bin"} {
		writeDump(t, dir, name, pattern())
	}
	// Walked first, and its output path is a directory
	writeDump(t, dir, "0.bin", pattern())
	require.NoError(t, os.Mkdir(filepath.Join(dir, "0.png"), 0o755))

	err := newTestViewer(nil).Batch(dir, FormatPNG, 1, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0.bin")
	assert.NotErrorIs(t, err, errWalkCancelled)
}

func TestWaitForPipeline(t *testing.T) {
	errA, errB := errors.New("a"), errors.New("b")

	a := make(chan error, 2)
	a <- errA
	a <- errB
	close(a)

	b := make(chan error)
	close(b)

	// Unbuffered, so the sender blocks until the error is drained
	c := make(chan error)
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer close(c)
		c <- nil
	}()

	cancelled := 0
	err := waitForPipeline(func() { cancelled++ }, a, b, c)
	assert.ErrorIs(t, err, errA)
	assert.Equal(t, 1, cancelled)
	<-done
}
