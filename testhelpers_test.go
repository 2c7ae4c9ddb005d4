package dmgvram

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/dmgvram/vram"
	"github.com/stretchr/testify/require"
)

func newTestViewer(opts *vram.Options) *Viewer {
	return New(opts, log.New(io.Discard, "", 0))
}

// pattern returns a dump where every tile is filled with tile-specific data
// and both tile maps count up from zero.
func pattern() []byte {
	b := make([]byte, vram.Size)
	for i := 0; i < vram.MapBase0; i++ {
		b[i] = byte(i >> 4)
	}
	for i := 0; i < vram.MapSize; i++ {
		b[vram.MapBase0+i] = byte(i)
		b[vram.MapBase1+i] = byte(i)
	}
	return b
}

func writeDump(t *testing.T, dir, name string, b []byte) string {
	t.Helper()
	file := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(file, b, 0o644))
	return file
}
