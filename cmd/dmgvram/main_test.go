package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bodgit/dmgvram/vram"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"
)

type result struct {
	code   int
	err    error
	stdout string
	stderr string
}

func run(t *testing.T, cwd string, args ...string) result {
	t.Helper()

	r := result{code: -1}

	exiter, errWriter := cli.OsExiter, cli.ErrWriter
	t.Cleanup(func() {
		cli.OsExiter, cli.ErrWriter = exiter, errWriter
	})

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	cli.OsExiter = func(code int) {
		r.code = code
	}
	cli.ErrWriter = stderr

	app := newApp(cwd)
	app.Writer = stdout
	app.ErrWriter = stderr

	r.err = app.Run(append([]string{"dmgvram"}, args...))
	r.stdout, r.stderr = stdout.String(), stderr.String()

	return r
}

func writeFile(t *testing.T, dir, name string, b []byte) string {
	t.Helper()
	file := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(file, b, 0o644))
	return file
}

func TestUsage(t *testing.T) {
	r := run(t, t.TempDir())

	assert.Error(t, r.err)
	assert.Equal(t, 1, r.code)
	assert.Equal(t, usage+"\n", r.stderr)
	assert.Empty(t, r.stdout)
}

func TestViewFailures(t *testing.T) {
	dir := t.TempDir()
	dump := writeFile(t, dir, "vram.bin", make([]byte, vram.Size))

	tables := []struct {
		name   string
		args   []string
		stderr string
	}{
		{
			"missing file",
			[]string{"--headless", filepath.Join(dir, "missing.bin")},
			"file not found",
		},
		{
			"short file",
			[]string{"--headless", writeFile(t, dir, "short.bin", make([]byte, 100))},
			vram.ErrNotEnough.Error(),
		},
		{
			"long file",
			[]string{"--headless", writeFile(t, dir, "long.bin", make([]byte, vram.Size+1))},
			vram.ErrTooMuch.Error(),
		},
		{
			"bad mode",
			[]string{"--headless", "--mode", "sprites", dump},
			"unknown mode",
		},
		{
			"bad palette",
			[]string{"--headless", "--palette", "sepia", dump},
			"unknown palette",
		},
		{
			"bad signed palette",
			[]string{"--headless", "--signed", "--signed-palette", "sepia", dump},
			"unknown palette",
		},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			r := run(t, dir, table.args...)
			assert.Error(t, r.err)
			assert.Equal(t, 1, r.code)
			assert.Contains(t, r.stderr, table.stderr)
		})
	}
}

func TestViewHeadless(t *testing.T) {
	dir := t.TempDir()
	dump := writeFile(t, dir, "vram.bin", make([]byte, vram.Size))

	for _, args := range [][]string{
		{"--headless", "--frames", "1", dump},
		{"--headless", "--frames", "1", "--mode", "GRID", "--palette", "grayscale", dump},
		{"--headless", "--frames", "1", "--signed", "--signed-palette", "rgba", dump},
	} {
		r := run(t, dir, args...)
		assert.NoError(t, r.err, strings.Join(args, " "))
		assert.Equal(t, -1, r.code)
		assert.Empty(t, r.stderr)
	}
}

func TestCatalogueCommands(t *testing.T) {
	dir := t.TempDir()
	dump := writeFile(t, dir, "vram.bin", make([]byte, vram.Size))
	db := filepath.Join(dir, "test.db")

	// Global flags are seen by the subcommand
	r := run(t, dir, "--db", db, "--mode", "tiles", "record", dump)
	require.NoError(t, r.err)
	sha := strings.TrimSpace(r.stdout)
	require.Len(t, sha, 40)

	r = run(t, dir, "--db", db, "list")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, sha)
	assert.Contains(t, r.stdout, "path: "+dump)
	assert.Contains(t, r.stdout, "snapshot: tiles/rgba")

	out := filepath.Join(dir, "snapshot.png")
	r = run(t, dir, "--db", db, "--mode", "tiles", "snapshot", sha[:8], out)
	require.NoError(t, r.err)

	f, err := os.Open(out)
	require.NoError(t, err)
	defer f.Close()
	c, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 128, c.Width)
	assert.Equal(t, 192, c.Height)

	r = run(t, dir, "--db", db, "snapshot", sha, out)
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "no map/rgba snapshot")

	r = run(t, dir, "--db", db, "--headless", "--frames", "1", "show", sha[:6])
	assert.NoError(t, r.err)

	r = run(t, dir, "--db", db, "--headless", "show", "ABCDEF")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "dump not found")
}

func TestDefaultCatalogue(t *testing.T) {
	dir := t.TempDir()
	dump := writeFile(t, dir, "vram.bin", make([]byte, vram.Size))

	t.Setenv("DMGVRAM_MODE", "grid")

	r := run(t, dir, "record", dump)
	require.NoError(t, r.err)

	_, err := os.Stat(filepath.Join(dir, defaultDB))
	assert.NoError(t, err)

	r = run(t, dir, "list")
	require.NoError(t, r.err)
	assert.Contains(t, r.stdout, "snapshot: grid/rgba")
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	dump := writeFile(t, dir, "vram.bin", make([]byte, vram.Size))
	out := filepath.Join(dir, "vram.gif")

	r := run(t, dir, "--mode", "tiles", "export", "--scale", "2", dump, out)
	require.NoError(t, r.err)

	_, err := os.Stat(out)
	assert.NoError(t, err)

	r = run(t, dir, "export", dump, filepath.Join(dir, "vram.tga"))
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "unsupported image format")
}
