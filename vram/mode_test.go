package vram

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMode(t *testing.T) {
	for _, m := range []Mode{ModeMap, ModeTiles, ModeGrid} {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}

	got, err := ParseMode("TILES")
	require.NoError(t, err)
	assert.Equal(t, ModeTiles, got)

	_, err = ParseMode("sprites")
	assert.Error(t, err)

	assert.Equal(t, "Mode(7)", Mode(7).String())
}

func TestOptions(t *testing.T) {
	grayscale := Grayscale

	tables := []struct {
		name   string
		opts   *Options
		s      string
		width  int
		height int
	}{
		{"nil", nil, "map/rgba", 256, 256},
		{"map", &Options{}, "map/rgba", 256, 256},
		{"signed", &Options{Signed: true}, "map+signed/rgba/grayscale", 256, 512},
		{"tiles", &Options{Mode: ModeTiles, Signed: true}, "tiles/rgba", 128, 192},
		{"grid", &Options{Mode: ModeGrid, Palette: &grayscale}, "grid/grayscale", 256, 256},
	}

	for _, table := range tables {
		t.Run(table.name, func(t *testing.T) {
			assert.Equal(t, table.s, table.opts.String())
			w, h := table.opts.Size()
			assert.Equal(t, table.width, w)
			assert.Equal(t, table.height, h)
		})
	}
}
