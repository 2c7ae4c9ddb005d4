package vram

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPixel(t *testing.T) {
	tests := []struct {
		lo, hi byte
		col    int
		want   uint8
	}{
		{0x00, 0x00, 0, 0},
		{0x80, 0x00, 0, 1},
		{0x00, 0x80, 0, 2},
		{0x80, 0x80, 0, 3},
		{0x01, 0x00, 7, 1},
		{0x00, 0x01, 7, 2},
		{0x01, 0x01, 7, 3},
		{0xaa, 0x00, 0, 1},
		{0xaa, 0x00, 1, 0},
		{0x55, 0xaa, 1, 1},
		{0x55, 0xaa, 2, 2},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, Pixel(tt.lo, tt.hi, tt.col), "lo=%08b hi=%08b col=%d", tt.lo, tt.hi, tt.col)
	}
}

func TestPixelCoversAllIndices(t *testing.T) {
	seen := make(map[uint8]bool)
	for lo := 0; lo < 2; lo++ {
		for hi := 0; hi < 2; hi++ {
			got := Pixel(byte(lo<<7), byte(hi<<7), 0)
			assert.Equal(t, uint8(hi<<1|lo), got)
			seen[got] = true
		}
	}
	assert.Len(t, seen, 4)
}

func TestDecodeTile(t *testing.T) {
	var zero, ones Tile
	for y := range ones {
		for x := range ones[y] {
			ones[y][x] = 3
		}
	}

	assert.Equal(t, zero, DecodeTile(make([]byte, TileSize)))
	assert.Equal(t, ones, DecodeTile(bytes.Repeat([]byte{0xff}, TileSize)))

	b := make([]byte, TileSize)
	b[0], b[1] = 0xf0, 0xcc
	got := DecodeTile(b)
	assert.Equal(t, [TileWidth]uint8{3, 3, 1, 1, 2, 2, 0, 0}, got[0])
	assert.Equal(t, [TileWidth]uint8{}, got[1])
}
