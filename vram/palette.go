package vram

import (
	"fmt"
	"image/color"
	"strings"
)

// Palette maps a 2-bit colour index to a packed colour. Colours are packed
// as 0xAABBGGRR so the little-endian byte order is R, G, B, A.
type Palette [4]uint32

// Sentinel is the colour of any pixel not written by a tile.
const Sentinel uint32 = 0xffff00ff

// RGBA is the colour palette, index 0 being the lightest.
var RGBA = Palette{0xffbecab1, 0xff7f4c33, 0xffa06f86, 0xff000000}

// Grayscale takes the low byte of each RGBA entry as a shade and replicates
// it across the three colour channels.
var Grayscale = RGBA.Shades()

var palettes = map[string]Palette{
	"rgba":      RGBA,
	"grayscale": Grayscale,
}

// ParsePalette returns the named palette, either "rgba" or "grayscale".
func ParsePalette(name string) (Palette, error) {
	p, ok := palettes[strings.ToLower(name)]
	if !ok {
		return Palette{}, fmt.Errorf("vram: unknown palette %q", name)
	}
	return p, nil
}

// Name returns the name ParsePalette accepts for p, or "custom".
func (p Palette) Name() string {
	for n, q := range palettes {
		if p == q {
			return n
		}
	}
	return "custom"
}

// Shades returns a grayscale palette built from the low byte of each entry.
func (p Palette) Shades() Palette {
	var s Palette
	for i, c := range p {
		shade := c & 0xff
		s[i] = 0xff000000 | shade<<16 | shade<<8 | shade
	}
	return s
}

// Color returns the colour for index i.
func (p Palette) Color(i uint8) color.RGBA {
	return unpack(p[i&3])
}

func unpack(c uint32) color.RGBA {
	return color.RGBA{
		R: uint8(c),
		G: uint8(c >> 8),
		B: uint8(c >> 16),
		A: uint8(c >> 24),
	}
}

func pack(c color.RGBA) uint32 {
	return uint32(c.A)<<24 | uint32(c.B)<<16 | uint32(c.G)<<8 | uint32(c.R)
}
