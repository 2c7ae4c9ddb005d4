package vram

import (
	"fmt"
	"strings"
)

// Mode selects the layout of a decoded Frame.
type Mode int

const (
	// ModeMap draws the 32 by 32 tile map at MapBase0 using unsigned
	// addressing, optionally followed by the map at MapBase1 using signed
	// addressing.
	ModeMap Mode = iota
	// ModeTiles draws the 384 tile character set, 16 tiles per row.
	ModeTiles
	// ModeGrid draws tiles 0 to 1023, 32 per row. Tiles beyond the end of
	// the dump are left unpainted.
	ModeGrid
)

var modeNames = [...]string{
	ModeMap:   "map",
	ModeTiles: "tiles",
	ModeGrid:  "grid",
}

func (m Mode) String() string {
	if m >= 0 && int(m) < len(modeNames) {
		return modeNames[m]
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode returns the Mode with the given name.
func ParseMode(name string) (Mode, error) {
	for i, n := range modeNames {
		if strings.EqualFold(n, name) {
			return Mode(i), nil
		}
	}
	return 0, fmt.Errorf("vram: unknown mode %q", name)
}

// Options control how a Buffer is decoded. The zero value decodes the
// unsigned tile map with the RGBA palette.
type Options struct {
	Mode Mode
	// Signed adds the signed tile map region below the unsigned one in
	// ModeMap.
	Signed bool
	// Palette is used for everything except the signed region. Defaults
	// to RGBA.
	Palette *Palette
	// SignedPalette is used for the signed region. Defaults to Grayscale.
	SignedPalette *Palette
}

func (o *Options) palette() Palette {
	if o == nil || o.Palette == nil {
		return RGBA
	}
	return *o.Palette
}

func (o *Options) signedPalette() Palette {
	if o == nil || o.SignedPalette == nil {
		return Grayscale
	}
	return *o.SignedPalette
}

func (o *Options) mode() Mode {
	if o == nil {
		return ModeMap
	}
	return o.Mode
}

func (o *Options) signed() bool {
	return o != nil && o.Signed
}

// String describes the options, for example "map+signed/rgba/grayscale".
func (o *Options) String() string {
	s := o.mode().String()
	if o.mode() == ModeMap && o.signed() {
		return s + "+signed/" + o.palette().Name() + "/" + o.signedPalette().Name()
	}
	return s + "/" + o.palette().Name()
}

// Size returns the dimensions of the Frame produced with these options.
func (o *Options) Size() (int, int) {
	switch o.mode() {
	case ModeTiles:
		return charsetTilesX * TileWidth, charsetTilesY * TileHeight
	case ModeGrid:
		return gridTilesX * TileWidth, gridTiles / gridTilesX * TileHeight
	}
	h := MapWidth * TileHeight
	if o.signed() {
		h <<= 1
	}
	return MapWidth * TileWidth, h
}
