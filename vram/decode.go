package vram

import (
	"image"
	"io"
)

// region is a rectangle of tiles in the output frame, in tile units.
type region struct {
	x, y          int
	width, height int
	palette       Palette
	// resolve returns the offset of the tile at column tx and row ty of
	// the region, ok is false if there is no tile data for it.
	resolve func(tx, ty int) (off int, ok bool)
}

type decoder struct {
	buf   *Buffer
	frame *Frame
}

func (d *decoder) mapRegion(y, base int, a Addressing, p Palette) region {
	return region{
		y:       y,
		width:   MapWidth,
		height:  MapWidth,
		palette: p,
		resolve: func(tx, ty int) (int, bool) {
			off, err := d.buf.MapTileOffset(base, tx, ty, a)
			return off, err == nil
		},
	}
}

func (d *decoder) arrayRegion(tilesX, numTiles int, p Palette) region {
	return region{
		width:   tilesX,
		height:  numTiles / tilesX,
		palette: p,
		resolve: func(tx, ty int) (int, bool) {
			off := TileOffset(ty*tilesX + tx)
			return off, off <= Size-TileSize
		},
	}
}

func (d *decoder) regions(o *Options) []region {
	switch o.mode() {
	case ModeTiles:
		return []region{d.arrayRegion(charsetTilesX, NumTiles, o.palette())}
	case ModeGrid:
		return []region{d.arrayRegion(gridTilesX, gridTiles, o.palette())}
	}

	r := []region{d.mapRegion(0, MapBase0, Unsigned, o.palette())}
	if o.signed() {
		r = append(r, d.mapRegion(MapWidth, MapBase1, Signed, o.signedPalette()))
	}
	return r
}

func (d *decoder) drawTile(x, y int, t Tile, p Palette) {
	for row := 0; row < TileHeight; row++ {
		i := (y*TileHeight+row)*d.frame.Width + x*TileWidth
		for col := 0; col < TileWidth; col++ {
			d.frame.Pix[i+col] = p[t[row][col]]
		}
	}
}

func (d *decoder) drawRegion(r region) {
	for ty := 0; ty < r.height; ty++ {
		for tx := 0; tx < r.width; tx++ {
			off, ok := r.resolve(tx, ty)
			if !ok {
				continue
			}
			b, err := d.buf.Tile(off)
			if err != nil {
				continue
			}
			d.drawTile(r.x+tx, r.y+ty, DecodeTile(b), r.palette)
		}
	}
}

func (d *decoder) decode(o *Options) {
	d.frame = NewFrame(o.Size())
	for _, r := range d.regions(o) {
		d.drawRegion(r)
	}
}

// Frame decodes the buffer into a new Frame. A nil o uses the defaults.
func (b *Buffer) Frame(o *Options) *Frame {
	d := decoder{buf: b}
	d.decode(o)
	return d.frame
}

// Decode reads a VRAM dump from r and decodes it.
func Decode(r io.Reader, o *Options) (*Frame, error) {
	b, err := Read(r)
	if err != nil {
		return nil, err
	}
	return b.Frame(o), nil
}

// DecodeConfig returns the colour model and dimensions of the frame Decode
// would return without decoding it. r must still hold a complete dump.
func DecodeConfig(r io.Reader, o *Options) (image.Config, error) {
	if _, err := Read(r); err != nil {
		return image.Config{}, err
	}
	w, h := o.Size()
	return image.Config{
		ColorModel: (&Frame{}).ColorModel(),
		Width:      w,
		Height:     h,
	}, nil
}
