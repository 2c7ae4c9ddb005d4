package vram

// Tile is a decoded tile, one 2-bit colour index per pixel indexed by row
// then column.
type Tile [TileHeight][TileWidth]uint8

// Pixel returns the colour index of column col (0 is leftmost) for a tile
// row made of the lo and hi bitplane bytes.
func Pixel(lo, hi byte, col int) uint8 {
	bit := uint(7 - col)
	return (hi>>bit&1)<<1 | lo>>bit&1
}

// DecodeTile decodes TileSize bytes of tile data.
func DecodeTile(b []byte) Tile {
	var t Tile
	_ = b[TileSize-1]
	for y := 0; y < TileHeight; y++ {
		lo, hi := b[y<<1], b[y<<1+1]
		for x := 0; x < TileWidth; x++ {
			t[y][x] = Pixel(lo, hi, x)
		}
	}
	return t
}
