/*
Package vram implements a decoder for Game Boy (DMG) video memory dumps.

A dump is exactly 8192 bytes. The first 6144 bytes hold 384 tiles of 16 bytes
each; every tile is 8 by 8 pixels stored as eight rows of two bytes, the low
bitplane followed by the high bitplane, with the most significant bit being
the leftmost pixel. The remaining 2048 bytes hold two 32 by 32 tile maps at
0x1800 and 0x1C00, one byte per entry.

A map entry selects tile data in one of two ways. Unsigned addressing treats
the entry as an index from 0x0000, signed addressing treats it as a signed
8-bit index from 0x1000, so 0x80 selects 0x0800 and 0x7f selects 0x17f0.

Decoding produces a Frame of packed 32-bit colours. Any pixel not covered by
a tile keeps the Sentinel colour.
*/
package vram

const (
	// Size is the exact length of a VRAM dump in bytes
	Size = 0x2000

	// TileSize is the number of bytes used by a single tile
	TileSize   = 16
	TileWidth  = 8
	TileHeight = TileWidth

	// NumTiles is the number of tiles in the character set
	NumTiles = 384

	// MapBase0 and MapBase1 are the offsets of the two tile maps
	MapBase0 = 0x1800
	MapBase1 = 0x1C00
	MapWidth = 32
	MapSize  = MapWidth * MapWidth

	// UnsignedTileBase and SignedTileBase are the origins used by the two
	// tile addressing methods
	UnsignedTileBase = 0x0000
	SignedTileBase   = 0x1000
)

const (
	charsetTilesX = 16
	charsetTilesY = NumTiles / charsetTilesX
	gridTiles     = MapSize
	gridTilesX    = MapWidth
)
