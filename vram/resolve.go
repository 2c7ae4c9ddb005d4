package vram

import "fmt"

// Addressing selects how a tile map entry is turned into a tile data offset.
type Addressing int

const (
	// Unsigned addressing indexes tiles 0 to 255 from UnsignedTileBase
	Unsigned Addressing = iota
	// Signed addressing indexes tiles -128 to 127 from SignedTileBase
	Signed
)

func (a Addressing) String() string {
	switch a {
	case Unsigned:
		return "unsigned"
	case Signed:
		return "signed"
	}
	return fmt.Sprintf("Addressing(%d)", int(a))
}

// Offset returns the offset of the tile data selected by map entry id.
func (a Addressing) Offset(id uint8) int {
	if a == Signed {
		return SignedTileBase + int(int8(id))*TileSize
	}
	return UnsignedTileBase + int(id)*TileSize
}

// TileOffset returns the offset of tile id in direct addressing, where the
// tiles are a contiguous array from the start of the buffer.
func TileOffset(id int) int {
	return id * TileSize
}

// MapEntry returns the tile map entry at column x and row y of the map
// starting at base.
func (b *Buffer) MapEntry(base, x, y int) (uint8, error) {
	if x < 0 || x >= MapWidth || y < 0 || y >= MapWidth {
		return 0, ErrOutOfRange
	}
	return b.At(base + y*MapWidth + x)
}

// MapTileOffset resolves the tile map entry at column x and row y of the map
// starting at base to a tile data offset.
func (b *Buffer) MapTileOffset(base, x, y int, a Addressing) (int, error) {
	id, err := b.MapEntry(base, x, y)
	if err != nil {
		return 0, err
	}
	return a.Offset(id), nil
}
