package vram

import (
	"errors"
	"io"
	"os"
)

var (
	// ErrNotEnough is returned when the input is shorter than Size bytes
	ErrNotEnough = errors.New("vram: not enough data")
	// ErrTooMuch is returned when the input is longer than Size bytes
	ErrTooMuch = errors.New("vram: too much data")
	// ErrOutOfRange is returned by Buffer accessors for offsets outside
	// the buffer
	ErrOutOfRange = errors.New("vram: offset out of range")
)

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Buffer is an immutable copy of a VRAM dump. All access is bounds checked.
type Buffer struct {
	b [Size]byte
}

// NewBuffer copies b into a new Buffer. b must be exactly Size bytes.
func NewBuffer(b []byte) (*Buffer, error) {
	switch {
	case len(b) < Size:
		return nil, ErrNotEnough
	case len(b) > Size:
		return nil, ErrTooMuch
	}
	buf := new(Buffer)
	copy(buf.b[:], b)
	return buf, nil
}

// Read reads exactly Size bytes from r into a new Buffer. Trailing data is
// an error.
func Read(r io.Reader) (*Buffer, error) {
	buf := new(Buffer)
	if err := readFull(r, buf.b[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return nil, err
		}
		return nil, ErrNotEnough
	}

	var tmp [1]byte
	switch _, err := io.ReadFull(r, tmp[:]); err {
	case io.EOF:
	case nil:
		return nil, ErrTooMuch
	default:
		return nil, err
	}

	return buf, nil
}

// ReadFile reads the dump stored in the named file.
func ReadFile(name string) (*Buffer, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

// At returns the byte at offset off.
func (b *Buffer) At(off int) (byte, error) {
	if off < 0 || off >= Size {
		return 0, ErrOutOfRange
	}
	return b.b[off], nil
}

// Slice returns n bytes starting at offset off. The result aliases the
// buffer and must not be modified.
func (b *Buffer) Slice(off, n int) ([]byte, error) {
	if off < 0 || n < 0 || off > Size-n {
		return nil, ErrOutOfRange
	}
	return b.b[off : off+n : off+n], nil
}

// Tile returns the TileSize bytes of tile data at offset off.
func (b *Buffer) Tile(off int) ([]byte, error) {
	return b.Slice(off, TileSize)
}

// Bytes returns a copy of the dump.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, Size)
	copy(out, b.b[:])
	return out
}
