package vram

import (
	"encoding/binary"
	"image"
	"image/color"
)

// Frame is a decoded VRAM view. Pix holds one packed colour per pixel, see
// Palette for the packing. Frame implements image.Image.
type Frame struct {
	Width, Height int
	Pix           []uint32
}

// NewFrame returns a width by height frame filled with the Sentinel colour.
func NewFrame(width, height int) *Frame {
	f := &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]uint32, width*height),
	}
	for i := range f.Pix {
		f.Pix[i] = Sentinel
	}
	return f
}

// ColorModel implements image.Image.
func (f *Frame) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (f *Frame) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// At implements image.Image.
func (f *Frame) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(f.Bounds())) {
		return color.RGBA{}
	}
	return unpack(f.Pix[y*f.Width+x])
}

// Set stores c at x, y. It is here so a Frame can be a draw.Image.
func (f *Frame) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(f.Bounds())) {
		return
	}
	f.Pix[y*f.Width+x] = pack(color.RGBAModel.Convert(c).(color.RGBA))
}

// Bytes returns the frame as R, G, B, A bytes, four per pixel, suitable for
// uploading to a texture.
func (f *Frame) Bytes() []byte {
	b := make([]byte, len(f.Pix)<<2)
	for i, c := range f.Pix {
		binary.LittleEndian.PutUint32(b[i<<2:], c)
	}
	return b
}

// RGBA returns a copy of the frame as an *image.RGBA.
func (f *Frame) RGBA() *image.RGBA {
	return &image.RGBA{
		Pix:    f.Bytes(),
		Stride: f.Width << 2,
		Rect:   f.Bounds(),
	}
}
