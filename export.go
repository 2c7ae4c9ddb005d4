package dmgvram

import (
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/gift"
	"github.com/ericpauley/go-quantize/quantize"
)

// Supported export formats
const (
	FormatPNG = "png"
	FormatGIF = "gif"
)

// FormatFromPath returns the export format implied by the extension of
// file.
func FormatFromPath(file string) (string, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(file), ".")); ext {
	case FormatPNG, FormatGIF:
		return ext, nil
	default:
		return "", fmt.Errorf("unsupported image format %q", filepath.Ext(file))
	}
}

func scaleImage(m image.Image, scale int) image.Image {
	if scale <= 1 {
		return m
	}

	b := m.Bounds()
	g := gift.New(gift.Resize(b.Dx()*scale, b.Dy()*scale, gift.NearestNeighborResampling))
	dst := image.NewRGBA(g.Bounds(b))
	g.Draw(dst, m)
	return dst
}

// Encode writes m to w in the given format, enlarged scale times.
func Encode(w io.Writer, m image.Image, format string, scale int) error {
	m = scaleImage(m, scale)

	switch format {
	case FormatPNG:
		return png.Encode(w, m)
	case FormatGIF:
		return gif.Encode(w, m, &gif.Options{
			NumColors: 256,
			Quantizer: &quantize.MedianCutQuantizer{},
		})
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}

// Export decodes file and writes the image to out, the format is taken from
// the extension of out.
func (v *Viewer) Export(file, out string, scale int) error {
	format, err := FormatFromPath(out)
	if err != nil {
		return err
	}

	frame, err := v.Decode(file)
	if err != nil {
		return err
	}

	if err := writeImage(out, frame, format, scale); err != nil {
		return err
	}

	v.logger.Printf("Exported \"%s\" to \"%s\"\n", file, out)

	return nil
}

// writeImage encodes m to the file out. Nothing is left behind on failure.
func writeImage(out string, m image.Image, format string, scale int) error {
	f, err := os.Create(out)
	if err != nil {
		return err
	}

	if err := Encode(f, m, format, scale); err != nil {
		f.Close()
		os.Remove(out)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(out)
		return err
	}

	return nil
}
