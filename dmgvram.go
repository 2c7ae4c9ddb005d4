/*
Package dmgvram is a library for inspecting Game Boy video memory dumps. It
loads and decodes dumps with package vram, shows them through a
display.Display, exports them as images and keeps a catalogue of dumps in a
SQLite database.
*/
package dmgvram

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/bodgit/dmgvram/vram"
)

// Viewer loads, decodes and presents dumps using a fixed set of options.
type Viewer struct {
	opts   *vram.Options
	logger *log.Logger
}

// New returns a Viewer decoding with opts. A nil opts uses the defaults.
func New(opts *vram.Options, logger *log.Logger) *Viewer {
	if opts == nil {
		opts = &vram.Options{}
	}
	return &Viewer{
		opts:   opts,
		logger: logger,
	}
}

// Options returns the decoding options in use.
func (v *Viewer) Options() *vram.Options {
	return v.opts
}

// Load reads the dump in file.
func (v *Viewer) Load(file string) (*vram.Buffer, error) {
	buf, err := vram.ReadFile(file)
	switch {
	case err == nil:
		v.logger.Printf("Loaded \"%s\"\n", file)
		return buf, nil
	case errors.Is(err, os.ErrNotExist):
		return nil, fmt.Errorf("file not found: %q: %w", file, err)
	case errors.Is(err, vram.ErrNotEnough), errors.Is(err, vram.ErrTooMuch):
		return nil, fmt.Errorf("failed to read %#x bytes from %q: %w", vram.Size, file, err)
	default:
		return nil, err
	}
}

// Decode loads the dump in file and decodes it.
func (v *Viewer) Decode(file string) (*vram.Frame, error) {
	buf, err := v.Load(file)
	if err != nil {
		return nil, err
	}
	return buf.Frame(v.opts), nil
}
