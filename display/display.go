/*
Package display defines the interface used to present a decoded frame and the
loop that keeps presenting it until the user quits.
*/
package display

import (
	"errors"
	"fmt"
	"time"
)

// FrameInterval is the delay between two presents, about 60 Hz.
const FrameInterval = 16 * time.Millisecond

// ErrNoSurface is returned when a Surface was not created by the Display it
// is passed to.
var ErrNoSurface = errors.New("display: unknown surface")

// Error wraps a failure reported by the platform layer.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("display: %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Surface is a handle to a texture owned by a Display.
type Surface struct {
	ID            int
	Width, Height int
}

// Display is implemented by each presentation backend.
type Display interface {
	// CreateSurface allocates a width by height RGBA texture
	CreateSurface(width, height int) (Surface, error)
	// Upload replaces the contents of the surface with pix, four bytes
	// per pixel in R, G, B, A order
	Upload(s Surface, pix []byte) error
	// Present shows the surface
	Present(s Surface) error
	// PollQuit reports whether the user asked to quit
	PollQuit() bool
	Close() error
}

// Looper is implemented by a Display that must own the event loop itself.
// It calls step and Present once per iteration until PollQuit is true.
type Looper interface {
	Loop(s Surface, step func() error) error
}

// Reloader is implemented by a Display that can ask for the frame to be
// decoded again.
type Reloader interface {
	PollReload() bool
}

// Titler is implemented by a Display with a title bar.
type Titler interface {
	SetTitle(title string)
}

// Run presents s on d until the user quits. step, if not nil, is called
// before each present; an error from it stops the loop.
func Run(d Display, s Surface, step func() error) error {
	if l, ok := d.(Looper); ok {
		return l.Loop(s, step)
	}

	t := time.NewTicker(FrameInterval)
	defer t.Stop()

	for !d.PollQuit() {
		if step != nil {
			if err := step(); err != nil {
				return err
			}
		}
		if err := d.Present(s); err != nil {
			return err
		}
		<-t.C
	}

	return nil
}

func checkSize(s Surface, pix []byte) error {
	if len(pix) != s.Width*s.Height*4 {
		return fmt.Errorf("display: got %d bytes for a %dx%d surface", len(pix), s.Width, s.Height)
	}
	return nil
}
