/*
Package screen implements display.Display with an Ebitengine window.

Q or Escape quits, R asks for the dump to be reloaded and Tab toggles a
status line drawn over the frame.
*/
package screen

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/bodgit/dmgvram/display"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

const tps = 60

var errNotDrawing = errors.New("present called outside of Draw")

// Window is an Ebitengine window. It must be driven with display.Run, which
// hands the event loop over to Ebitengine.
type Window struct {
	title    string
	scale    int
	surfaces map[int]*ebiten.Image
	next     int

	// Set for the duration of Loop
	surface display.Surface
	step    func() error
	screen  *ebiten.Image
	width   int
	height  int
	err     error

	overlay bool
}

// New returns a Window with the given title. Surfaces are shown at scale
// times their size.
func New(title string, scale int) *Window {
	if scale < 1 {
		scale = 1
	}
	return &Window{
		title:    title,
		scale:    scale,
		surfaces: make(map[int]*ebiten.Image),
	}
}

// SetTitle implements display.Titler. The title is also the status line.
func (w *Window) SetTitle(title string) {
	w.title = title
	ebiten.SetWindowTitle(title)
}

// CreateSurface implements display.Display. The window is sized to fit the
// first surface.
func (w *Window) CreateSurface(width, height int) (display.Surface, error) {
	if width <= 0 || height <= 0 {
		return display.Surface{}, &display.Error{Op: "create surface", Err: fmt.Errorf("invalid size %dx%d", width, height)}
	}

	s := display.Surface{ID: w.next, Width: width, Height: height}
	w.next++
	w.surfaces[s.ID] = ebiten.NewImage(width, height)

	if len(w.surfaces) == 1 {
		ebiten.SetWindowSize(width*w.scale, height*w.scale)
	}

	return s, nil
}

// Upload implements display.Display.
func (w *Window) Upload(s display.Surface, pix []byte) error {
	img, ok := w.surfaces[s.ID]
	if !ok {
		return display.ErrNoSurface
	}
	if len(pix) != s.Width*s.Height*4 {
		return fmt.Errorf("screen: got %d bytes for a %dx%d surface", len(pix), s.Width, s.Height)
	}
	img.WritePixels(pix)
	return nil
}

// Present implements display.Display. It only works from within the loop
// run by Loop.
func (w *Window) Present(s display.Surface) error {
	img, ok := w.surfaces[s.ID]
	if !ok {
		return display.ErrNoSurface
	}
	if w.screen == nil {
		return errNotDrawing
	}

	w.screen.Fill(color.Black)

	// Largest whole scale that fits, centred
	scale := min(w.width/s.Width, w.height/s.Height)
	if scale < 1 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.GeoM.Translate(float64(w.width-s.Width*scale)/2, float64(w.height-s.Height*scale)/2)
	op.Filter = ebiten.FilterNearest
	w.screen.DrawImage(img, op)

	if w.overlay {
		text.Draw(w.screen, w.title, basicfont.Face7x13, 4, 13, color.White)
	}

	return nil
}

// PollQuit implements display.Display.
func (w *Window) PollQuit() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

// PollReload implements display.Reloader.
func (w *Window) PollReload() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR)
}

// Loop implements display.Looper. It returns nil when the window is closed
// or the user quits.
func (w *Window) Loop(s display.Surface, step func() error) error {
	if _, ok := w.surfaces[s.ID]; !ok {
		return display.ErrNoSurface
	}
	w.surface, w.step = s, step

	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(tps)

	if err := ebiten.RunGame(w); err != nil {
		if errors.Is(err, w.err) {
			return err
		}
		return &display.Error{Op: "run", Err: err}
	}
	return nil
}

// Update implements ebiten.Game.
func (w *Window) Update() error {
	if w.err != nil {
		return w.err
	}
	if w.PollQuit() {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		w.overlay = !w.overlay
	}
	if w.step != nil {
		if err := w.step(); err != nil {
			w.err = err
			return err
		}
	}
	return nil
}

// Draw implements ebiten.Game.
func (w *Window) Draw(screen *ebiten.Image) {
	w.screen = screen
	defer func() { w.screen = nil }()

	if err := w.Present(w.surface); err != nil && w.err == nil {
		w.err = err
	}
}

// Layout implements ebiten.Game.
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	w.width, w.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// Close implements display.Display.
func (w *Window) Close() error {
	for id, img := range w.surfaces {
		img.Deallocate()
		delete(w.surfaces, id)
	}
	return nil
}
