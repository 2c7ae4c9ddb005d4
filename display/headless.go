package display

import (
	"errors"
	"sync"
)

// Headless is a Display without a window. It quits after a fixed number of
// presents and keeps the last uploaded pixels for inspection.
type Headless struct {
	mu       sync.Mutex
	frames   int
	surfaces map[int][]byte
	sizes    map[int]Surface
	next     int
	uploads  int
	presents int
	reloads  int
	closed   bool
}

// NewHeadless returns a Headless display that quits after frames presents.
func NewHeadless(frames int) *Headless {
	return &Headless{
		frames:   frames,
		surfaces: make(map[int][]byte),
		sizes:    make(map[int]Surface),
	}
}

// CreateSurface implements Display.
func (h *Headless) CreateSurface(width, height int) (Surface, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return Surface{}, &Error{Op: "create surface", Err: errors.New("display closed")}
	}
	if width <= 0 || height <= 0 {
		return Surface{}, &Error{Op: "create surface", Err: errors.New("invalid size")}
	}

	s := Surface{ID: h.next, Width: width, Height: height}
	h.next++
	h.sizes[s.ID] = s
	h.surfaces[s.ID] = make([]byte, width*height*4)
	return s, nil
}

// Upload implements Display.
func (h *Headless) Upload(s Surface, pix []byte) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, ok := h.surfaces[s.ID]
	if !ok {
		return ErrNoSurface
	}
	if err := checkSize(h.sizes[s.ID], pix); err != nil {
		return err
	}
	copy(b, pix)
	h.uploads++
	return nil
}

// Present implements Display.
func (h *Headless) Present(s Surface) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.surfaces[s.ID]; !ok {
		return ErrNoSurface
	}
	h.presents++
	return nil
}

// PollQuit implements Display.
func (h *Headless) PollQuit() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.closed || h.presents >= h.frames
}

// RequestReload makes the next n calls to PollReload report true.
func (h *Headless) RequestReload(n int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.reloads += n
}

// PollReload implements Reloader.
func (h *Headless) PollReload() bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.reloads == 0 {
		return false
	}
	h.reloads--
	return true
}

// Pixels returns a copy of the last pixels uploaded to s.
func (h *Headless) Pixels(s Surface) []byte {
	h.mu.Lock()
	defer h.mu.Unlock()

	b, ok := h.surfaces[s.ID]
	if !ok {
		return nil
	}
	return append([]byte(nil), b...)
}

// Stats returns the number of uploads and presents so far.
func (h *Headless) Stats() (uploads, presents int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.uploads, h.presents
}

// Close implements Display.
func (h *Headless) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	h.surfaces = make(map[int][]byte)
	return nil
}
