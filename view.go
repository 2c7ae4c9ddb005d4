package dmgvram

import (
	"fmt"

	"github.com/bodgit/dmgvram/display"
	"github.com/bodgit/dmgvram/vram"
)

// Title is the window title.
const Title = "DMG VRAM Viewer"

// View decodes file and presents it on d until the user quits. A reload
// request reads file again; if that fails the previous frame stays up.
func (v *Viewer) View(d display.Display, file string) error {
	return v.view(d, file, func() (*vram.Buffer, error) {
		return v.Load(file)
	})
}

// ViewBuffer presents buf on d until the user quits.
func (v *Viewer) ViewBuffer(d display.Display, name string, buf *vram.Buffer) error {
	return v.view(d, name, func() (*vram.Buffer, error) {
		return buf, nil
	})
}

func (v *Viewer) view(d display.Display, name string, load func() (*vram.Buffer, error)) error {
	buf, err := load()
	if err != nil {
		return err
	}

	f := buf.Frame(v.opts)

	s, err := d.CreateSurface(f.Width, f.Height)
	if err != nil {
		return err
	}

	if err := d.Upload(s, f.Bytes()); err != nil {
		return err
	}

	if t, ok := d.(display.Titler); ok {
		t.SetTitle(fmt.Sprintf("%s - %s [%s]", Title, name, v.opts))
	}

	r, _ := d.(display.Reloader)

	return display.Run(d, s, func() error {
		if r == nil || !r.PollReload() {
			return nil
		}

		buf, err := load()
		if err != nil {
			v.logger.Printf("Reload of \"%s\" failed: %v\n", name, err)
			return nil
		}
		v.logger.Printf("Reloaded \"%s\"\n", name)

		return d.Upload(s, buf.Frame(v.opts).Bytes())
	})
}
