package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/dmgvram"
	"github.com/bodgit/dmgvram/display"
	"github.com/bodgit/dmgvram/screen"
	"github.com/bodgit/dmgvram/vram"
	"github.com/urfave/cli/v2"
)

const (
	defaultDB = "dmgvram.db"
	usage     = "Usage: dmgvram [path-to-vram.bin]"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func options(c *cli.Context) (*vram.Options, error) {
	mode, err := vram.ParseMode(c.String("mode"))
	if err != nil {
		return nil, err
	}

	palette, err := vram.ParsePalette(c.String("palette"))
	if err != nil {
		return nil, err
	}

	signedPalette, err := vram.ParsePalette(c.String("signed-palette"))
	if err != nil {
		return nil, err
	}

	return &vram.Options{
		Mode:          mode,
		Signed:        c.Bool("signed"),
		Palette:       &palette,
		SignedPalette: &signedPalette,
	}, nil
}

func newViewer(c *cli.Context) (*dmgvram.Viewer, error) {
	opts, err := options(c)
	if err != nil {
		return nil, err
	}
	return dmgvram.New(opts, newLogger(c)), nil
}

func newDisplay(c *cli.Context) display.Display {
	if c.Bool("headless") {
		return display.NewHeadless(c.Int("frames"))
	}
	return screen.New(dmgvram.Title, c.Int("scale"))
}

func view(c *cli.Context) error {
	if c.NArg() < 1 {
		fmt.Fprintln(c.App.ErrWriter, usage)
		return cli.NewExitError("", 1)
	}

	v, err := newViewer(c)
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	d := newDisplay(c)
	defer d.Close()

	if err := v.View(d, c.Args().First()); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func newApp(cwd string) *cli.App {
	app := cli.NewApp()

	app.Name = "dmgvram"
	app.Usage = "Game Boy VRAM dump viewer"
	app.Version = "1.0.0"
	app.ArgsUsage = "FILE"
	app.ErrWriter = os.Stderr

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "mode",
			EnvVars: []string{"DMGVRAM_MODE"},
			Value:   vram.ModeMap.String(),
			Usage:   "layout, one of map, tiles or grid",
		},
		&cli.BoolFlag{
			Name:  "signed",
			Usage: "also draw the tile map at 0x1C00 with signed tile indices",
		},
		&cli.StringFlag{
			Name:  "palette",
			Value: "rgba",
			Usage: "palette, rgba or grayscale",
		},
		&cli.StringFlag{
			Name:  "signed-palette",
			Value: "grayscale",
			Usage: "palette for the signed tile map, rgba or grayscale",
		},
		&cli.IntFlag{
			Name:  "scale",
			Value: 2,
			Usage: "window scale",
		},
		&cli.BoolFlag{
			Name:  "headless",
			Usage: "decode and present without opening a window",
		},
		&cli.IntFlag{
			Name:  "frames",
			Value: 60,
			Usage: "number of frames to present with --headless",
		},
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"DMGVRAM_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to catalogue database",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = view

	app.Commands = []*cli.Command{
		{
			Name:      "export",
			Usage:     "Write a dump as a PNG or GIF image",
			ArgsUsage: "FILE OUTPUT",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "scale",
					Value: 1,
					Usage: "image scale",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				v, err := newViewer(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := v.Export(c.Args().Get(0), c.Args().Get(1), c.Int("scale")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "batch",
			Usage:     "Export every dump found in a directory",
			ArgsUsage: "DIRECTORY",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "format",
					Value: dmgvram.FormatPNG,
					Usage: "image format, png or gif",
				},
				&cli.IntFlag{
					Name:  "scale",
					Value: 1,
					Usage: "image scale",
				},
				&cli.IntFlag{
					Name:  "workers",
					Value: dmgvram.DefaultWorkers,
					Usage: "number of concurrent exports",
				},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				v, err := newViewer(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				if err := v.Batch(c.Args().First(), strings.ToLower(c.String("format")), c.Int("scale"), c.Int("workers")); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "record",
			Usage:     "Add a dump to the catalogue",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				v, err := newViewer(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				buf, err := v.Load(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				db, err := dmgvram.NewCatalogue(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				sha, err := db.Record(c.Args().First(), buf, v.Options())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				fmt.Fprintln(c.App.Writer, sha)

				return nil
			},
		},
		{
			Name:  "list",
			Usage: "List the catalogue",
			Action: func(c *cli.Context) error {
				db, err := dmgvram.NewCatalogue(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				entries, err := db.Entries()
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				for _, e := range entries {
					fmt.Fprintf(c.App.Writer, "%s %s %d\n", e.SHA1, e.CRC, e.Size)
					for _, p := range e.Paths {
						fmt.Fprintf(c.App.Writer, "\tpath: %s\n", p)
					}
					for _, s := range e.Snapshots {
						fmt.Fprintf(c.App.Writer, "\tsnapshot: %s\n", s)
					}
				}

				return nil
			},
		},
		{
			Name:      "show",
			Usage:     "View a catalogued dump",
			ArgsUsage: "SHA1",
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				v, err := newViewer(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				db, err := dmgvram.NewCatalogue(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				buf, sha, err := db.Find(c.Args().First())
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				d := newDisplay(c)
				defer d.Close()

				if err := v.ViewBuffer(d, sha, buf); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
		{
			Name:      "snapshot",
			Usage:     "Write the catalogued snapshot of a dump for the current options",
			ArgsUsage: "SHA1 OUTPUT",
			Action: func(c *cli.Context) error {
				if c.NArg() < 2 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				opts, err := options(c)
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				db, err := dmgvram.NewCatalogue(c.String("db"))
				if err != nil {
					return cli.NewExitError(err, 1)
				}
				defer db.Close()

				_, sha, err := db.Find(c.Args().Get(0))
				if err != nil {
					return cli.NewExitError(err, 1)
				}

				b, err := db.Snapshot(sha, opts.String())
				if err != nil {
					if errors.Is(err, dmgvram.ErrNotFound) {
						err = fmt.Errorf("no %s snapshot of %s", opts, sha)
					}
					return cli.NewExitError(err, 1)
				}

				if err := os.WriteFile(c.Args().Get(1), b, 0o644); err != nil {
					return cli.NewExitError(err, 1)
				}

				return nil
			},
		},
	}

	return app
}

func main() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	if err := newApp(cwd).Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
