package dmgvram

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/dmgvram/vram"
)

// DefaultWorkers is the number of concurrent exports used by Batch when
// none is given.
const DefaultWorkers = 10

var errWalkCancelled = errors.New("walk cancelled")

func (v *Viewer) findDumps(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			if strings.ToLower(filepath.Ext(file)) != ".bin" {
				return nil
			}

			if info.Size() != vram.Size {
				v.logger.Printf("Skipping \"%s\", %d bytes is not a VRAM dump\n", file, info.Size())
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errWalkCancelled
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (v *Viewer) exportWorker(ctx context.Context, in <-chan string, format string, scale int) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			select {
			case <-ctx.Done():
				return
			default:
			}

			out := strings.TrimSuffix(file, filepath.Ext(file)) + "." + format
			if err := v.Export(file, out, scale); err != nil {
				errc <- fmt.Errorf("%s: %w", file, err)
				return
			}
		}
	}()
	return errc, nil
}

// waitForPipeline collects errors from every stage until all of them have
// finished. The first error cancels the pipeline and is returned; later ones
// are drained and dropped so no stage is left blocked.
func waitForPipeline(cancel context.CancelFunc, errs ...<-chan error) error {
	var first error
	for err := range mergeErrors(errs...) {
		if err != nil && first == nil {
			first = err
			cancel()
		}
	}
	return first
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			defer wg.Done()
			for err := range c {
				out <- err
			}
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Batch exports every VRAM dump with a .bin extension found under path to
// an image next to it, using the given format and scale.
func (v *Viewer) Batch(path, format string, scale, workers int) error {
	switch format {
	case FormatPNG, FormatGIF:
	default:
		return errors.New("unsupported image format " + format)
	}

	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	if workers < 1 {
		workers = DefaultWorkers
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := v.findDumps(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < workers; i++ {
		errc, err := v.exportWorker(ctx, files, format, scale)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(cancelFunc, errcList...)
}
