// mandel renders the Mandelbrot set on a fixed number of workers and writes
// the result to an image file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	mandel "github.com/marben/tiled_mandel"
	"github.com/marben/tiled_mandel/dispatch"
	"github.com/marben/tiled_mandel/palette"
	"github.com/marben/tiled_mandel/render"
	"github.com/marben/tiled_mandel/sink"
)

const (
	exitFailure   = 1
	exitSinkError = 2
)

type config struct {
	window  mandel.Window
	workers int
	output  string
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Printf("config: %v", err)
		os.Exit(exitFailure)
	}

	if err := run(cfg); err != nil {
		log.Printf("run: %+v", err)
		var se *sink.Error
		if errors.As(err, &se) {
			os.Exit(exitSinkError)
		}
		os.Exit(exitFailure)
	}
}

func parseFlags(args []string) (config, error) {
	fs := flag.NewFlagSet("mandel", flag.ContinueOnError)

	w := mandel.Reference
	fs.IntVar(&w.Width, "width", w.Width, "output width in pixels")
	fs.IntVar(&w.Height, "height", w.Height, "output height in pixels")
	fs.Float64Var(&w.CenterX, "cx", w.CenterX, "real part of the window center")
	fs.Float64Var(&w.CenterY, "cy", w.CenterY, "imaginary part of the window center")
	fs.Float64Var(&w.Zoom, "zoom", w.Zoom, "zoom factor")
	fs.Float64Var(&w.Aspect, "aspect", w.Aspect, "horizontal stretch factor")
	region := fs.String("region", "", fmt.Sprintf("named landmark overriding center and zoom, one of %v", regionNames()))
	workers := fs.Int("workers", 2, fmt.Sprintf("number of workers, one of %v", dispatch.SupportedWorkers))
	output := fs.String("o", "output.ppm", "output file (.ppm, .png, optionally followed by .zst)")

	if err := fs.Parse(args); err != nil {
		return config{}, err
	}

	if *region != "" {
		r, ok := mandel.Regions[*region]
		if !ok {
			return config{}, fmt.Errorf("unknown region %q, want one of %v", *region, regionNames())
		}
		w = r.Window(w.Width, w.Height, w.Aspect)
	}

	if err := w.Validate(); err != nil {
		return config{}, err
	}
	if _, _, err := dispatch.Shape(*workers); err != nil {
		return config{}, err
	}
	if _, err := sink.ForPath(*output); err != nil {
		return config{}, err
	}

	return config{window: w, workers: *workers, output: *output}, nil
}

func regionNames() []string {
	names := make([]string, 0, len(mandel.Regions))
	for name := range mandel.Regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func run(cfg config) error {
	w := cfg.window
	log.Printf("rendering %dx%d at (%v, %v) zoom %v on %d workers", w.Width, w.Height, w.CenterX, w.CenterY, w.Zoom, cfg.workers)

	start := time.Now()
	buf, err := dispatch.Render(w, cfg.workers, render.RendererImpl{Table: palette.Reference})
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	log.Printf("render took %s", time.Since(start))

	if err := sink.WriteFile(cfg.output, buf); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	log.Printf("image saved to %q", cfg.output)
	return nil
}
