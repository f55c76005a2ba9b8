package mandel

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidWindow = errors.New("invalid plane window")

// Window maps a pixel grid onto the complex plane.
type Window struct {
	Width, Height    int     // output resolution in pixels
	CenterX, CenterY float64 // plane point at the image center
	Zoom             float64
	Aspect           float64 // horizontal stretch compensating for non-square output
}

// Reference is the 1920x1080 full-set view.
var Reference = Window{
	Width:   1920,
	Height:  1080,
	CenterX: -0.75,
	CenterY: 0,
	Zoom:    0.8,
	Aspect:  1.5,
}

// Validate reports whether w can be rendered.
func (w Window) Validate() error {
	switch {
	case w.Width <= 0 || w.Height <= 0:
		return fmt.Errorf("%w: resolution %dx%d", ErrInvalidWindow, w.Width, w.Height)
	case !(w.Zoom > 0) || math.IsInf(w.Zoom, 0):
		return fmt.Errorf("%w: zoom %v", ErrInvalidWindow, w.Zoom)
	case !(w.Aspect > 0) || math.IsInf(w.Aspect, 0):
		return fmt.Errorf("%w: aspect %v", ErrInvalidWindow, w.Aspect)
	case !isFinite(w.CenterX) || !isFinite(w.CenterY):
		return fmt.Errorf("%w: center (%v, %v)", ErrInvalidWindow, w.CenterX, w.CenterY)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Region within the Mandelbrot set
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Window centers a width x height view on r, zoomed so the horizontal
// extent equals r's width. The vertical extent follows from the aspect.
func (r Region) Window(width, height int, aspect float64) Window {
	return Window{
		Width:   width,
		Height:  height,
		CenterX: (r.Xmin + r.Xmax) / 2,
		CenterY: (r.Ymin + r.Ymax) / 2,
		Zoom:    2 * aspect / (r.Xmax - r.Xmin),
		Aspect:  aspect,
	}
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

// Regions indexes the landmarks by the names the commands accept.
var Regions = map[string]Region{
	"seahorse":     SeahorseValley,
	"elephant":     ElephantValley,
	"spiral":       SpiralMinibrot,
	"triplespiral": TripleSpiral,
	"dragon":       ValleyOfTheDragon,
	"minispiral":   MinibrotInMiniSpiral,
}
