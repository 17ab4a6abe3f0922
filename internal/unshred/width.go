package unshred

import (
	"errors"
	"fmt"

	"github.com/anthonynsimon/bild/parallel"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultStripWidth is used when no strip boundary can be detected.
const DefaultStripWidth = 32

// DetectOptions controls the threshold relaxation in DetectWidth.
type DetectOptions struct {
	// RelaxStart is the first threshold tried, as a fraction of the strongest
	// boundary. Values near 1 accept only the sharpest cuts.
	RelaxStart float64

	// RelaxStep is subtracted from the threshold after each failed pass.
	RelaxStep float64

	// RelaxFloor is the lowest threshold tried. The search stops below it.
	RelaxFloor float64

	// DefaultWidth is returned when the search is exhausted.
	DefaultWidth int

	// Parallel spreads the column scan across GOMAXPROCS goroutines.
	Parallel bool
}

// DefaultDetectOptions returns the standard relaxation schedule:
// 0.95 down to 0.05 in steps of 0.05, falling back to 32 pixels.
func DefaultDetectOptions() DetectOptions {
	return DetectOptions{
		RelaxStart:   0.95,
		RelaxStep:    0.05,
		RelaxFloor:   0.05,
		DefaultWidth: DefaultStripWidth,
		Parallel:     true,
	}
}

// Validate reports whether the relaxation schedule terminates.
func (o DetectOptions) Validate() error {
	if o.RelaxStep <= 0 {
		return fmt.Errorf("relaxation step must be positive, got %g", o.RelaxStep)
	}
	if o.RelaxFloor <= 0 || o.RelaxFloor > o.RelaxStart {
		return fmt.Errorf("relaxation floor must be in (0, %g], got %g", o.RelaxStart, o.RelaxFloor)
	}
	if o.RelaxStart > 1 {
		return fmt.Errorf("relaxation start must be at most 1, got %g", o.RelaxStart)
	}
	if o.DefaultWidth <= 0 {
		return fmt.Errorf("default strip width must be positive, got %d", o.DefaultWidth)
	}
	return nil
}

// BoundaryDistances returns, for every x in [0, width-2], the average UV
// distance between column x and column x+1 over the full image height.
func BoundaryDistances(r *Raster, par bool) []float64 {
	if r.Width() < 2 {
		return nil
	}

	d := make([]float64, r.Width()-1)
	scan := func(start, end int) {
		for x := start; x < end; x++ {
			left := NewEdgeProfile(r.Column(x))
			right := NewEdgeProfile(r.Column(x + 1))
			d[x] = left.AverageDistance(right)
		}
	}
	if par {
		parallel.Line(len(d), scan)
	} else {
		scan(0, len(d))
	}
	return d
}

// Detection describes how a strip width was chosen.
type Detection struct {
	// Width is the chosen strip width.
	Width int `json:"width"`

	// Fallback is true when Width is the default because no boundary qualified.
	Fallback bool `json:"fallback"`

	// Boundary is the winning boundary index k (Width == k+1), or -1 on fallback.
	Boundary int `json:"boundary"`

	// Threshold is the relaxation threshold at which Boundary qualified.
	Threshold float64 `json:"threshold"`

	// Min, Max and Mean summarise the boundary distances.
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
	Mean float64 `json:"mean"`

	// Reason says why no boundary qualified. Set only on fallback.
	Reason string `json:"reason,omitempty"`
}

// DetectWidth picks the strip width to cut r with. It runs Detect and
// accepts the fallback width when it divides the image width; the returned
// Detection then has Fallback and Reason set and the error is nil.
//
// Otherwise the error wraps ErrWidthDetectionFailed, or describes invalid
// options.
func DetectWidth(r *Raster, opts DetectOptions) (*Detection, error) {
	det, err := Detect(r, opts)
	switch {
	case err == nil:
		return det, nil
	case !errors.Is(err, ErrWidthDetectionFailed):
		return nil, fmt.Errorf("invalid detection options: %w", err)
	case r.Width()%det.Width != 0:
		return nil, fmt.Errorf("%w (default width %d does not divide %d)", err, det.Width, r.Width())
	}
	det.Reason = err.Error()
	return det, nil
}

// Detect infers the strip width of a shredded image.
//
// Every boundary between adjacent columns gets a score: the average UV
// distance across it. Boundary k (between columns k and k+1) is a plausible
// cut when its score is above the mean and its ratio to the minimum is close
// to the overall max/min ratio. Since
//
//	(d[k]/min) / (max/min) == d[k]/max
//
// the comparison is done on d[k]/max, which stays defined when min is zero.
//
// Starting at opts.RelaxStart, the threshold is lowered by opts.RelaxStep
// until a plausible boundary k is found with width % (k+1) == 0, scanning k
// in ascending order. If none is found by opts.RelaxFloor, the returned
// Detection carries opts.DefaultWidth with Fallback set, and the error wraps
// ErrWidthDetectionFailed.
func Detect(r *Raster, opts DetectOptions) (*Detection, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	fallback := &Detection{Width: opts.DefaultWidth, Fallback: true, Boundary: -1}

	d := BoundaryDistances(r, opts.Parallel)
	if len(d) == 0 {
		return fallback, fmt.Errorf("%w: image is %d pixel(s) wide", ErrWidthDetectionFailed, r.Width())
	}

	fallback.Min = floats.Min(d)
	fallback.Max = floats.Max(d)
	fallback.Mean = stat.Mean(d, nil)
	if fallback.Max == 0 {
		return fallback, fmt.Errorf("%w: no color change between any columns", ErrWidthDetectionFailed)
	}

	// Integer pass counter keeps the schedule free of float accumulation.
	for pass := 0; ; pass++ {
		threshold := opts.RelaxStart - float64(pass)*opts.RelaxStep
		if threshold < opts.RelaxFloor-1e-9 {
			break
		}
		for k, dist := range d {
			if dist <= fallback.Mean || dist/fallback.Max <= threshold {
				continue
			}
			if r.Width()%(k+1) == 0 {
				return &Detection{
					Width:     k + 1,
					Boundary:  k,
					Threshold: threshold,
					Min:       fallback.Min,
					Max:       fallback.Max,
					Mean:      fallback.Mean,
				}, nil
			}
		}
	}

	return fallback, fmt.Errorf("%w: no boundary divides width %d", ErrWidthDetectionFailed, r.Width())
}
