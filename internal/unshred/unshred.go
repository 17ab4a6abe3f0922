package unshred

import (
	"fmt"
	"image"
)

// Options configures Reconstruct.
type Options struct {
	// StripWidth is the known strip width in pixels. Zero means detect it.
	StripWidth int

	// Detect controls width detection when StripWidth is zero. The zero
	// value means DefaultDetectOptions.
	Detect DetectOptions

	// Parallel spreads candidate scoring in the sequencer across goroutines.
	Parallel bool
}

// DefaultOptions returns options that detect the strip width and score in
// parallel.
func DefaultOptions() Options {
	return Options{
		Detect:   DefaultDetectOptions(),
		Parallel: true,
	}
}

// StripInfo summarises one strip of the shredded input.
type StripInfo struct {
	Index     int    `json:"index"`
	X         int    `json:"x"`
	LeftMean  string `json:"left_mean"`
	RightMean string `json:"right_mean"`
}

// Result is the outcome of a successful reconstruction.
type Result struct {
	// Image is the reconstructed raster.
	Image image.Image `json:"-"`

	// StripWidth is the width used to cut the input.
	StripWidth int `json:"strip_width"`

	// Detected is true when StripWidth was inferred rather than supplied.
	Detected bool `json:"detected"`

	// Fallback is true when detection found no boundary and the default
	// width was used instead. Callers should surface this.
	Fallback bool `json:"fallback"`

	// Detection holds the detector's statistics when Detected is true.
	Detection *Detection `json:"detection,omitempty"`

	// Order lists input strip indices from left to right.
	Order []int `json:"order"`

	// Seams holds the edge distance between each pair of neighbouring strips
	// in Order; len(Seams) == len(Order)-1.
	Seams []float64 `json:"seams"`

	// Strips describes the input strips, indexed like the input.
	Strips []StripInfo `json:"strips"`
}

// Reconstruct restores the strip order of a shredded image.
//
// The returned error wraps ErrInvalidDimensions, ErrInvalidStripWidth,
// ErrIndivisibleWidth or ErrWidthDetectionFailed. No partial image is
// returned on error.
func Reconstruct(img image.Image, opts Options) (*Result, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, b.Dx(), b.Dy())
	}
	if opts.StripWidth < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidStripWidth, opts.StripWidth)
	}

	if opts.Detect == (DetectOptions{}) {
		opts.Detect = DefaultDetectOptions()
	}

	raster := NewRaster(img)
	res := &Result{StripWidth: opts.StripWidth}

	if res.StripWidth == 0 {
		det, err := DetectWidth(raster, opts.Detect)
		if err != nil {
			return nil, fmt.Errorf("failed to detect strip width: %w", err)
		}
		res.StripWidth = det.Width
		res.Detected = true
		res.Fallback = det.Fallback
		res.Detection = det
	} else if raster.Width()%res.StripWidth != 0 {
		return nil, fmt.Errorf("%w: strip width %d, image width %d", ErrIndivisibleWidth, res.StripWidth, raster.Width())
	}

	strips := ExtractStrips(raster, res.StripWidth)
	res.Order = Sequence(strips, opts.Parallel)
	res.Seams = seams(strips, res.Order)
	res.Strips = stripInfos(strips)

	res.Image = Composite(img, strips, res.Order)
	return res, nil
}

func seams(strips []Strip, order []int) []float64 {
	if len(order) < 2 {
		return []float64{}
	}
	out := make([]float64, len(order)-1)
	for i := 1; i < len(order); i++ {
		out[i-1] = strips[order[i-1]].Right.AverageDistance(strips[order[i]].Left)
	}
	return out
}

func stripInfos(strips []Strip) []StripInfo {
	out := make([]StripInfo, len(strips))
	for i, s := range strips {
		out[i] = StripInfo{
			Index:     s.Index,
			X:         s.Bounds.Min.X,
			LeftMean:  s.Left.MeanColor().Hex(),
			RightMean: s.Right.MeanColor().Hex(),
		}
	}
	return out
}
