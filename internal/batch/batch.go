// Package batch runs shred/unshred round trips over a folder of images and
// reports which ones came back pixel-identical.
package batch

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ironsheep/image-unshred/internal/imaging"
	"github.com/ironsheep/image-unshred/internal/shred"
	"github.com/ironsheep/image-unshred/internal/unshred"
)

// File name tags for intermediate output.
const (
	TagShredded      = "shredded"
	TagReconstructed = "reconstructed"
)

// Outcome classifies one round trip.
type Outcome string

const (
	// OutcomePassed means the reconstruction is pixel-identical.
	OutcomePassed Outcome = "passed"
	// OutcomeMirrored means the strips came back in exactly reversed order.
	OutcomeMirrored Outcome = "mirrored"
	// OutcomeFailed means the reconstruction differs or an error occurred.
	OutcomeFailed Outcome = "failed"
	// OutcomeSkipped means no shred width fits the image.
	OutcomeSkipped Outcome = "skipped"
)

// Options configures Run.
type Options struct {
	// Unshred is passed to unshred.Reconstruct. A zero StripWidth makes the
	// harness pick a shred width per image with shred.ChooseWidth and exercise
	// width detection; otherwise that width is used for both steps.
	Unshred unshred.Options

	// Seed seeds shred width choice and shuffling.
	Seed int64

	// Logger receives progress lines. Nil disables logging.
	Logger *log.Logger
}

// ImageReport is the result for one image.
type ImageReport struct {
	Path              string        `json:"path"`
	Outcome           Outcome       `json:"outcome"`
	ShredWidth        int           `json:"shred_width,omitempty"`
	DetectedWidth     int           `json:"detected_width,omitempty"`
	WidthFallback     bool          `json:"width_fallback,omitempty"`
	ShreddedPath      string        `json:"shredded_path,omitempty"`
	ReconstructedPath string        `json:"reconstructed_path,omitempty"`
	Similarity        float64       `json:"similarity"`
	Error             string        `json:"error,omitempty"`
	Duration          time.Duration `json:"duration_ns"`
}

// Report summarises a batch run.
type Report struct {
	Images   []ImageReport `json:"images"`
	Passed   int           `json:"passed"`
	Mirrored int           `json:"mirrored"`
	Failed   int           `json:"failed"`
	Skipped  int           `json:"skipped"`
	Duration time.Duration `json:"duration_ns"`
}

// Run shreds and reconstructs every supported image in dir.
//
// For photo.png it writes photo.shredded.png and photo.reconstructed.png
// next to the original. JPEG sources get PNG intermediates so the comparison
// is not spoiled by re-encoding. Files that already carry one of those tags
// are ignored. Cancellation is checked between images.
func Run(ctx context.Context, dir string, opts Options) (*Report, error) {
	files, err := candidates(dir)
	if err != nil {
		return nil, err
	}

	logf := func(format string, args ...interface{}) {
		if opts.Logger != nil {
			opts.Logger.Printf(format, args...)
		}
	}
	logf("Number of files to be tested: %d", len(files))

	rng := rand.New(rand.NewSource(opts.Seed))
	report := &Report{Images: make([]ImageReport, 0, len(files))}
	start := time.Now()

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		ir := runOne(path, rng, opts.Unshred)
		report.Images = append(report.Images, ir)

		switch ir.Outcome {
		case OutcomePassed:
			report.Passed++
		case OutcomeMirrored:
			report.Mirrored++
		case OutcomeSkipped:
			report.Skipped++
		default:
			report.Failed++
		}
		logf("Image %s %s in %s", filepath.Base(path), ir.Outcome, ir.Duration.Round(time.Millisecond))
		if ir.Error != "" {
			logf("  %s", ir.Error)
		}
	}

	report.Duration = time.Since(start)
	logf("Passed: %d, Mirrored: %d, Failed: %d, Skipped: %d", report.Passed, report.Mirrored, report.Failed, report.Skipped)
	return report, nil
}

func runOne(path string, rng *rand.Rand, uopts unshred.Options) ImageReport {
	start := time.Now()
	ir := ImageReport{Path: path}
	fail := func(err error) ImageReport {
		ir.Outcome = OutcomeFailed
		ir.Error = err.Error()
		ir.Duration = time.Since(start)
		return ir
	}

	// Fresh cache per image; the batch never revisits a file.
	cache := imaging.NewImageCache()
	original, err := cache.Load(path)
	if err != nil {
		return fail(err)
	}

	width := uopts.StripWidth
	if width == 0 {
		width, err = shred.ChooseWidth(original.Bounds().Dx(), rng)
		if errors.Is(err, shred.ErrNoShredWidth) {
			ir.Outcome = OutcomeSkipped
			ir.Error = err.Error()
			ir.Duration = time.Since(start)
			return ir
		}
	}
	ir.ShredWidth = width

	shredded, err := shred.Shred(original, width, rng)
	if err != nil {
		return fail(err)
	}
	ir.ShreddedPath = imaging.DerivedPath(imaging.LosslessPath(path), TagShredded)
	if err := imaging.Save(shredded.Image, ir.ShreddedPath); err != nil {
		return fail(err)
	}

	res, err := unshred.Reconstruct(shredded.Image, uopts)
	if err != nil {
		return fail(fmt.Errorf("failed to reconstruct: %w", err))
	}
	ir.DetectedWidth = res.StripWidth
	ir.WidthFallback = res.Fallback

	ir.ReconstructedPath = imaging.DerivedPath(imaging.LosslessPath(path), TagReconstructed)
	if err := imaging.Save(res.Image, ir.ReconstructedPath); err != nil {
		return fail(err)
	}

	cmp, err := imaging.CompareStrips(original, res.Image, res.StripWidth)
	if err != nil {
		return fail(err)
	}
	ir.Similarity = cmp.SimilarityScore
	switch {
	case cmp.Identical:
		ir.Outcome = OutcomePassed
	case cmp.Mirrored:
		ir.Outcome = OutcomeMirrored
	default:
		ir.Outcome = OutcomeFailed
		ir.Error = fmt.Sprintf("%d of %d pixels differ", cmp.PixelsDifferent, cmp.TotalPixels)
	}
	ir.Duration = time.Since(start)
	return ir
}

// candidates lists the supported, non-derived image files in dir, sorted.
func candidates(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("folder does not exist: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(dir, e.Name())
		switch imaging.FormatName(path) {
		case "png", "jpeg", "gif":
		default:
			continue
		}
		if imaging.IsDerived(path, TagShredded, TagReconstructed) {
			continue
		}
		files = append(files, path)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no image files found in %s", dir)
	}
	sort.Strings(files)
	return files, nil
}
