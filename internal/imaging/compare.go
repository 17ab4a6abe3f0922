package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/anthonynsimon/bild/clone"
	"github.com/disintegration/imaging"
)

// CompareResult describes how closely two images of equal size match.
type CompareResult struct {
	// Identical is true when every pixel matches exactly.
	Identical bool `json:"identical"`

	// Mirrored is true when the second image equals the first with its strip
	// order reversed. Only set by CompareStrips.
	Mirrored bool `json:"mirrored"`

	// PixelsDifferent counts pixels whose RGBA values differ at all.
	PixelsDifferent int `json:"pixels_different"`

	// TotalPixels is width * height.
	TotalPixels int `json:"total_pixels"`

	// SimilarityScore is the fraction of matching pixels (0-1).
	SimilarityScore float64 `json:"similarity_score"`

	// AverageColorDiff is the mean absolute RGB difference per pixel (0-255).
	AverageColorDiff float64 `json:"average_color_diff"`
}

// Compare compares a and b pixel by pixel in 8-bit RGBA.
//
// The images must have the same dimensions; their origins may differ.
func Compare(a, b image.Image) (*CompareResult, error) {
	ab, bb := a.Bounds(), b.Bounds()
	if ab.Dx() != bb.Dx() || ab.Dy() != bb.Dy() {
		return nil, fmt.Errorf("image sizes differ: %dx%d vs %dx%d", ab.Dx(), ab.Dy(), bb.Dx(), bb.Dy())
	}

	ra := clone.AsRGBA(a)
	rb := clone.AsRGBA(b)
	w, h := ab.Dx(), ab.Dy()

	totalPixels := w * h
	pixelsDifferent := 0
	var totalColorDiff float64

	for y := 0; y < h; y++ {
		rowA := ra.Pix[y*ra.Stride : y*ra.Stride+w*4]
		rowB := rb.Pix[y*rb.Stride : y*rb.Stride+w*4]
		for x := 0; x < w*4; x += 4 {
			dr := absDiff(rowA[x], rowB[x])
			dg := absDiff(rowA[x+1], rowB[x+1])
			db := absDiff(rowA[x+2], rowB[x+2])
			totalColorDiff += float64(dr+dg+db) / 3.0

			if dr != 0 || dg != 0 || db != 0 || rowA[x+3] != rowB[x+3] {
				pixelsDifferent++
			}
		}
	}

	res := &CompareResult{
		Identical:       pixelsDifferent == 0,
		PixelsDifferent: pixelsDifferent,
		TotalPixels:     totalPixels,
		SimilarityScore: 1,
	}
	if totalPixels > 0 {
		res.SimilarityScore = math.Round((1.0-float64(pixelsDifferent)/float64(totalPixels))*1000) / 1000
		res.AverageColorDiff = math.Round(totalColorDiff/float64(totalPixels)*100) / 100
	}
	return res, nil
}

// CompareStrips compares a and b like Compare and, when they are not
// identical, also checks whether b is a with its stripWidth-wide strips in
// reverse order.
func CompareStrips(a, b image.Image, stripWidth int) (*CompareResult, error) {
	res, err := Compare(a, b)
	if err != nil || res.Identical {
		return res, err
	}
	if stripWidth <= 0 || a.Bounds().Dx()%stripWidth != 0 {
		return res, nil
	}

	mirror, err := Compare(a, ReverseStrips(b, stripWidth))
	if err != nil {
		return nil, err
	}
	res.Mirrored = mirror.Identical
	return res, nil
}

// ReverseStrips returns a copy of img with its stripWidth-wide vertical
// strips in reverse order. The pixels inside each strip are not flipped.
func ReverseStrips(img image.Image, stripWidth int) *image.NRGBA {
	b := img.Bounds()
	out := imaging.New(b.Dx(), b.Dy(), image.Transparent)
	n := b.Dx() / stripWidth
	for i := 0; i < n; i++ {
		strip := imaging.Crop(img, image.Rect(b.Min.X+i*stripWidth, b.Min.Y, b.Min.X+(i+1)*stripWidth, b.Max.Y))
		out = imaging.Paste(out, strip, image.Pt((n-1-i)*stripWidth, 0))
	}
	return out
}

// absDiff returns the absolute difference between two uint8 values.
func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}
