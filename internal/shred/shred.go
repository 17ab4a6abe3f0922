// Package shred cuts an image into equal-width vertical strips and shuffles
// them. It produces test input for the unshredder.
package shred

import (
	"errors"
	"fmt"
	"image"
	"math/rand"

	"github.com/disintegration/imaging"
)

// ErrNoShredWidth is returned by ChooseWidth when no candidate width divides
// the image width.
var ErrNoShredWidth = errors.New("no shred width divides image width")

// Result holds a shredded image and the permutation that produced it.
type Result struct {
	// Image is the shuffled image.
	Image *image.NRGBA

	// StripWidth is the width of each strip in pixels.
	StripWidth int

	// Order[i] is the original index of the strip now at position i.
	Order []int
}

// Shred cuts img into stripWidth-wide strips, shuffles them with rng and
// pastes them side by side into a new image of the same size.
func Shred(img image.Image, stripWidth int, rng *rand.Rand) (*Result, error) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("cannot shred empty image (%dx%d)", b.Dx(), b.Dy())
	}
	if stripWidth <= 0 {
		return nil, fmt.Errorf("shred width must be positive, got %d", stripWidth)
	}
	if b.Dx()%stripWidth != 0 {
		return nil, fmt.Errorf("shred width %d does not divide image width %d", stripWidth, b.Dx())
	}

	n := b.Dx() / stripWidth
	order := rng.Perm(n)

	out := imaging.New(b.Dx(), b.Dy(), image.Transparent)
	for pos, src := range order {
		x := b.Min.X + src*stripWidth
		strip := imaging.Crop(img, image.Rect(x, b.Min.Y, x+stripWidth, b.Max.Y))
		out = imaging.Paste(out, strip, image.Pt(pos*stripWidth, 0))
	}

	return &Result{Image: out, StripWidth: stripWidth, Order: order}, nil
}

// ChooseWidth picks a random strip width for an image imageWidth pixels wide.
//
// Multiples of 4 up to 16 are preferred, then 10, then multiples of 7 up to
// 21. Only widths that divide imageWidth and leave at least two strips are
// considered.
func ChooseWidth(imageWidth int, rng *rand.Rand) (int, error) {
	groups := [][]int{
		{4, 8, 12, 16},
		{10},
		{7, 14, 21},
	}

	for _, group := range groups {
		var fits []int
		for _, w := range group {
			if imageWidth%w == 0 && imageWidth/w >= 2 {
				fits = append(fits, w)
			}
		}
		if len(fits) > 0 {
			return fits[rng.Intn(len(fits))], nil
		}
	}
	return 0, fmt.Errorf("%w: %d", ErrNoShredWidth, imageWidth)
}
