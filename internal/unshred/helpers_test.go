package unshred

import (
	"image"
	"image/color"
)

var (
	red    = color.RGBA{255, 0, 0, 255}
	green  = color.RGBA{0, 255, 0, 255}
	blue   = color.RGBA{0, 0, 255, 255}
	yellow = color.RGBA{255, 255, 0, 255}
	cyan   = color.RGBA{0, 255, 255, 255}
)

// createStripedImage builds an image of len(colors) solid strips, each
// stripWidth pixels wide.
func createStripedImage(stripWidth, height int, colors ...color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, stripWidth*len(colors), height))
	for i, c := range colors {
		for x := i * stripWidth; x < (i+1)*stripWidth; x++ {
			for y := 0; y < height; y++ {
				img.SetRGBA(x, y, c)
			}
		}
	}
	return img
}

// createGradientImage builds an image whose chroma changes linearly with x,
// so columns that were adjacent always match best.
func createGradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(3 * x),
				G: uint8(255 - 3*x),
				B: uint8((y * 16) % 256),
				A: 255,
			})
		}
	}
	return img
}

// permuteStrips returns a copy of img whose strip at position i is the
// source strip perm[i].
func permuteStrips(img *image.RGBA, stripWidth int, perm []int) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(b)
	for pos, src := range perm {
		for dx := 0; dx < stripWidth; dx++ {
			for y := b.Min.Y; y < b.Max.Y; y++ {
				out.SetRGBA(pos*stripWidth+dx, y, img.RGBAAt(src*stripWidth+dx, y))
			}
		}
	}
	return out
}

// sameImage reports whether a and b have identical 8-bit RGBA pixels.
func sameImage(a, b image.Image) bool {
	if a.Bounds().Dx() != b.Bounds().Dx() || a.Bounds().Dy() != b.Bounds().Dy() {
		return false
	}
	ab, bb := a.Bounds(), b.Bounds()
	for y := 0; y < ab.Dy(); y++ {
		for x := 0; x < ab.Dx(); x++ {
			r1, g1, b1, a1 := a.At(ab.Min.X+x, ab.Min.Y+y).RGBA()
			r2, g2, b2, a2 := b.At(bb.Min.X+x, bb.Min.Y+y).RGBA()
			if r1 != r2 || g1 != g2 || b1 != b2 || a1 != a2 {
				return false
			}
		}
	}
	return true
}
