package unshred

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Composite copies each strip of src into consecutive columns of a new image,
// in the given order. Rows are copied byte for byte; nothing is resampled or
// converted.
//
// The result has the same size as src with a zero origin. It has the same
// concrete type for the in-memory formats the standard library can address
// by byte offset (RGBA, NRGBA, RGBA64, NRGBA64, Gray, Gray16, Alpha,
// Paletted). Other types, such as *image.YCbCr from JPEG decoding, come back
// as *image.NRGBA.
//
// Strip bounds are relative to the zero-origin raster src was read into.
func Composite(src image.Image, strips []Strip, order []int) image.Image {
	b := src.Bounds()
	if !pixAddressable(src) {
		src = imaging.Clone(src)
		b = src.Bounds()
	}

	dst := newLike(src, b.Dx(), b.Dy())
	srcPix, _, bpp := pixLayout(src)
	dstPix, dstStride, _ := pixLayout(dst)
	srcOff := src.(pixOffsetter)

	destX := 0
	for _, idx := range order {
		s := strips[idx]
		n := s.Width() * bpp
		for y := 0; y < b.Dy(); y++ {
			from := srcOff.PixOffset(b.Min.X+s.Bounds.Min.X, b.Min.Y+y)
			to := y*dstStride + destX*bpp
			copy(dstPix[to:to+n], srcPix[from:from+n])
		}
		destX += s.Width()
	}
	return dst
}

type pixOffsetter interface {
	PixOffset(x, y int) int
}

func pixAddressable(img image.Image) bool {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64,
		*image.Gray, *image.Gray16, *image.Alpha, *image.Paletted:
		return true
	}
	return false
}

// pixLayout returns the pixel buffer, stride and bytes per pixel of an
// addressable image.
func pixLayout(img image.Image) ([]byte, int, int) {
	switch m := img.(type) {
	case *image.RGBA:
		return m.Pix, m.Stride, 4
	case *image.NRGBA:
		return m.Pix, m.Stride, 4
	case *image.RGBA64:
		return m.Pix, m.Stride, 8
	case *image.NRGBA64:
		return m.Pix, m.Stride, 8
	case *image.Gray:
		return m.Pix, m.Stride, 1
	case *image.Gray16:
		return m.Pix, m.Stride, 2
	case *image.Alpha:
		return m.Pix, m.Stride, 1
	case *image.Paletted:
		return m.Pix, m.Stride, 1
	}
	return nil, 0, 0
}

// newLike allocates a zero-origin w x h image of the same type as img.
func newLike(img image.Image, w, h int) image.Image {
	r := image.Rect(0, 0, w, h)
	switch m := img.(type) {
	case *image.RGBA:
		return image.NewRGBA(r)
	case *image.RGBA64:
		return image.NewRGBA64(r)
	case *image.NRGBA64:
		return image.NewNRGBA64(r)
	case *image.Gray:
		return image.NewGray(r)
	case *image.Gray16:
		return image.NewGray16(r)
	case *image.Alpha:
		return image.NewAlpha(r)
	case *image.Paletted:
		palette := make([]color.Color, len(m.Palette))
		copy(palette, m.Palette)
		return image.NewPaletted(r, palette)
	}
	return image.NewNRGBA(r)
}
