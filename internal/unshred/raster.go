package unshred

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Raster is a zero-origin, row-major view of an image as packed 0xRRGGBB
// pixels. Alpha is not kept; fully transparent pixels read as black.
type Raster struct {
	width  int
	height int
	pix    []uint32
}

// NewRaster copies img into a Raster. The source is normalised to
// non-premultiplied 8-bit RGBA first, so opaque pixels pack exactly what an
// encoder would write. Pixels with any transparency go through ColorOf.
func NewRaster(img image.Image) *Raster {
	src := imaging.Clone(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()

	r := &Raster{
		width:  w,
		height: h,
		pix:    make([]uint32, w*h),
	}
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w*4]
		for x := 0; x < w; x++ {
			i := x * 4
			if row[i+3] == 0xff {
				r.pix[y*w+x] = Pack(row[i], row[i+1], row[i+2])
				continue
			}
			r.pix[y*w+x] = ColorOf(color.NRGBA{R: row[i], G: row[i+1], B: row[i+2], A: row[i+3]}).Pack()
		}
	}
	return r
}

// Width returns the raster width in pixels.
func (r *Raster) Width() int { return r.width }

// Height returns the raster height in pixels.
func (r *Raster) Height() int { return r.height }

// At returns the packed color at (x, y). Coordinates are not bounds-checked
// beyond what the slice index does.
func (r *Raster) At(x, y int) uint32 {
	return r.pix[y*r.width+x]
}

// Column returns the colors of column x, top to bottom.
func (r *Raster) Column(x int) []Color {
	col := make([]Color, r.height)
	for y := 0; y < r.height; y++ {
		col[y] = NewColor(r.At(x, y))
	}
	return col
}
