package unshred

import "image"

// Strip is a full-height vertical slice of the shredded image.
type Strip struct {
	// Index is the strip's position in the shredded input, counted from the left.
	Index int

	// Bounds covers columns [Index*width, (Index+1)*width) and every row.
	Bounds image.Rectangle

	// Left and Right are the strip's outermost columns.
	Left  EdgeProfile
	Right EdgeProfile
}

// Width returns the strip width in pixels.
func (s Strip) Width() int {
	return s.Bounds.Dx()
}

// ExtractStrips cuts r into strips of the given width. width must be positive
// and divide r.Width(); Reconstruct checks this before calling.
func ExtractStrips(r *Raster, width int) []Strip {
	n := r.Width() / width
	strips := make([]Strip, n)
	for i := 0; i < n; i++ {
		startX := i * width
		strips[i] = Strip{
			Index:  i,
			Bounds: image.Rect(startX, 0, startX+width, r.Height()),
			Left:   NewEdgeProfile(r.Column(startX)),
			Right:  NewEdgeProfile(r.Column(startX + width - 1)),
		}
	}
	return strips
}
