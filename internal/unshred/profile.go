package unshred

import "fmt"

// EdgeProfile is the column of colors along one vertical edge of a strip,
// one entry per image row. It is never modified after construction.
type EdgeProfile struct {
	colors []Color
}

// NewEdgeProfile builds a profile from a copy of colors.
func NewEdgeProfile(colors []Color) EdgeProfile {
	c := make([]Color, len(colors))
	copy(c, colors)
	return EdgeProfile{colors: c}
}

// Height returns the number of rows in the profile.
func (p EdgeProfile) Height() int {
	return len(p.colors)
}

// AverageDistance returns the mean per-row UV distance between p and other.
// Lower values mean the two edges are more likely to have been adjacent.
//
// Both profiles must have the same height. All profiles of one image share
// its height, so a mismatch is a bug in the caller and panics.
func (p EdgeProfile) AverageDistance(other EdgeProfile) float64 {
	if p.Height() != other.Height() {
		panic(fmt.Sprintf("unshred: edge profile height mismatch (%d vs %d)", p.Height(), other.Height()))
	}
	if p.Height() == 0 {
		return 0
	}

	var sum float64
	for y := range p.colors {
		sum += Distance(p.colors[y], other.colors[y])
	}
	return sum / float64(len(p.colors))
}

// MeanColor returns the per-channel average RGB of the profile.
func (p EdgeProfile) MeanColor() Color {
	if len(p.colors) == 0 {
		return NewColor(0)
	}

	var r, g, b int
	for _, c := range p.colors {
		r += int(c.R)
		g += int(c.G)
		b += int(c.B)
	}
	n := len(p.colors)
	return NewColor(Pack(uint8(r/n), uint8(g/n), uint8(b/n)))
}
