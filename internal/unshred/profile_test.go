package unshred

import (
	"math"
	"testing"
)

func colorsOf(packed ...uint32) []Color {
	out := make([]Color, len(packed))
	for i, p := range packed {
		out[i] = NewColor(p)
	}
	return out
}

func TestNewEdgeProfile_Copies(t *testing.T) {
	src := colorsOf(0xFF0000, 0x00FF00)
	p := NewEdgeProfile(src)
	src[0] = NewColor(0x0000FF)

	if p.colors[0].Pack() != 0xFF0000 {
		t.Errorf("profile changed with its source slice: got %#x", p.colors[0].Pack())
	}
	if p.Height() != 2 {
		t.Errorf("Height: got %d, want 2", p.Height())
	}
}

func TestAverageDistance_IsMeanOfRows(t *testing.T) {
	a := NewEdgeProfile(colorsOf(0xFF0000, 0x00FF00, 0x0000FF))
	b := NewEdgeProfile(colorsOf(0xFF0000, 0xFFFF00, 0x00FF00))

	want := (0 +
		Distance(NewColor(0x00FF00), NewColor(0xFFFF00)) +
		Distance(NewColor(0x0000FF), NewColor(0x00FF00))) / 3

	got := a.AverageDistance(b)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("AverageDistance: got %f, want %f", got, want)
	}
	if got < 0 {
		t.Errorf("AverageDistance is negative: %f", got)
	}
	if a.AverageDistance(a) != 0 {
		t.Errorf("AverageDistance to itself: got %f, want 0", a.AverageDistance(a))
	}
}

func TestAverageDistance_HeightMismatchPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("AverageDistance should panic on mismatched heights")
		}
	}()
	a := NewEdgeProfile(colorsOf(0xFF0000))
	b := NewEdgeProfile(colorsOf(0xFF0000, 0x00FF00))
	a.AverageDistance(b)
}

func TestAverageDistance_Empty(t *testing.T) {
	var a, b EdgeProfile
	if d := a.AverageDistance(b); d != 0 {
		t.Errorf("empty AverageDistance: got %f, want 0", d)
	}
}

func TestMeanColor(t *testing.T) {
	p := NewEdgeProfile(colorsOf(0x000000, 0xFF0000, 0x00FF00, 0x0000FF))
	// 255/4 truncates to 63 per channel.
	if got := p.MeanColor().Pack(); got != 0x3F3F3F {
		t.Errorf("MeanColor: got %#x, want 0x3f3f3f", got)
	}
}
