package unshred

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a pixel in both RGB and Y/U/V form.
//
// The Y/U/V values are derived once at construction with the BT.601
// full-range coefficients:
//
//	Y =  0.299*R    + 0.587*G    + 0.114*B
//	U = -0.168736*R - 0.331264*G + 0.5*B      + 128
//	V =  0.5*R      - 0.418688*G - 0.081312*B + 128
//
// A Color is immutable.
type Color struct {
	R, G, B uint8
	Y, U, V float64
}

// NewColor builds a Color from a packed 0xRRGGBB value. Bits above 24 (alpha)
// are ignored.
func NewColor(packed uint32) Color {
	r := float64((packed >> 16) & 0xff)
	g := float64((packed >> 8) & 0xff)
	b := float64(packed & 0xff)

	return Color{
		R: uint8(packed >> 16),
		G: uint8(packed >> 8),
		B: uint8(packed),
		Y: r*0.299 + g*0.587 + b*0.114,
		U: r*-0.168736 + g*-0.331264 + b*0.5 + 128,
		V: r*0.5 + g*-0.418688 + b*-0.081312 + 128,
	}
}

// ColorOf converts any color.Color to a Color using its non-premultiplied
// 8-bit RGB values. Fully transparent colors have no defined RGB and map to
// black.
func ColorOf(c color.Color) Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return NewColor(0)
	}
	r, g, b := cf.Clamped().RGB255()
	return NewColor(Pack(r, g, b))
}

// Pack combines 8-bit channels into a 0xRRGGBB value.
func Pack(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Pack returns the color as 0xRRGGBB.
func (c Color) Pack() uint32 {
	return Pack(c.R, c.G, c.B)
}

// Hex returns the color as "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}.Hex()
}

// Distance returns the Euclidean distance between a and b in the (U, V)
// plane. It is zero for identical colors and symmetric.
func Distance(a, b Color) float64 {
	du := a.U - b.U
	dv := a.V - b.V
	return math.Sqrt(du*du + dv*dv)
}
