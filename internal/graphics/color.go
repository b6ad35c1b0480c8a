package graphics

import "image/color"

// Color is a packed 0xRRGGBB value.
type Color uint32

// RGB packs three channels into a Color.
func RGB(r, g, b uint8) Color {
	return Color(uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// FromArray converts a config triple, clamping each channel to 0..255.
func FromArray(c [3]int) Color {
	return RGB(clampChannel(c[0]), clampChannel(c[1]), clampChannel(c[2]))
}

// FromColor converts any image/color value. Pixels that are more than half
// transparent become Transparent.
func FromColor(c color.Color) Color {
	if cc, ok := c.(Color); ok {
		return cc
	}
	r, g, b, a := c.RGBA()
	if a < 0x8000 {
		return Transparent
	}
	return RGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func (c Color) R() uint8 { return uint8(c >> 16) }
func (c Color) G() uint8 { return uint8(c >> 8) }
func (c Color) B() uint8 { return uint8(c) }

// IsTransparent reports whether c is the Transparent key.
func (c Color) IsTransparent() bool {
	return c&Transparent != 0
}

// RGBA implements color.Color. Every color except Transparent is opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	if c.IsTransparent() {
		return 0, 0, 0, 0
	}
	r = uint32(c.R())
	r |= r << 8
	g = uint32(c.G())
	g |= g << 8
	b = uint32(c.B())
	b |= b << 8
	return r, g, b, 0xffff
}

// Scale darkens or brightens the color by f, clamped per channel.
func (c Color) Scale(f float64) Color {
	scale := func(v uint8) uint8 {
		return clampChannel(int(float64(v) * f))
	}
	return RGB(scale(c.R()), scale(c.G()), scale(c.B()))
}

// Flat colors used when a cell has no texture.
const (
	ColorGoal    Color = 0x8b0000
	ColorWall    Color = 0xff00ff
	ColorDefault Color = 0xffffff
	ColorBlack   Color = 0x000000

	// Transparent marks texels sprites skip. It sits above the RGB bits so
	// it never collides with a real color.
	Transparent Color = 1 << 24
)
