package graphics

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DrawText draws s with the 7x13 basic font; x, y is the top-left corner of
// the first line. Newlines start a new line.
func DrawText(dst draw.Image, x, y int, s string, c Color) {
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: face,
	}
	lineHeight := face.Metrics().Height.Ceil()
	baseline := y + face.Metrics().Ascent.Ceil()
	start := 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != '\n' {
			continue
		}
		d.Dot = fixed.P(x, baseline)
		d.DrawString(s[start:i])
		baseline += lineHeight
		start = i + 1
	}
}

// TextWidth returns the pixel width of the longest line of s.
func TextWidth(s string) int {
	face := basicfont.Face7x13
	widest := 0
	start := 0
	for i := 0; i <= len(s); i++ {
		if i < len(s) && s[i] != '\n' {
			continue
		}
		if w := font.MeasureString(face, s[start:i]).Ceil(); w > widest {
			widest = w
		}
		start = i + 1
	}
	return widest
}
