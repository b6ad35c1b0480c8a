package graphics

import (
	"errors"
	"image"
	"image/color"
)

var ErrSizeMismatch = errors.New("framebuffer sizes differ")

// Framebuffer is the render target: one Color per pixel, row-major. It
// implements draw.Image so x/image text drawing and image encoders can use it
// directly.
type Framebuffer struct {
	Width  int
	Height int
	Buffer []Color

	current Color
}

// NewFramebuffer allocates a width x height buffer cleared to black.
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Buffer: make([]Color, width*height),
	}
}

// SetCurrentColor sets the color used by PaintPoint.
func (fb *Framebuffer) SetCurrentColor(c Color) {
	fb.current = c
}

// Fill paints every pixel.
func (fb *Framebuffer) Fill(c Color) {
	for i := range fb.Buffer {
		fb.Buffer[i] = c
	}
}

// InBounds reports whether x, y addresses a pixel.
func (fb *Framebuffer) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < fb.Width && y < fb.Height
}

// SetPixel writes one pixel; writes outside the buffer are dropped.
func (fb *Framebuffer) SetPixel(x, y int, c Color) {
	if !fb.InBounds(x, y) {
		return
	}
	fb.Buffer[y*fb.Width+x] = c
}

// Pixel returns the color at x, y, or black outside the buffer.
func (fb *Framebuffer) Pixel(x, y int) Color {
	if !fb.InBounds(x, y) {
		return ColorBlack
	}
	return fb.Buffer[y*fb.Width+x]
}

// PaintPoint paints the current color at a continuous position and reports
// whether it landed inside the buffer.
func (fb *Framebuffer) PaintPoint(x, y float64) bool {
	if x < 0 || y < 0 {
		return false
	}
	ix, iy := int(x), int(y)
	if !fb.InBounds(ix, iy) {
		return false
	}
	fb.Buffer[iy*fb.Width+ix] = fb.current
	return true
}

// FillRect paints the intersection of the rectangle with the buffer.
func (fb *Framebuffer) FillRect(x, y, w, h int, c Color) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, fb.Width), min(y+h, fb.Height)
	for py := y0; py < y1; py++ {
		row := fb.Buffer[py*fb.Width : (py+1)*fb.Width]
		for px := x0; px < x1; px++ {
			row[px] = c
		}
	}
}

// CopyFrom overwrites the buffer with src, which must have the same size.
func (fb *Framebuffer) CopyFrom(src *Framebuffer) error {
	if src.Width != fb.Width || src.Height != fb.Height {
		return ErrSizeMismatch
	}
	copy(fb.Buffer, src.Buffer)
	return nil
}

// BlitTexture stretches a texture over the whole buffer.
func (fb *Framebuffer) BlitTexture(tex *Texture) {
	sx := float64(tex.Width) / float64(fb.Width)
	sy := float64(tex.Height) / float64(fb.Height)
	for y := 0; y < fb.Height; y++ {
		row := fb.Buffer[y*fb.Width : (y+1)*fb.Width]
		ty := float64(y) * sy
		for x := range row {
			row[x] = tex.Sample(float64(x)*sx, ty)
		}
	}
}

// RGBA writes the buffer as RGBA bytes into dst, growing it if needed.
func (fb *Framebuffer) RGBA(dst []byte) []byte {
	n := len(fb.Buffer) * 4
	if cap(dst) < n {
		dst = make([]byte, n)
	}
	dst = dst[:n]
	for i, c := range fb.Buffer {
		j := i * 4
		dst[j] = c.R()
		dst[j+1] = c.G()
		dst[j+2] = c.B()
		dst[j+3] = 0xff
	}
	return dst
}

// ColorModel implements image.Image.
func (fb *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image.
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// At implements image.Image.
func (fb *Framebuffer) At(x, y int) color.Color {
	return fb.Pixel(x, y)
}

// Set implements draw.Image.
func (fb *Framebuffer) Set(x, y int, c color.Color) {
	fb.SetPixel(x, y, FromColor(c))
}
