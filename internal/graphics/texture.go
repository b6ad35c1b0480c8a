package graphics

import (
	"errors"
	"fmt"
	"image"

	"raystein/internal/mathutil"
)

var ErrTextureSize = errors.New("texture pixel count does not match its dimensions")

// Texture is a dense row-major RGB image.
type Texture struct {
	Width  int
	Height int
	Pixels []Color
}

// NewTexture wraps pixels. len(pixels) must equal width*height.
func NewTexture(width, height int, pixels []Color) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrTextureSize, width, height)
	}
	if len(pixels) != width*height {
		return nil, fmt.Errorf("%w: %dx%d with %d pixels", ErrTextureSize, width, height, len(pixels))
	}
	return &Texture{Width: width, Height: height, Pixels: pixels}, nil
}

// NewTextureFromImage copies a decoded image into a texture.
func NewTextureFromImage(img image.Image) (*Texture, error) {
	b := img.Bounds()
	pixels := make([]Color, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			pixels = append(pixels, FromColor(img.At(x, y)))
		}
	}
	return NewTexture(b.Dx(), b.Dy(), pixels)
}

// NewSolidTexture creates a single-color texture.
func NewSolidTexture(width, height int, c Color) *Texture {
	pixels := make([]Color, width*height)
	for i := range pixels {
		pixels[i] = c
	}
	return &Texture{Width: width, Height: height, Pixels: pixels}
}

// NewCheckerTexture creates a two-color checkerboard with square cells of
// the given size.
func NewCheckerTexture(width, height, cell int, a, b Color) *Texture {
	if cell <= 0 {
		cell = 1
	}
	pixels := make([]Color, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := a
			if (x/cell+y/cell)%2 == 1 {
				c = b
			}
			pixels[y*width+x] = c
		}
	}
	return &Texture{Width: width, Height: height, Pixels: pixels}
}

// At returns the texel at x, y. Both must already be inside the texture.
func (t *Texture) At(x, y int) Color {
	return t.Pixels[y*t.Width+x]
}

// Sample floors a continuous texel coordinate and clamps it into
// [0,Width) x [0,Height) before lookup, so it never indexes out of range.
func (t *Texture) Sample(tx, ty float64) Color {
	return t.At(mathutil.FloorIndex(tx, t.Width), mathutil.FloorIndex(ty, t.Height))
}

// Aspect returns width / height.
func (t *Texture) Aspect() float64 {
	return float64(t.Width) / float64(t.Height)
}
