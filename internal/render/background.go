package render

import (
	"math"

	"raystein/internal/graphics"
	"raystein/internal/mathutil"
)

// Background caches the sky and ground fill so each frame starts with one
// copy instead of a per-pixel loop.
type Background struct {
	palette Palette
	cache   *graphics.Framebuffer
}

// NewBackground creates an empty cache; it is built on first use.
func NewBackground(p Palette) *Background {
	return &Background{palette: p}
}

// Restore writes the background into fb, rebuilding the cache when the
// framebuffer size changed.
func (b *Background) Restore(fb *graphics.Framebuffer) error {
	if b.cache == nil || b.cache.Width != fb.Width || b.cache.Height != fb.Height {
		b.cache = b.build(fb.Width, fb.Height)
	}
	return fb.CopyFrom(b.cache)
}

// build shades the sky darker toward the top and the ground darker toward
// the horizon.
func (b *Background) build(width, height int) *graphics.Framebuffer {
	fb := graphics.NewFramebuffer(width, height)
	horizon := height / 2
	for y := 0; y < height; y++ {
		var c graphics.Color
		if y < horizon {
			c = b.palette.Sky.Scale(0.6 + 0.4*float64(y)/float64(max(horizon, 1)))
		} else {
			depth := float64(y-horizon) / float64(max(height-horizon, 1))
			c = b.palette.Ground.Scale(0.5 + 0.5*depth)
		}
		fb.FillRect(0, y, width, 1, c)
	}
	return fb
}

// Celestial is a decorative disc that crosses the sky as the phase goes
// from 0 to 1.
type Celestial struct {
	Radius int
	Color  graphics.Color
}

// AdvancePhase moves the phase by step and clamps it into [0,1].
func AdvancePhase(phase, step float64) float64 {
	return mathutil.Clamp(phase+step, 0, 1)
}

// Position returns the disc centre for a phase. X is linear in the phase; Y
// follows a parabola that meets the horizon at both screen edges and peaks at
// a tenth of the screen height in the middle.
func (c Celestial) Position(phase float64, width, height int) (x, y float64) {
	p := mathutil.Clamp(phase, 0, 1)
	w, h := float64(width), float64(height)
	x = p * w
	horizon := h / 2
	apex := h / 10
	t := (x - w/2) / (w / 2)
	y = apex + (horizon-apex)*t*t
	return x, y
}

// Draw paints the disc for phase into fb.
func (c Celestial) Draw(fb *graphics.Framebuffer, phase float64) {
	cx, cy := c.Position(phase, fb.Width, fb.Height)
	r := float64(c.Radius)
	if r <= 0 {
		return
	}
	y0 := int(math.Floor(cy - r))
	y1 := int(math.Ceil(cy + r))
	for y := y0; y <= y1; y++ {
		dy := float64(y) + 0.5 - cy
		if math.Abs(dy) > r {
			continue
		}
		half := math.Sqrt(r*r - dy*dy)
		x0 := int(math.Floor(cx - half))
		x1 := int(math.Ceil(cx + half))
		fb.FillRect(x0, y, x1-x0, 1, c.Color)
	}
}
