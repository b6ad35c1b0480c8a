package render

import (
	"math"
	"sort"

	"raystein/internal/graphics"
	"raystein/internal/threading/core"
	"raystein/internal/world"
)

// Sprite scales for the two HUD layouts.
const (
	DefaultSpriteScale        = 20.0
	DefaultMinimapSpriteScale = 9.0
	DefaultMinSpriteDistance  = 1.0
)

// parallelSpriteThreshold is the sprite count above which projection is
// spread across goroutines.
const parallelSpriteThreshold = 32

// SpriteRect is a billboard projected to screen space. Start and end are
// unclipped, so a rect may extend past the screen edges.
type SpriteRect struct {
	Distance float64 // true distance, used for the depth test
	Angle    float64 // direction from the player to the sprite
	Height   float64
	Width    float64
	StartX   int
	StartY   int
	EndX     int // exclusive
	EndY     int // exclusive
}

// Visible reports whether any part of the rect lands on a width x height
// screen.
func (r SpriteRect) Visible(width, height int) bool {
	return r.EndX > 0 && r.StartX < width && r.EndY > 0 && r.StartY < height && r.Width > 0 && r.Height > 0
}

// SpriteCompositor paints billboards over the walls, column by column,
// dropping every column where the z-buffer holds a nearer wall.
type SpriteCompositor struct {
	Scale       float64
	MinDistance float64 // projection clamp for sprites on top of the player
}

// NewSpriteCompositor creates a compositor with the given scale and
// projection distance clamp. Non-positive values use the defaults.
func NewSpriteCompositor(scale, minDistance float64) *SpriteCompositor {
	if !(scale > 0) {
		scale = DefaultSpriteScale
	}
	if !(minDistance > 0) {
		minDistance = DefaultMinSpriteDistance
	}
	return &SpriteCompositor{Scale: scale, MinDistance: minDistance}
}

// Project computes the screen rectangle of a sprite. The horizontal start is
// offset by half the rendered height, not half the width.
func (sc *SpriteCompositor) Project(pose world.Pose, sprite world.Vec2, tex *graphics.Texture, width, height int) SpriteRect {
	dx := sprite.X - pose.Position.X
	dy := sprite.Y - pose.Position.Y
	angle := math.Atan2(dy, dx)
	distance := math.Hypot(dx, dy)

	h := float64(height)
	projected := math.Max(distance, sc.MinDistance)
	renderedHeight := h / projected * sc.Scale
	renderedWidth := renderedHeight * tex.Aspect()

	// Orientation accumulates without bound; compare in (-pi, pi].
	rel := math.Remainder(angle-pose.Orientation, 2*math.Pi)
	startX := rel*(h/pose.FOV) + float64(width)/2 - renderedHeight/2
	startY := h/2 - renderedHeight/2

	return SpriteRect{
		Distance: distance,
		Angle:    angle,
		Height:   renderedHeight,
		Width:    renderedWidth,
		StartX:   floorInt(startX),
		StartY:   floorInt(startY),
		EndX:     floorInt(startX + renderedWidth),
		EndY:     floorInt(startY + renderedHeight),
	}
}

// Composite paints one sprite through paint and returns how many columns
// passed the depth test.
func (sc *SpriteCompositor) Composite(pose world.Pose, sprite world.Vec2, tex *graphics.Texture, zbuf ZBuffer, width, height int, paint func(x, y int, c graphics.Color)) int {
	r := sc.Project(pose, sprite, tex, width, height)
	return sc.paintRect(r, tex, zbuf, width, height, paint)
}

// Draw projects every sprite and paints them far to near into fb. The
// z-buffer must already hold this frame's wall depths.
func (sc *SpriteCompositor) Draw(fb *graphics.Framebuffer, pose world.Pose, sprites []world.Vec2, tex *graphics.Texture, zbuf ZBuffer) int {
	if len(sprites) == 0 || tex == nil {
		return 0
	}

	project := func(s world.Vec2) SpriteRect {
		return sc.Project(pose, s, tex, fb.Width, fb.Height)
	}
	var rects []SpriteRect
	if len(sprites) > parallelSpriteThreshold {
		rects = core.ParallelMap(sprites, project)
	} else {
		rects = make([]SpriteRect, len(sprites))
		for i, s := range sprites {
			rects[i] = project(s)
		}
	}
	sort.SliceStable(rects, func(i, j int) bool {
		return rects[i].Distance > rects[j].Distance
	})

	paint := func(x, y int, c graphics.Color) {
		fb.Buffer[y*fb.Width+x] = c
	}
	columns := 0
	for _, r := range rects {
		columns += sc.paintRect(r, tex, zbuf, fb.Width, fb.Height, paint)
	}
	return columns
}

func (sc *SpriteCompositor) paintRect(r SpriteRect, tex *graphics.Texture, zbuf ZBuffer, width, height int, paint func(x, y int, c graphics.Color)) int {
	if !r.Visible(width, height) {
		return 0
	}

	x0, x1 := max(r.StartX, 0), min(r.EndX, width)
	y0, y1 := max(r.StartY, 0), min(r.EndY, height)
	texW, texH := float64(tex.Width), float64(tex.Height)

	columns := 0
	for x := x0; x < x1; x++ {
		if zbuf.Occludes(x, r.Distance) {
			continue
		}
		columns++
		tx := float64(x-r.StartX) * texW / r.Width
		for y := y0; y < y1; y++ {
			ty := float64(y-r.StartY) * texH / r.Height
			c := tex.Sample(tx, ty)
			if c.IsTransparent() {
				continue
			}
			paint(x, y, c)
		}
	}
	return columns
}

// floorInt converts to int, saturating far outside the int range.
func floorInt(v float64) int {
	const limit = 1 << 30
	switch {
	case math.IsNaN(v):
		return 0
	case v > limit:
		return limit
	case v < -limit:
		return -limit
	}
	return int(math.Floor(v))
}
