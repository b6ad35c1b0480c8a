package render

import (
	"math"

	"raystein/internal/graphics"
	"raystein/internal/raycast"
	"raystein/internal/world"
)

// Transform maps world pixel space onto the framebuffer.
type Transform struct {
	Scale   float64
	OffsetX float64
	OffsetY float64
}

// Apply maps a world point.
func (t Transform) Apply(p world.Vec2) (float64, float64) {
	return p.X*t.Scale + t.OffsetX, p.Y*t.Scale + t.OffsetY
}

// FitTransform scales the whole grid into a width x height area anchored at
// the top-left corner.
func FitTransform(g *world.Grid, width, height int) Transform {
	cw, ch := g.CellSize()
	worldW := cw * float64(g.Cols())
	worldH := ch * float64(g.Rows())
	return Transform{Scale: math.Min(float64(width)/worldW, float64(height)/worldH)}
}

const (
	spriteMarkerSize = 10
	playerMarkerSize = 6
)

// TopDown draws the 2D view: cells filled by tag, a fan of rays, sprite
// squares and the player marker. The same routine serves the full-screen
// map and the minimap through its Transform.
type TopDown struct {
	Palette Palette
	FanRays int
	Ray     raycast.Options
}

// Draw renders the map and returns ray errors, if any.
func (td *TopDown) Draw(fb *graphics.Framebuffer, g *world.Grid, pose world.Pose, sprites []world.Vec2, t Transform) []error {
	cw, ch := g.CellSize()
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			x0, y0 := t.Apply(world.Vec2{X: float64(col) * cw, Y: float64(row) * ch})
			x1, y1 := t.Apply(world.Vec2{X: float64(col+1) * cw, Y: float64(row+1) * ch})
			ix0, iy0 := int(math.Floor(x0)), int(math.Floor(y0))
			fb.FillRect(ix0, iy0, int(math.Ceil(x1))-ix0, int(math.Ceil(y1))-iy0, td.Palette.CellColor(g.At(col, row)))
		}
	}

	var errs []error
	rays := td.FanRays
	if rays <= 0 {
		rays = 5
	}
	for i := 0; i < rays; i++ {
		if err := td.drawRay(fb, g, pose, pose.RayAngle(i, rays), t); err != nil {
			errs = append(errs, err)
		}
	}

	for _, s := range sprites {
		td.marker(fb, s, spriteMarkerSize, t, td.Palette.Enemy)
	}
	td.marker(fb, pose.Position, playerMarkerSize, t, td.Palette.Player)
	return errs
}

// drawRay paints the path of a ray up to its hit point, one framebuffer
// pixel per step.
func (td *TopDown) drawRay(fb *graphics.Framebuffer, g *world.Grid, pose world.Pose, angle float64, t Transform) error {
	hit, err := raycast.Cast(g, pose.Position, angle, td.Ray)
	if err != nil {
		return err
	}
	cw, ch := g.CellSize()
	limit := hit.Distance
	if !hit.Hit {
		limit = math.Hypot(cw*float64(g.Cols()), ch*float64(g.Rows()))
	}

	step := 1.0
	if t.Scale > 0 && t.Scale < 1 {
		step = 1 / t.Scale
	}
	dir := world.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}
	fb.SetCurrentColor(td.Palette.Ray)
	for d := 0.0; d <= limit; d += step {
		p := pose.Position.Add(dir.Scale(d))
		if _, ok := g.CellAt(p.X, p.Y); !ok {
			break
		}
		fb.PaintPoint(t.Apply(p))
	}
	return nil
}

func (td *TopDown) marker(fb *graphics.Framebuffer, p world.Vec2, size float64, t Transform, c graphics.Color) {
	side := max(int(math.Round(size*t.Scale)), 2)
	x, y := t.Apply(p)
	fb.FillRect(int(math.Floor(x))-side/2, int(math.Floor(y))-side/2, side, side, c)
}

// MinimapOptions places the scaled top-down view in the top-right corner.
type MinimapOptions struct {
	Enabled bool
	Scale   float64
	Margin  int
}

// MinimapTransform returns the transform and framed rectangle for the
// minimap of grid g on a width-wide framebuffer.
func (m MinimapOptions) MinimapTransform(g *world.Grid, width int) (Transform, [4]int) {
	cw, ch := g.CellSize()
	mapW := int(math.Ceil(cw * float64(g.Cols()) * m.Scale))
	mapH := int(math.Ceil(ch * float64(g.Rows()) * m.Scale))
	x := width - m.Margin - mapW
	y := m.Margin
	return Transform{Scale: m.Scale, OffsetX: float64(x), OffsetY: float64(y)}, [4]int{x, y, mapW, mapH}
}
