package render

import (
	"errors"
	"fmt"
	"math"

	"raystein/internal/graphics"
	"raystein/internal/raycast"
	"raystein/internal/threading/core"
	"raystein/internal/world"
)

var (
	ErrDegenerateSlab = errors.New("wall slab has a non-positive distance")
	ErrZBufferSize    = errors.New("z-buffer width does not match the framebuffer")
)

// DefaultProjection is the projection-plane constant walls are scaled by.
const DefaultProjection = 6 * math.Pi

// View is the read-only input every column of one frame shares.
type View struct {
	Grid     *world.Grid
	Pose     world.Pose
	Textures *graphics.TextureStore
	Width    int
	Height   int
}

// ColumnError attaches the screen column to a ray failure.
type ColumnError struct {
	Column int
	Err    error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("column %d: %v", e.Column, e.Err)
}

func (e *ColumnError) Unwrap() error {
	return e.Err
}

// Slab is one projected wall column. Pixels covers rows
// [Top, Top+len(Pixels)); rows outside it show the background.
type Slab struct {
	Column   int
	Top      int
	Pixels   []graphics.Color
	Distance float64
	Hit      raycast.Intersect
}

// WallProjector turns one ray per screen column into a textured wall slab
// and records the hit distance in the z-buffer.
type WallProjector struct {
	Projection float64
	Ray        raycast.Options
	Palette    Palette

	pool *core.WorkerPool
}

// NewWallProjector creates a projector. A non-positive projection falls
// back to DefaultProjection.
func NewWallProjector(projection float64, ray raycast.Options, palette Palette) *WallProjector {
	if !(projection > 0) {
		projection = DefaultProjection
	}
	return &WallProjector{Projection: projection, Ray: ray, Palette: palette}
}

// UsePool spreads ProjectAll over the pool's workers. Columns write disjoint
// framebuffer and z-buffer slots, so output does not depend on scheduling.
func (wp *WallProjector) UsePool(pool *core.WorkerPool) {
	wp.pool = pool
}

// ProjectColumn projects a single column without touching any framebuffer.
func (wp *WallProjector) ProjectColumn(v View, column int) (Slab, error) {
	span, err := wp.span(v, column)
	slab := Slab{
		Column:   column,
		Top:      span.top,
		Distance: span.depth(),
		Hit:      span.hit,
	}
	if span.bottom > span.top {
		slab.Pixels = make([]graphics.Color, span.bottom-span.top)
		for y := span.top; y < span.bottom; y++ {
			slab.Pixels[y-span.top] = span.at(y)
		}
	}
	return slab, err
}

// ProjectAll paints every column of fb and fills zbuf. Columns whose ray
// failed keep the background, hold +Inf depth and contribute one error each.
func (wp *WallProjector) ProjectAll(fb *graphics.Framebuffer, v View, zbuf ZBuffer) []error {
	if len(zbuf) != fb.Width {
		return []error{fmt.Errorf("%w: %d columns, %d wide", ErrZBufferSize, len(zbuf), fb.Width)}
	}
	v.Width, v.Height = fb.Width, fb.Height

	failures := make([]error, fb.Width)
	project := func(x int) {
		span, err := wp.span(v, x)
		if err != nil {
			failures[x] = &ColumnError{Column: x, Err: err}
		}
		zbuf[x] = span.depth()
		for y := span.top; y < span.bottom; y++ {
			fb.Buffer[y*fb.Width+x] = span.at(y)
		}
	}

	if wp.pool != nil {
		wp.pool.ParallelFor(0, fb.Width, project)
	} else {
		for x := 0; x < fb.Width; x++ {
			project(x)
		}
	}

	var errs []error
	for _, err := range failures {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// columnSpan is everything needed to color the rows of one column.
type columnSpan struct {
	hit         raycast.Intersect
	top, bottom int     // clipped rows, bottom exclusive
	slabTop     float64 // unclipped top edge
	slab        float64
	tex         *graphics.Texture
	flat        graphics.Color
}

func (s *columnSpan) depth() float64 {
	if !s.hit.Hit {
		return math.Inf(1)
	}
	return s.hit.Distance
}

func (s *columnSpan) at(y int) graphics.Color {
	if s.tex == nil {
		return s.flat
	}
	ty := (float64(y) - s.slabTop) / s.slab * float64(s.tex.Height)
	tx := s.hit.Bx * float64(s.tex.Width)
	return s.tex.Sample(tx, ty)
}

func (wp *WallProjector) span(v View, column int) (columnSpan, error) {
	angle := v.Pose.RayAngle(column, v.Width)
	hit, err := raycast.Cast(v.Grid, v.Pose.Position, angle, wp.Ray)
	s := columnSpan{hit: hit}
	if err != nil || !hit.Hit {
		return s, err
	}
	if !(hit.Distance > 0) {
		s.hit = raycast.NoHit
		return s, fmt.Errorf("%w: %v", ErrDegenerateSlab, hit.Distance)
	}

	half := float64(v.Height) / 2
	s.slab = half / hit.Distance * wp.Projection
	s.slabTop = half - s.slab/2
	s.top = clampRow(s.slabTop, v.Height)
	s.bottom = clampRow(half+s.slab/2, v.Height)
	s.flat = wp.Palette.CellColor(hit.Cell)
	if slot, ok := wallSlot(hit.Cell); ok {
		if tex, ok := v.Textures.Get(slot); ok {
			s.tex = tex
		}
	}
	return s, nil
}

// clampRow truncates a row edge into [0, height].
func clampRow(v float64, height int) int {
	if !(v > 0) {
		return 0
	}
	if v >= float64(height) {
		return height
	}
	return int(v)
}
