// Package raycast finds the first solid cell a ray enters on a world.Grid.
package raycast

import (
	"errors"
	"fmt"
	"math"

	"raystein/internal/world"
)

var (
	ErrOutOfBounds = errors.New("ray origin is outside the grid")
	ErrOriginSolid = errors.New("ray origin is inside a solid cell")
	ErrBadAngle    = errors.New("ray angle is not finite")
	ErrUnknownMode = errors.New("unknown ray mode")
)

// DefaultMaxDistance bounds every ray when Options.MaxDistance is unset.
const DefaultMaxDistance = 4000.0

// minHitDistance is the closest a hit is ever reported, the first sample of a
// unit march.
const minHitDistance = 1.0

// Mode selects how a ray walks the grid.
type Mode uint8

const (
	// ModeMarch advances in fixed steps and infers the struck face from
	// where the hit point lies inside the cell.
	ModeMarch Mode = iota
	// ModeTraverse steps from one cell boundary to the next and records the
	// axis it crossed.
	ModeTraverse
)

func (m Mode) String() string {
	switch m {
	case ModeMarch:
		return "march"
	case ModeTraverse:
		return "traverse"
	}
	return fmt.Sprintf("Mode(%d)", uint8(m))
}

// ParseMode maps a config string onto a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "march":
		return ModeMarch, nil
	case "traverse":
		return ModeTraverse, nil
	}
	return ModeMarch, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Axis records which family of grid lines a ray crossed into its hit cell.
type Axis uint8

const (
	AxisNone Axis = iota
	AxisX         // crossed a vertical line, the face runs along Y
	AxisY         // crossed a horizontal line, the face runs along X
)

// Intersect is the result of one ray.
type Intersect struct {
	Distance float64 // pixel units travelled, +Inf when nothing was hit
	Cell     world.Cell
	Bx       float64 // offset along the struck face in [0,1)
	Hit      bool
	Axis     Axis // AxisNone for marched rays
	Point    world.Vec2
}

// NoHit is returned when a ray leaves the grid or exceeds its maximum
// distance. Its infinite distance never occludes anything.
var NoHit = Intersect{Distance: math.Inf(1), Cell: world.Empty}

// Options tunes a cast. The zero value marches in unit steps up to
// DefaultMaxDistance.
type Options struct {
	MaxDistance float64
	Mode        Mode
	Step        float64 // march increment, 1 pixel unit when unset
}

func (o Options) maxDistance() float64 {
	if o.MaxDistance > 0 {
		return o.MaxDistance
	}
	return DefaultMaxDistance
}

func (o Options) step() float64 {
	if o.Step > 0 {
		return o.Step
	}
	return 1
}

// Cast fires a ray from origin along angle. It never panics: a bad origin or
// angle yields NoHit together with an error describing the violation.
func Cast(grid *world.Grid, origin world.Vec2, angle float64, opts Options) (Intersect, error) {
	if math.IsNaN(angle) || math.IsInf(angle, 0) {
		return NoHit, fmt.Errorf("%w: %v", ErrBadAngle, angle)
	}
	cell, ok := grid.CellAt(origin.X, origin.Y)
	if !ok {
		return NoHit, fmt.Errorf("%w: (%.2f, %.2f)", ErrOutOfBounds, origin.X, origin.Y)
	}
	if cell.IsSolid() {
		return NoHit, fmt.Errorf("%w: %s at (%.2f, %.2f)", ErrOriginSolid, cell, origin.X, origin.Y)
	}

	switch opts.Mode {
	case ModeTraverse:
		return traverse(grid, origin, angle, opts.maxDistance()), nil
	default:
		return march(grid, origin, angle, opts.maxDistance(), opts.step()), nil
	}
}

// march advances the ray in fixed increments, testing the cell under each
// sample point.
func march(grid *world.Grid, origin world.Vec2, angle, maxDistance, step float64) Intersect {
	dirX, dirY := math.Cos(angle), math.Sin(angle)
	cw, ch := grid.CellSize()

	for distance := step; distance <= maxDistance; distance += step {
		x := origin.X + dirX*distance
		y := origin.Y + dirY*distance
		cell, ok := grid.CellAt(x, y)
		if !ok {
			// Left through a hole in the border.
			return NoHit
		}
		if !cell.IsSolid() {
			continue
		}

		col, row := grid.CellIndex(x, y)
		hitX := x - float64(col)*cw
		hitY := y - float64(row)*ch
		var bx float64
		if hitX > 1 && hitX < cw-1 {
			bx = hitX / cw
		} else {
			bx = hitY / ch
		}
		return Intersect{
			Distance: distance,
			Cell:     cell,
			Bx:       unit(bx),
			Hit:      true,
			Point:    world.Vec2{X: x, Y: y},
		}
	}
	return NoHit
}

// traverse walks cell boundaries in pixel space, so non-square cells need no
// rescaling.
func traverse(grid *world.Grid, origin world.Vec2, angle, maxDistance float64) Intersect {
	dirX, dirY := math.Cos(angle), math.Sin(angle)
	cw, ch := grid.CellSize()
	col, row := grid.CellIndex(origin.X, origin.Y)

	stepX, nextX, deltaX := axisSetup(origin.X, dirX, col, cw)
	stepY, nextY, deltaY := axisSetup(origin.Y, dirY, row, ch)

	for {
		var distance float64
		var axis Axis
		if nextX < nextY {
			distance = nextX
			nextX += deltaX
			col += stepX
			axis = AxisX
		} else {
			distance = nextY
			nextY += deltaY
			row += stepY
			axis = AxisY
		}

		if distance > maxDistance || !grid.InBounds(col, row) {
			return NoHit
		}
		cell := grid.At(col, row)
		if !cell.IsSolid() {
			continue
		}

		x := origin.X + dirX*distance
		y := origin.Y + dirY*distance
		var bx float64
		if axis == AxisX {
			bx = (y - float64(row)*ch) / ch
		} else {
			bx = (x - float64(col)*cw) / cw
		}
		return Intersect{
			// An origin on a wall face is reported one march step away.
			Distance: math.Max(distance, minHitDistance),
			Cell:     cell,
			Bx:       unit(bx),
			Hit:      true,
			Axis:     axis,
			Point:    world.Vec2{X: x, Y: y},
		}
	}
}

// axisSetup returns the step direction, the ray distance to the first
// boundary and the ray distance between boundaries along one axis.
func axisSetup(pos, dir float64, index int, size float64) (step int, next, delta float64) {
	switch {
	case dir > 0:
		return 1, (float64(index+1)*size - pos) / dir, size / dir
	case dir < 0:
		return -1, (float64(index)*size - pos) / dir, -size / dir
	}
	return 0, math.Inf(1), math.Inf(1)
}

// unit clamps v into [0,1).
func unit(v float64) float64 {
	if !(v > 0) {
		return 0
	}
	if v >= 1 {
		return math.Nextafter(1, 0)
	}
	return v
}
