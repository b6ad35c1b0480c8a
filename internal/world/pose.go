package world

import "math"

// Vec2 is a point or direction in pixel space.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Pose is the player camera: position in pixel space, orientation and field
// of view in radians.
type Pose struct {
	Position    Vec2
	Orientation float64
	FOV         float64
}

// RayAngle returns the angle of ray i out of n, spread left to right across
// the field of view.
func (p Pose) RayAngle(i, n int) float64 {
	return p.Orientation - p.FOV/2 + p.FOV*(float64(i)/float64(n))
}

// Forward returns the unit vector the pose is facing.
func (p Pose) Forward() Vec2 {
	return Vec2{math.Cos(p.Orientation), math.Sin(p.Orientation)}
}

// Rotate returns the pose turned by delta radians.
func (p Pose) Rotate(delta float64) Pose {
	p.Orientation += delta
	return p
}

// Translate returns the pose moved by delta.
func (p Pose) Translate(delta Vec2) Pose {
	p.Position = p.Position.Add(delta)
	return p
}
