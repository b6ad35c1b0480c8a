package raycast

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"raystein/internal/world"
)

const (
	P = world.PillarWall
	H = world.HorizontalWall
	V = world.VerticalWall
	E = world.Empty
	S = world.PlayerStart
)

func ring(t *testing.T, cellSize float64) *world.Grid {
	t.Helper()
	g, err := world.NewGridWithCellSize([][]world.Cell{
		{P, H, P},
		{V, S, V},
		{P, H, P},
	}, cellSize, cellSize)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestCastRingScenarios(t *testing.T) {
	g := ring(t, 100)
	center := world.Vec2{X: 150, Y: 150}

	for _, mode := range []Mode{ModeMarch, ModeTraverse} {
		t.Run(mode.String(), func(t *testing.T) {
			hit, err := Cast(g, center, 0, Options{Mode: mode})
			if err != nil {
				t.Fatalf("Cast: %v", err)
			}
			if !hit.Hit || hit.Cell != V {
				t.Errorf("facing right hit %v, want %v", hit.Cell, V)
			}
			if math.Abs(hit.Distance-50) > 1 {
				t.Errorf("facing right distance = %v, want about 50", hit.Distance)
			}

			hit, err = Cast(g, center, math.Pi/2, Options{Mode: mode})
			if err != nil {
				t.Fatalf("Cast: %v", err)
			}
			if hit.Cell != H {
				t.Errorf("facing down hit %v, want %v", hit.Cell, H)
			}
			if hit.Point.Y < 199 {
				t.Errorf("facing down hit point %v should be on the bottom wall", hit.Point)
			}
		})
	}
}

func TestTraverseRecordsAxis(t *testing.T) {
	g := ring(t, 64)
	c := world.Vec2{X: 96, Y: 96}

	hit, _ := Cast(g, c, 0, Options{Mode: ModeTraverse})
	if hit.Axis != AxisX {
		t.Errorf("horizontal ray axis = %v, want AxisX", hit.Axis)
	}
	if math.Abs(hit.Bx-0.5) > 1e-9 {
		t.Errorf("horizontal ray bx = %v, want 0.5", hit.Bx)
	}

	hit, _ = Cast(g, c, -math.Pi/2, Options{Mode: ModeTraverse})
	if hit.Axis != AxisY || hit.Cell != H {
		t.Errorf("upward ray axis = %v cell = %v", hit.Axis, hit.Cell)
	}
}

func TestCastFromWallFace(t *testing.T) {
	g := ring(t, 100)
	origin := world.Vec2{X: 100, Y: 150}

	for _, mode := range []Mode{ModeMarch, ModeTraverse} {
		t.Run(mode.String(), func(t *testing.T) {
			hit, err := Cast(g, origin, math.Pi, Options{Mode: mode})
			if err != nil {
				t.Fatalf("Cast: %v", err)
			}
			if !hit.Hit || hit.Cell != V {
				t.Fatalf("hit %+v, want %v", hit, V)
			}
			if hit.Distance != 1 || math.Signbit(hit.Distance) {
				t.Errorf("distance = %v, want 1", hit.Distance)
			}
		})
	}
}

func TestCastPropertiesInsideRing(t *testing.T) {
	g, err := world.NewGridWithCellSize([][]world.Cell{
		{P, H, H, H, P},
		{V, E, E, E, V},
		{V, E, S, E, V},
		{V, E, E, E, V},
		{P, H, H, H, P},
	}, 37, 23)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(7))

	for _, mode := range []Mode{ModeMarch, ModeTraverse} {
		for i := 0; i < 2000; i++ {
			origin := world.Vec2{
				X: 37 + rng.Float64()*37*3,
				Y: 23 + rng.Float64()*23*3,
			}
			if c, _ := g.CellAt(origin.X, origin.Y); c.IsSolid() {
				continue
			}
			angle := rng.Float64()*4*math.Pi - 2*math.Pi
			hit, err := Cast(g, origin, angle, Options{Mode: mode})
			if err != nil {
				t.Fatalf("%v: Cast(%v, %v): %v", mode, origin, angle, err)
			}
			if !hit.Hit || !hit.Cell.IsSolid() {
				t.Fatalf("%v: ray from %v at %v did not hit a wall", mode, origin, angle)
			}
			if !(hit.Distance > 0) {
				t.Fatalf("%v: distance = %v", mode, hit.Distance)
			}
			if hit.Bx < 0 || hit.Bx >= 1 {
				t.Fatalf("%v: bx = %v out of [0,1)", mode, hit.Bx)
			}
		}
	}
}

func TestCastTerminatesThroughHole(t *testing.T) {
	g, _ := world.NewGridWithCellSize([][]world.Cell{
		{P, H, P},
		{V, S, E},
		{P, H, P},
	}, 10, 10)

	for _, mode := range []Mode{ModeMarch, ModeTraverse} {
		hit, err := Cast(g, world.Vec2{X: 15, Y: 15}, 0, Options{Mode: mode, MaxDistance: 1e6})
		if err != nil {
			t.Fatalf("%v: %v", mode, err)
		}
		if hit.Hit || !math.IsInf(hit.Distance, 1) {
			t.Errorf("%v: ray through hole = %+v, want NoHit", mode, hit)
		}
	}
}

func TestCastMaxDistance(t *testing.T) {
	g := ring(t, 1000)
	for _, mode := range []Mode{ModeMarch, ModeTraverse} {
		hit, _ := Cast(g, world.Vec2{X: 1500, Y: 1500}, 0, Options{Mode: mode, MaxDistance: 100})
		if hit.Hit {
			t.Errorf("%v: hit beyond max distance: %+v", mode, hit)
		}
	}
}

func TestCastPreconditions(t *testing.T) {
	g := ring(t, 10)
	tests := []struct {
		name   string
		origin world.Vec2
		angle  float64
		want   error
	}{
		{"outside", world.Vec2{X: -1, Y: 5}, 0, ErrOutOfBounds},
		{"far outside", world.Vec2{X: 500, Y: 5}, 0, ErrOutOfBounds},
		{"solid", world.Vec2{X: 5, Y: 5}, 0, ErrOriginSolid},
		{"nan angle", world.Vec2{X: 15, Y: 15}, math.NaN(), ErrBadAngle},
		{"nan origin", world.Vec2{X: math.NaN(), Y: 15}, 0, ErrOutOfBounds},
	}
	for _, tt := range tests {
		hit, err := Cast(g, tt.origin, tt.angle, Options{})
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: err = %v, want %v", tt.name, err, tt.want)
		}
		if hit.Hit {
			t.Errorf("%s: expected NoHit, got %+v", tt.name, hit)
		}
	}
}

func TestParseMode(t *testing.T) {
	if m, err := ParseMode("traverse"); err != nil || m != ModeTraverse {
		t.Errorf("ParseMode(traverse) = %v, %v", m, err)
	}
	if m, err := ParseMode(""); err != nil || m != ModeMarch {
		t.Errorf("ParseMode(\"\") = %v, %v", m, err)
	}
	if _, err := ParseMode("dda"); !errors.Is(err, ErrUnknownMode) {
		t.Errorf("ParseMode(dda) err = %v", err)
	}
}

func TestMarchBxHeuristic(t *testing.T) {
	g := ring(t, 100)
	// Hits the right wall at x=200 where hitX is 0, so bx comes from hitY.
	hit, _ := Cast(g, world.Vec2{X: 150, Y: 130}, 0, Options{})
	if math.Abs(hit.Bx-0.3) > 1e-9 {
		t.Errorf("bx = %v, want 0.3", hit.Bx)
	}
}
