package collision

import (
	"testing"

	"raystein/internal/world"
)

func testGrid(t *testing.T) *world.Grid {
	t.Helper()
	P, H, V, E, S := world.PillarWall, world.HorizontalWall, world.VerticalWall, world.Empty, world.PlayerStart
	g, err := world.NewGridWithCellSize([][]world.Cell{
		{P, H, H, H, H, P},
		{V, S, E, V, E, V},
		{V, E, E, E, E, V},
		{P, H, H, H, H, P},
	}, 40, 20)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func newSystem(t *testing.T) *CollisionSystem {
	g := testGrid(t)
	w, h := g.CellSize()
	return NewCollisionSystem(g, w, h)
}

func TestCanMoveToTiles(t *testing.T) {
	cs := newSystem(t)
	cs.RegisterEntity(NewEntity("player", 60, 30, 8, 8, CollisionTypePlayer, false))

	tests := []struct {
		name string
		x, y float64
		want bool
	}{
		{"open cell", 90, 30, true},
		{"inside wall", 130, 30, false},
		{"box clips wall", 117, 30, false},
		{"box just clear of wall", 115, 30, true},
		{"outside grid", -10, 30, false},
		{"lower row", 130, 50, true},
	}
	for _, tt := range tests {
		if got := cs.CanMoveTo("player", tt.x, tt.y); got != tt.want {
			t.Errorf("%s: CanMoveTo(%v, %v) = %v, want %v", tt.name, tt.x, tt.y, got, tt.want)
		}
	}
	if cs.CanMoveTo("ghost", 60, 30) {
		t.Error("unknown entity should not move")
	}
}

func TestCanMoveToEntities(t *testing.T) {
	cs := newSystem(t)
	cs.RegisterEntity(NewEntity("a", 60, 50, 8, 8, CollisionTypeEnemy, true))
	cs.RegisterEntity(NewEntity("b", 100, 50, 8, 8, CollisionTypeEnemy, true))
	cs.RegisterEntity(NewEntity("player", 60, 30, 8, 8, CollisionTypePlayer, false))

	if cs.CanMoveTo("a", 95, 50) {
		t.Error("solid entity should block another")
	}
	if !cs.CanMoveTo("b", 60, 30) {
		t.Error("non-solid player should not block")
	}

	cs.UpdateEntity("a", 140, 50)
	if got := cs.GetEntityByID("a").BoundingBox.X; got != 140 {
		t.Errorf("UpdateEntity x = %v", got)
	}
	cs.UnregisterEntity("a")
	if cs.GetEntityByID("a") != nil {
		t.Error("entity should be removed")
	}
}

func TestGetNearbyEntitiesSorted(t *testing.T) {
	cs := newSystem(t)
	cs.RegisterEntity(NewEntity("player", 60, 30, 8, 8, CollisionTypePlayer, false))
	cs.RegisterEntity(NewEntity("far", 70, 30, 8, 8, CollisionTypeEnemy, true))
	cs.RegisterEntity(NewEntity("near", 64, 30, 8, 8, CollisionTypeEnemy, true))
	cs.RegisterEntity(NewEntity("out", 160, 30, 8, 8, CollisionTypeEnemy, true))

	got := cs.GetNearbyEntities(60, 30, 12, "player")
	if len(got) != 2 || got[0].ID != "near" || got[1].ID != "far" {
		ids := []string{}
		for _, e := range got {
			ids = append(ids, e.ID)
		}
		t.Errorf("nearby = %v, want [near far]", ids)
	}
}

func TestCheckLineOfSight(t *testing.T) {
	cs := newSystem(t)
	tests := []struct {
		name           string
		x1, y1, x2, y2 float64
		want           bool
	}{
		{"same cell", 50, 30, 70, 30, true},
		{"across open row", 50, 50, 190, 50, true},
		{"through wall cell", 60, 30, 190, 30, false},
		{"around corner", 60, 30, 90, 50, true},
		{"leaves grid", 60, 30, 60, -5, false},
		{"zero length", 60, 30, 60, 30, true},
	}
	for _, tt := range tests {
		if got := cs.CheckLineOfSight(tt.x1, tt.y1, tt.x2, tt.y2); got != tt.want {
			t.Errorf("%s: got %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestBoundingBox(t *testing.T) {
	a := NewBoundingBox(0, 0, 4, 4)
	b := NewBoundingBox(3, 0, 4, 4)
	c := NewBoundingBox(10, 0, 4, 4)
	if !a.Intersects(b) || a.Intersects(c) {
		t.Error("Intersects mismatch")
	}
	if !a.Contains(Point{X: 2, Y: -2}) || a.Contains(Point{X: 2.1, Y: 0}) {
		t.Error("Contains mismatch")
	}
	if a.Distance(c) != 10 || a.DistanceToPoint(Point{X: 3, Y: 4}) != 5 {
		t.Error("distance mismatch")
	}
}
