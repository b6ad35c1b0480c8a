package world

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testLevel = `
# comment lines are ignored
+---+
|p b|
|  g|
+---+
`

func TestLevelLoader_ParseLevel(t *testing.T) {
	ll := NewLevelLoader(500, 400, 1.5)
	level, err := ll.ParseLevel(strings.NewReader(testLevel))
	if err != nil {
		t.Fatalf("ParseLevel: %v", err)
	}

	g := level.Grid
	if g.Cols() != 5 || g.Rows() != 4 {
		t.Fatalf("grid = %dx%d, want 5x4", g.Cols(), g.Rows())
	}
	if w, h := g.CellSize(); w != 100 || h != 100 {
		t.Errorf("cell size = %vx%v, want 100x100", w, h)
	}

	if got := g.At(0, 0); got != PillarWall {
		t.Errorf("At(0,0) = %v, want pillar", got)
	}
	if got := g.At(1, 0); got != HorizontalWall {
		t.Errorf("At(1,0) = %v, want horizontal wall", got)
	}
	if got := g.At(0, 1); got != VerticalWall {
		t.Errorf("At(0,1) = %v, want vertical wall", got)
	}
	if got := g.At(3, 2); got != Goal {
		t.Errorf("At(3,2) = %v, want goal", got)
	}
	if got := g.At(3, 1); got != Empty {
		t.Errorf("sprite cell should be empty, got %v", got)
	}

	wantStart := Vec2{150, 150}
	if level.Start.Position != wantStart {
		t.Errorf("start = %+v, want %+v", level.Start.Position, wantStart)
	}
	if level.Start.FOV != 1.5 || level.Start.Orientation != 0 {
		t.Errorf("start pose = %+v", level.Start)
	}

	if len(level.Sprites) != 1 || level.Sprites[0] != (Vec2{350, 150}) {
		t.Errorf("sprites = %+v", level.Sprites)
	}
}

func TestLevelLoader_Errors(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  error
	}{
		{"empty", "\n\n# only comments\n", ErrEmptyLevel},
		{"ragged", "+--+\n|p|\n+--+\n", ErrRaggedGrid},
		{"unknown glyph", "+--+\n|pX|\n+--+\n", ErrUnknownGlyph},
		{"no start", "+--+\n|  |\n+--+\n", ErrNoPlayerStart},
		{"two starts", "+---+\n|p p|\n+---+\n", ErrMultipleStarts},
		{"start on border", "p--+\n|  |\n+--+\n", ErrStartOutsideWall},
	}

	ll := NewLevelLoader(100, 100, 1)
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ll.ParseLevel(strings.NewReader(tc.level))
			if !errors.Is(err, tc.want) {
				t.Errorf("error = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestLevelLoader_UnknownGlyphsListed(t *testing.T) {
	ll := NewLevelLoader(100, 100, 1)
	_, err := ll.ParseLevel(strings.NewReader("+--+\n|pZ|\n|Q |\n+--+\n"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "'Q'") || !strings.Contains(err.Error(), "'Z'") {
		t.Errorf("error %q should list both glyphs", err)
	}
}

func TestLevelLoader_LoadLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.txt")
	if err := os.WriteFile(path, []byte(testLevel), 0o644); err != nil {
		t.Fatalf("write level: %v", err)
	}

	level, err := NewLevelLoader(500, 400, 1).LoadLevel(path)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	if level.Grid.Rows() != 4 {
		t.Errorf("rows = %d", level.Grid.Rows())
	}

	if _, err := NewLevelLoader(500, 400, 1).LoadLevel(filepath.Join(dir, "missing.txt")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v", err)
	}
}
