package game

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"raystein/internal/config"
	"raystein/internal/graphics"
	"raystein/internal/threading/monitoring"
)

func writePNG(t *testing.T, path string, c color.Color) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			img.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestLoadTextures(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "wall.png"), color.RGBA{R: 10, G: 20, B: 30, A: 255})
	writePNG(t, filepath.Join(dir, "won.png"), color.RGBA{G: 255, A: 255})

	cfg := config.Default()
	cfg.Assets.Dir = dir
	cfg.Assets.Textures = map[string]string{
		graphics.SlotHorizontalWall: "wall.png",
		graphics.SlotEnemy:          "missing.png",
	}
	cfg.Assets.Screens = map[string]config.ScreenConfig{
		graphics.ScreenWon:  {Frames: []string{"won.png", "won_missing.png"}, PeriodMS: 100},
		graphics.ScreenLost: {Frames: []string{"lost_missing.png"}, PeriodMS: 100},
	}

	ts := LoadTextures(cfg)

	wall, ok := ts.Get(graphics.SlotHorizontalWall)
	if !ok || wall.At(0, 0) != graphics.RGB(10, 20, 30) {
		t.Errorf("wall texture not loaded: %v", ok)
	}
	if _, ok := ts.Get(graphics.SlotEnemy); !ok {
		t.Error("missing enemy texture should be replaced by a placeholder")
	}
	won, ok := ts.Screen(graphics.ScreenWon)
	if !ok || won.Len() != 1 {
		t.Error("won screen should keep its one existing frame")
	}
	if _, ok := ts.Screen(graphics.ScreenLost); ok {
		t.Error("screen without frames on disk should be absent")
	}
}

func TestSharedTextureShowsOnHUD(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "wall.png"), color.RGBA{R: 90, A: 255})

	cfg := config.Default()
	cfg.Assets.Dir = dir
	cfg.Assets.Textures = map[string]string{
		graphics.SlotHorizontalWall: "wall.png",
		graphics.SlotVerticalWall:   "wall.png",
	}
	cfg.Assets.Screens = nil

	ts := LoadTextures(cfg)
	hits, attempts := ts.CacheStats()
	if hits != 1 || attempts != 2 {
		t.Fatalf("cache stats = %d/%d, want 1/2", hits, attempts)
	}

	lines := hudLines(60, 60, monitoring.Metrics{RaycastTime: 1500 * time.Microsecond}, hits, attempts)
	if len(lines) != 2 {
		t.Fatalf("hud lines = %q", lines)
	}
	if !strings.Contains(lines[0], "ray 1.5ms") {
		t.Errorf("timing line = %q", lines[0])
	}
	if lines[1] != "textures 1/2 cached" {
		t.Errorf("cache line = %q", lines[1])
	}
}
