package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"sort"

	"raystein/internal/config"
	"raystein/internal/graphics"
	"raystein/internal/raycast"
	"raystein/internal/render"
	"raystein/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	windowWidth  = 1200
	windowHeight = 800
	sidebarWidth = 300
	padding      = 16
)

type levelInfo struct {
	Path  string
	Level *world.Level
	Err   error
}

type viewer struct {
	levels     []levelInfo
	levelIndex int
	sidebarTab int
	fanRays    bool
	topDown    *render.TopDown
	palette    render.Palette

	fb     *graphics.Framebuffer
	img    *ebiten.Image
	pixels []byte
	dirty  bool
}

const (
	tabInfo = iota
	tabLegend
)

func main() {
	ensureRuntimeCWD()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Printf("Warning: %v, using defaults", err)
		cfg = config.Default()
	}

	levels := loadLevels(cfg)
	mode, err := raycast.ParseMode(cfg.Render.RayMode)
	if err != nil {
		log.Printf("Warning: %v", err)
	}

	mapW := windowWidth - sidebarWidth - padding*3
	mapH := windowHeight - padding*2
	palette := render.PaletteFromConfig(cfg.Render)
	v := &viewer{
		levels:  levels,
		palette: palette,
		topDown: &render.TopDown{
			Palette: palette,
			FanRays: cfg.Render.FanRays,
			Ray:     raycast.Options{MaxDistance: cfg.Render.MaxRayDistance, Mode: mode},
		},
		fanRays: true,
		fb:      graphics.NewFramebuffer(mapW, mapH),
		img:     ebiten.NewImage(mapW, mapH),
		dirty:   true,
	}

	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("Raystein Level Viewer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}

func (v *viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		if v.sidebarTab == tabInfo {
			v.sidebarTab = tabLegend
		} else {
			v.sidebarTab = tabInfo
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		v.sidebarTab = tabInfo
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		v.sidebarTab = tabLegend
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.fanRays = !v.fanRays
		v.dirty = true
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyRight) || inpututil.IsKeyJustPressed(ebiten.KeyD) {
		if len(v.levels) > 0 {
			v.levelIndex = (v.levelIndex + 1) % len(v.levels)
			v.dirty = true
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) || inpututil.IsKeyJustPressed(ebiten.KeyA) {
		if len(v.levels) > 0 {
			v.levelIndex--
			if v.levelIndex < 0 {
				v.levelIndex = len(v.levels) - 1
			}
			v.dirty = true
		}
	}
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{15, 15, 22, 255})

	if len(v.levels) == 0 {
		ebitenutil.DebugPrintAt(screen, "no levels found under assets/levels", 16, 16)
		return
	}

	l := v.levels[v.levelIndex]
	if l.Err != nil {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("level %s failed to load: %v", l.Path, l.Err), 16, 16)
		return
	}

	if v.dirty {
		v.renderLevel(l.Level)
		v.dirty = false
	}

	mapX, mapY := padding, padding
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(mapX), float64(mapY))
	screen.DrawImage(v.img, op)
	drawRectBorder(screen, mapX, mapY, v.fb.Width, v.fb.Height, 2, color.RGBA{70, 70, 90, 255})
	drawMapHeader(screen, l, mapX, mapY)

	sidebarX := mapX + v.fb.Width + padding
	drawSidebar(screen, l, sidebarX, mapY, sidebarWidth, v.fb.Height, v.sidebarTab, v.palette)
}

func (v *viewer) Layout(_, _ int) (int, int) {
	return windowWidth, windowHeight
}

// renderLevel draws the level with the same top-down routine the game uses
// for its 2D mode and minimap, then uploads it.
func (v *viewer) renderLevel(level *world.Level) {
	v.fb.Fill(graphics.RGB(20, 20, 35))
	td := *v.topDown
	if !v.fanRays {
		td.FanRays = 0
	}
	for _, err := range td.Draw(v.fb, level.Grid, level.Start, level.Sprites, render.FitTransform(level.Grid, v.fb.Width, v.fb.Height)) {
		log.Printf("Warning: %v", err)
	}
	v.pixels = v.fb.RGBA(v.pixels)
	v.img.WritePixels(v.pixels)
}

func drawMapHeader(screen *ebiten.Image, l levelInfo, x, y int) {
	ebitenutil.DebugPrintAt(screen, filepath.Base(l.Path), x+12, y+8)
	ebitenutil.DebugPrintAt(screen, "Left/Right (or A/D) to switch levels, R rays, Esc to quit", x+12, y+24)
}

func drawSidebar(screen *ebiten.Image, l levelInfo, x, y, w, h int, tab int, palette render.Palette) {
	drawFilledRect(screen, x, y, w, h, color.RGBA{18, 18, 26, 255})
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})

	tabHeight := 24
	drawSidebarTabs(screen, x, y, w, tabHeight, tab)
	row := y + tabHeight + 12

	if tab == tabLegend {
		drawLegend(screen, x, row, palette)
		return
	}

	g := l.Level.Grid
	cw, ch := g.CellSize()
	_, _, hasGoal := g.Find(world.Goal)
	stats := []string{
		fmt.Sprintf("Cells: %dx%d", g.Cols(), g.Rows()),
		fmt.Sprintf("Cell size: %.1fx%.1f px", cw, ch),
		fmt.Sprintf("Sprites: %d", len(l.Level.Sprites)),
		fmt.Sprintf("Start: %.0f, %.0f", l.Level.Start.Position.X, l.Level.Start.Position.Y),
		fmt.Sprintf("Goal: %v", hasGoal),
	}
	for _, line := range stats {
		ebitenutil.DebugPrintAt(screen, line, x+12, row)
		row += 16
	}
}

func drawSidebarTabs(screen *ebiten.Image, x, y, w, h int, active int) {
	tabW := w / 2
	infoColor := color.RGBA{40, 40, 55, 255}
	legendColor := color.RGBA{40, 40, 55, 255}
	if active == tabInfo {
		infoColor = color.RGBA{70, 70, 95, 255}
	} else {
		legendColor = color.RGBA{70, 70, 95, 255}
	}
	drawFilledRect(screen, x, y, tabW, h, infoColor)
	drawFilledRect(screen, x+tabW, y, w-tabW, h, legendColor)
	drawRectBorder(screen, x, y, w, h, 2, color.RGBA{70, 70, 90, 255})
	ebitenutil.DebugPrintAt(screen, "Info (1)", x+10, y+6)
	ebitenutil.DebugPrintAt(screen, "Legend (2)", x+tabW+10, y+6)
}

func drawLegend(screen *ebiten.Image, x, y int, palette render.Palette) {
	cells := []world.Cell{world.Empty, world.PlayerStart, world.Goal, world.HorizontalWall, world.VerticalWall, world.PillarWall}
	for _, c := range cells {
		drawFilledRect(screen, x+12, y, 12, 12, palette.CellColor(c))
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("'%c'  %s", c.Glyph(), c), x+32, y-2)
		y += 18
	}
	drawFilledRect(screen, x+12, y, 12, 12, palette.Enemy)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("'%c'  sprite", world.GlyphSprite), x+32, y-2)
	y += 18
	drawFilledRect(screen, x+12, y, 12, 12, palette.Player)
	ebitenutil.DebugPrintAt(screen, "     player", x+32, y-2)
}

func loadLevels(cfg *config.Config) []levelInfo {
	paths, _ := filepath.Glob(filepath.Join(cfg.Assets.Dir, "levels", "*.txt"))
	if cfg.Assets.Level != "" {
		paths = append(paths, cfg.Assets.Level)
	}
	sort.Strings(paths)

	fbW, fbH := cfg.GetFramebufferSize()
	loader := world.NewLevelLoader(fbW, fbH, cfg.GetFOV())

	var levels []levelInfo
	seen := make(map[string]bool)
	for _, p := range paths {
		clean := filepath.Clean(p)
		if seen[clean] {
			continue
		}
		seen[clean] = true
		level, err := loader.LoadLevel(clean)
		levels = append(levels, levelInfo{Path: clean, Level: level, Err: err})
	}
	return levels
}

func drawFilledRect(screen *ebiten.Image, x, y, w, h int, clr color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func drawRectBorder(screen *ebiten.Image, x, y, w, h, thickness int, clr color.RGBA) {
	t := float32(thickness)
	fx := float32(x)
	fy := float32(y)
	fw := float32(w)
	fh := float32(h)
	vector.DrawFilledRect(screen, fx, fy, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy+fh-t, fw, t, clr, false)
	vector.DrawFilledRect(screen, fx, fy, t, fh, clr, false)
	vector.DrawFilledRect(screen, fx+fw-t, fy, t, fh, clr, false)
}

func ensureRuntimeCWD() {
	if _, err := os.Stat("config.yaml"); err == nil {
		return
	}
	exe, err := os.Executable()
	if err != nil {
		return
	}
	execDir := filepath.Dir(exe)
	_ = os.Chdir(execDir)
}
