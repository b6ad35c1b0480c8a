// Package game wires the renderer, input, audio and game rules together.
package game

import (
	"fmt"
	"log"
	"time"

	"raystein/internal/config"
	"raystein/internal/graphics"
	"raystein/internal/render"
	"raystein/internal/threading/monitoring"
	"raystein/internal/world"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const alertLogInterval = 5 * time.Second

// Game implements ebiten.Game on top of a Session.
type Game struct {
	cfg      *config.Config
	session  *Session
	composer *render.Composer
	textures *graphics.TextureStore
	monitor  *monitoring.PerformanceMonitor
	input    *InputHandler
	reports  *ReportLogger

	fb     *graphics.Framebuffer
	pixels []byte

	showFPS    bool
	lastStatus render.Status
	lastAlert  time.Time
}

// NewGame creates the ebiten game for a loaded level. music may be nil.
func NewGame(cfg *config.Config, level *world.Level, textures *graphics.TextureStore, music Music) (*Game, error) {
	opts, err := render.OptionsFromConfig(cfg)
	if err != nil {
		return nil, fmt.Errorf("render options: %w", err)
	}

	monitor := monitoring.NewPerformanceMonitor()
	composer := render.NewComposer(opts)
	composer.SetMonitor(monitor)

	session := NewSession(cfg, level, music)
	session.SetMonitor(monitor)

	fbW, fbH := cfg.GetFramebufferSize()
	return &Game{
		cfg:        cfg,
		session:    session,
		composer:   composer,
		textures:   textures,
		monitor:    monitor,
		input:      NewInputHandler(),
		reports:    NewReportLogger(),
		fb:         graphics.NewFramebuffer(fbW, fbH),
		showFPS:    cfg.Display.ShowFPS,
		lastStatus: session.Status(),
	}, nil
}

// Session exposes the game state, e.g. for tests and alternative presenters.
func (g *Game) Session() *Session {
	return g.session
}

// Update handles all game logic updates for one frame
func (g *Game) Update() error {
	frameTimer := g.monitor.StartFrame()
	defer frameTimer.EndFrame()

	in := g.input.Poll()
	if in.Quit && g.session.Status() != render.Playing {
		return ebiten.Termination
	}
	if in.Quit {
		// Escape while playing goes back to the menu instead of quitting.
		in = Input{}
		g.session.ReturnToMenu()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showFPS = !g.showFPS
	}

	g.session.Update(in, time.Second/time.Duration(ebiten.TPS()))

	if status := g.session.Status(); status != g.lastStatus {
		g.onStatusChange(status)
		g.lastStatus = status
	}

	g.maybeLogAlerts()
	return nil
}

func (g *Game) onStatusChange(status render.Status) {
	if status == render.Playing {
		ebiten.SetCursorMode(ebiten.CursorModeCaptured)
	} else {
		ebiten.SetCursorMode(ebiten.CursorModeVisible)
	}
	g.input.ResetCursor()
}

// Draw renders the frame into the framebuffer and presents it.
func (g *Game) Draw(screen *ebiten.Image) {
	report := g.composer.Render(g.fb, g.session.Frame(g.textures))
	g.reports.Observe(time.Now(), report)

	if g.session.TakeScreenshot() {
		g.saveScreenshot()
	}
	if g.showFPS {
		g.drawHUD()
	}

	g.pixels = g.fb.RGBA(g.pixels)
	screen.WritePixels(g.pixels)
}

// Layout returns the framebuffer size; ebiten scales it to the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	return g.fb.Width, g.fb.Height
}

// Close releases the render worker pool.
func (g *Game) Close() {
	g.composer.Close()
}

func (g *Game) drawHUD() {
	hits, attempts := g.textures.CacheStats()
	lines := hudLines(ebiten.ActualFPS(), ebiten.ActualTPS(), g.monitor.GetCurrentMetrics(), hits, attempts)
	for i, line := range lines {
		render.DrawCaption(g.fb, 8, 16+14*i, line)
	}
}

// hudLines formats the F3 overlay: frame rate and pass timings, then texture
// cache use.
func hudLines(fps, tps float64, m monitoring.Metrics, hits, attempts int) []string {
	return []string{
		fmt.Sprintf("FPS %.0f  TPS %.0f  ray %.1fms  sprite %.1fms",
			fps, tps, float64(m.RaycastTime.Microseconds())/1000, float64(m.SpriteTime.Microseconds())/1000),
		fmt.Sprintf("textures %d/%d cached", hits, attempts),
	}
}

func (g *Game) saveScreenshot() {
	path := fmt.Sprintf("screenshot_%s.bmp", time.Now().Format("20060102_150405"))
	if err := graphics.SaveBMP(path, g.fb); err != nil {
		log.Printf("Warning: screenshot failed: %v", err)
		return
	}
	log.Printf("Saved screenshot %s", path)
}

// maybeLogAlerts logs performance alerts, throttled.
func (g *Game) maybeLogAlerts() {
	now := time.Now()
	if !g.lastAlert.IsZero() && now.Sub(g.lastAlert) < alertLogInterval {
		return
	}
	alerts := g.monitor.CheckPerformanceAlerts()
	for _, a := range alerts {
		if a.Type == "low_fps" {
			log.Printf("Performance: %s (%.1f < %.0f)", a.Message, a.Value, a.Threshold)
		}
	}
	if len(alerts) > 0 {
		g.lastAlert = now
	}
}
