// Package render turns a grid, a pose and a texture store into a finished
// framebuffer: background, walls, sprites and overlays, in that order.
package render

import (
	"errors"
	"fmt"
	"time"

	"raystein/internal/config"
	"raystein/internal/graphics"
	"raystein/internal/raycast"
	"raystein/internal/threading/core"
	"raystein/internal/threading/monitoring"
	"raystein/internal/world"
)

var ErrNoGrid = errors.New("frame has no grid")

// Status selects what a frame shows. Only Playing renders the scene; every
// other status shows its full-screen image.
type Status uint8

const (
	SplashScreen Status = iota
	MainMenu
	Playing
	Lost
	Won
)

var statusNames = [...]string{
	SplashScreen: "splash",
	MainMenu:     "main menu",
	Playing:      "playing",
	Lost:         "lost",
	Won:          "won",
}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("Status(%d)", uint8(s))
}

// ScreenSlot returns the texture store screen for a non-playing status.
func (s Status) ScreenSlot() (string, bool) {
	switch s {
	case SplashScreen:
		return graphics.ScreenSplash, true
	case MainMenu:
		return graphics.ScreenMenu, true
	case Lost:
		return graphics.ScreenLost, true
	case Won:
		return graphics.ScreenWon, true
	}
	return "", false
}

// screenCaptions are drawn when a status screen has no image.
var screenCaptions = map[Status]string{
	SplashScreen: "RAYSTEIN\n\npress any key",
	MainMenu:     "MAIN MENU\n\nENTER  play\nM      toggle map\nESC    quit",
	Lost:         "CAUGHT\n\nENTER  back to menu",
	Won:          "YOU ESCAPED\n\nENTER  back to menu",
}

// Frame is the complete input of one render call.
type Frame struct {
	Status   Status
	Grid     *world.Grid
	Pose     world.Pose
	Sprites  []world.Vec2
	Textures *graphics.TextureStore
	Elapsed  time.Duration // drives animated screens
	Phase    float64       // celestial phase, clamped to [0,1]
	TopDown  bool          // full-screen 2D map instead of the 3D view
}

// FrameReport summarizes a render. Errors are internal precondition
// failures that were contained; the frame was still fully drawn.
type FrameReport struct {
	Status        Status
	Errors        []error
	SpriteColumns int
}

// Err joins every contained error, or returns nil.
func (r FrameReport) Err() error {
	return errors.Join(r.Errors...)
}

// Options configures a Composer.
type Options struct {
	Projection        float64
	Ray               raycast.Options
	SpriteScale       float64
	MinSpriteDistance float64
	Palette           Palette
	FanRays           int
	Minimap           MinimapOptions
	Celestial         bool
	CelestialRadius   int
	Workers           int
}

// OptionsFromConfig converts the render section of cfg.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	rc := cfg.Render
	mode, err := raycast.ParseMode(rc.RayMode)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Projection:        cfg.ProjectionConstant(),
		Ray:               raycast.Options{MaxDistance: rc.MaxRayDistance, Mode: mode},
		SpriteScale:       cfg.SpriteScaleFor(rc.Minimap.Enabled),
		MinSpriteDistance: rc.MinSpriteDistance,
		Palette:           PaletteFromConfig(rc),
		FanRays:           rc.FanRays,
		Minimap: MinimapOptions{
			Enabled: rc.Minimap.Enabled,
			Scale:   rc.Minimap.Scale,
			Margin:  rc.Minimap.Margin,
		},
		Celestial:       rc.Celestial.Enabled,
		CelestialRadius: rc.Celestial.Radius,
		Workers:         rc.Workers,
	}, nil
}

// Composer runs the per-frame pipeline. It keeps a z-buffer and the
// background cache between frames; neither changes what a frame looks like.
// A Composer is not safe for concurrent Render calls.
type Composer struct {
	walls      *WallProjector
	sprites    *SpriteCompositor
	topDown    *TopDown
	background *Background
	celestial  Celestial
	opts       Options
	zbuf       ZBuffer
	pool       *core.WorkerPool
	monitor    *monitoring.PerformanceMonitor
}

// NewComposer builds a composer. With more than one worker the wall pass
// runs on a worker pool; call Close to stop it.
func NewComposer(opts Options) *Composer {
	c := &Composer{
		walls:      NewWallProjector(opts.Projection, opts.Ray, opts.Palette),
		sprites:    NewSpriteCompositor(opts.SpriteScale, opts.MinSpriteDistance),
		topDown:    &TopDown{Palette: opts.Palette, FanRays: opts.FanRays, Ray: opts.Ray},
		background: NewBackground(opts.Palette),
		celestial:  Celestial{Radius: opts.CelestialRadius, Color: opts.Palette.Celestial},
		opts:       opts,
	}
	if opts.Workers > 1 {
		c.pool = core.NewWorkerPool(opts.Workers)
		c.pool.Start()
		c.walls.UsePool(c.pool)
	}
	return c
}

// SetMonitor reports pass timings to pm.
func (c *Composer) SetMonitor(pm *monitoring.PerformanceMonitor) {
	c.monitor = pm
}

// Close stops the worker pool, if any.
func (c *Composer) Close() {
	if c.pool != nil {
		c.pool.Stop()
	}
}

// ZBuffer returns the depths of the last 3D frame.
func (c *Composer) ZBuffer() ZBuffer {
	return c.zbuf
}

// Render draws f into fb.
func (c *Composer) Render(fb *graphics.Framebuffer, f Frame) FrameReport {
	report := FrameReport{Status: f.Status}

	if f.Status != Playing {
		c.renderScreen(fb, f)
		return report
	}
	if f.Grid == nil {
		fb.Fill(graphics.ColorBlack)
		report.Errors = append(report.Errors, ErrNoGrid)
		return report
	}

	if f.TopDown {
		fb.Fill(c.opts.Palette.Empty)
		report.Errors = append(report.Errors, c.topDown.Draw(fb, f.Grid, f.Pose, f.Sprites, FitTransform(f.Grid, fb.Width, fb.Height))...)
		return report
	}

	if err := c.background.Restore(fb); err != nil {
		report.Errors = append(report.Errors, err)
	}
	if c.opts.Celestial {
		c.celestial.Draw(fb, f.Phase)
	}

	if len(c.zbuf) != fb.Width {
		c.zbuf = NewZBuffer(fb.Width)
	} else {
		c.zbuf.Reset()
	}
	view := View{Grid: f.Grid, Pose: f.Pose, Textures: f.Textures, Width: fb.Width, Height: fb.Height}

	// Walls must finish before sprites read the z-buffer.
	var rt *monitoring.RaycastTimer
	if c.monitor != nil {
		rt = c.monitor.StartRaycast()
	}
	report.Errors = append(report.Errors, c.walls.ProjectAll(fb, view, c.zbuf)...)
	if rt != nil {
		rt.EndRaycast()
	}

	drawSprites := func() {
		report.SpriteColumns = c.sprites.Draw(fb, f.Pose, f.Sprites, c.spriteTexture(f.Textures), c.zbuf)
	}
	if c.monitor != nil {
		c.monitor.ProfiledFunction("sprite_render", drawSprites)
		c.monitor.RecordSprites(report.SpriteColumns)
	} else {
		drawSprites()
	}

	if c.opts.Minimap.Enabled {
		report.Errors = append(report.Errors, c.drawMinimap(fb, f)...)
	}
	if c.monitor != nil {
		c.monitor.RecordFrameErrors(len(report.Errors))
	}
	return report
}

func (c *Composer) spriteTexture(ts *graphics.TextureStore) *graphics.Texture {
	if tex, ok := ts.Get(graphics.SlotEnemy); ok {
		return tex
	}
	return graphics.NewSolidTexture(16, 16, c.opts.Palette.Enemy)
}

func (c *Composer) drawMinimap(fb *graphics.Framebuffer, f Frame) []error {
	t, rect := c.opts.Minimap.MinimapTransform(f.Grid, fb.Width)
	fb.FillRect(rect[0]-1, rect[1]-1, rect[2]+2, rect[3]+2, graphics.ColorBlack)
	return c.topDown.Draw(fb, f.Grid, f.Pose, f.Sprites, t)
}

// renderScreen shows the status image for f.Elapsed, or a captioned black
// screen when none is loaded.
func (c *Composer) renderScreen(fb *graphics.Framebuffer, f Frame) {
	if slot, ok := f.Status.ScreenSlot(); ok {
		if anim, ok := f.Textures.Screen(slot); ok {
			fb.BlitTexture(anim.FrameAt(f.Elapsed))
			return
		}
	}
	fb.Fill(graphics.ColorBlack)
	caption := screenCaptions[f.Status]
	x := (fb.Width - graphics.TextWidth(caption)) / 2
	DrawCaption(fb, max(x, 0), fb.Height/2-20, caption)
}

// DrawCaption writes white text onto fb.
func DrawCaption(fb *graphics.Framebuffer, x, y int, text string) {
	graphics.DrawText(fb, x, y, text, graphics.ColorDefault)
}
