// Package termview presents the game in a terminal. Each character cell
// shows two framebuffer pixels using an upper half block with separate
// foreground and background colours.
package termview

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"

	"raystein/internal/config"
	"raystein/internal/game"
	"raystein/internal/graphics"
	"raystein/internal/render"
	"raystein/internal/world"
)

const (
	halfBlock = '▀'
	// Terminals send no key-up events, so a movement key counts as held
	// for this many ticks after its last (auto-repeated) press.
	holdTicks = 6
)

type heldKey int

const (
	keyForward heldKey = iota
	keyBackward
	keyLeft
	keyRight
	heldKeyCount
)

// View drives a Session from tcell events and draws it to a tcell screen.
type View struct {
	screen   tcell.Screen
	session  *game.Session
	composer *render.Composer
	textures *graphics.TextureStore
	reports  *game.ReportLogger
	fb       *graphics.Framebuffer
	tick     time.Duration

	held    [heldKeyCount]int
	pending game.Input
	quit    bool
}

// NewView creates a view on an initialized screen.
func NewView(screen tcell.Screen, session *game.Session, composer *render.Composer, textures *graphics.TextureStore, tps int) *View {
	if tps <= 0 {
		tps = 60
	}
	v := &View{
		screen:   screen,
		session:  session,
		composer: composer,
		textures: textures,
		reports:  game.NewReportLogger(),
		tick:     time.Second / time.Duration(tps),
	}
	v.resize()
	return v
}

// Run opens the terminal, plays until the user quits or ctx is done, and
// restores the terminal.
func Run(ctx context.Context, cfg *config.Config, level *world.Level, textures *graphics.TextureStore, music game.Music) error {
	opts, err := render.OptionsFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("render options: %w", err)
	}
	// The minimap is unreadable at terminal resolution.
	opts.Minimap.Enabled = false

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	composer := render.NewComposer(opts)
	defer composer.Close()

	v := NewView(screen, game.NewSession(cfg, level, music), composer, textures, cfg.Display.TPS)
	return v.Loop(ctx)
}

// Loop processes events and ticks until quit.
func (v *View) Loop(ctx context.Context) error {
	ticker := time.NewTicker(v.tick)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-eventChan:
			v.HandleEvent(ev)
			if v.quit {
				return nil
			}
		case <-ticker.C:
			v.Step()
		}
	}
}

// HandleEvent folds one terminal event into the next tick's input.
func (v *View) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.resize()
		v.screen.Sync()
	case *tcell.EventKey:
		v.handleKey(ev)
	}
}

func (v *View) handleKey(ev *tcell.EventKey) {
	v.pending.AnyKey = true

	switch ev.Key() {
	case tcell.KeyCtrlC:
		v.quit = true
	case tcell.KeyEscape:
		if v.session.Status() == render.Playing {
			v.session.ReturnToMenu()
		} else {
			v.quit = true
		}
	case tcell.KeyEnter:
		v.pending.Confirm = true
	case tcell.KeyF12:
		v.pending.Screenshot = true
	case tcell.KeyUp:
		v.held[keyForward] = holdTicks
	case tcell.KeyDown:
		v.held[keyBackward] = holdTicks
	case tcell.KeyLeft:
		v.held[keyLeft] = holdTicks
	case tcell.KeyRight:
		v.held[keyRight] = holdTicks
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			v.held[keyForward] = holdTicks
		case 's', 'S':
			v.held[keyBackward] = holdTicks
		case 'a', 'A':
			v.held[keyLeft] = holdTicks
		case 'd', 'D':
			v.held[keyRight] = holdTicks
		case 'm', 'M':
			v.pending.ToggleMap = true
		}
	}
}

// Step advances the session one tick and redraws.
func (v *View) Step() {
	in := v.pending
	in.Forward = v.held[keyForward] > 0
	in.Backward = v.held[keyBackward] > 0
	in.TurnLeft = v.held[keyLeft] > 0
	in.TurnRight = v.held[keyRight] > 0
	for i := range v.held {
		if v.held[i] > 0 {
			v.held[i]--
		}
	}
	v.pending = game.Input{}

	v.session.Update(in, v.tick)

	report := v.composer.Render(v.fb, v.session.Frame(v.textures))
	v.reports.Observe(time.Now(), report)
	if v.session.TakeScreenshot() {
		path := fmt.Sprintf("screenshot_%s.bmp", time.Now().Format("20060102_150405"))
		if err := graphics.SaveBMP(path, v.fb); err != nil {
			v.reports.Logf("Warning: screenshot failed: %v", err)
		}
	}
	v.Present()
}

// Present copies the framebuffer to the screen, two pixel rows per line.
func (v *View) Present() {
	w, h := v.screen.Size()
	for cy := 0; cy < h; cy++ {
		for cx := 0; cx < w; cx++ {
			style := tcell.StyleDefault.
				Foreground(toTcell(v.fb.Pixel(cx, 2*cy))).
				Background(toTcell(v.fb.Pixel(cx, 2*cy+1)))
			v.screen.SetContent(cx, cy, halfBlock, nil, style)
		}
	}
	v.screen.Show()
}

// resize matches the framebuffer to the terminal so every pixel maps to
// exactly one half cell.
func (v *View) resize() {
	w, h := v.screen.Size()
	w, h = max(w, 1), max(h, 1)
	if v.fb != nil && v.fb.Width == w && v.fb.Height == 2*h {
		return
	}
	v.fb = graphics.NewFramebuffer(w, 2*h)
}

// Framebuffer returns the buffer the view renders into.
func (v *View) Framebuffer() *graphics.Framebuffer {
	return v.fb
}

func toTcell(c graphics.Color) tcell.Color {
	return tcell.NewRGBColor(int32(c.R()), int32(c.G()), int32(c.B()))
}
