package game

import (
	"fmt"
	"math"
	"time"

	"raystein/internal/collision"
	"raystein/internal/config"
	"raystein/internal/graphics"
	"raystein/internal/render"
	"raystein/internal/threading/entities"
	"raystein/internal/threading/monitoring"
	"raystein/internal/world"
)

const playerID = "player"

// Music is the part of the audio player the session drives.
type Music interface {
	PlayBackground()
	PlayWin()
	PlayLose()
	Stop()
}

type silentMusic struct{}

func (silentMusic) PlayBackground() {}
func (silentMusic) PlayWin()        {}
func (silentMusic) PlayLose()       {}
func (silentMusic) Stop()           {}

// Input is one tick of player intent, independent of where it came from.
type Input struct {
	Forward    bool
	Backward   bool
	TurnLeft   bool
	TurnRight  bool
	MouseDX    float64
	AnyKey     bool
	Confirm    bool
	ToggleMap  bool
	Screenshot bool
	Quit       bool
}

// Enemy is a sprite that chases the player.
type Enemy struct {
	ID       string
	Position world.Vec2
}

// Session is the game state machine. It knows nothing about windows or
// terminals; presenters feed it Input and render the Frame it produces.
type Session struct {
	cfg       *config.Config
	level     *world.Level
	music     Music
	monitor   *monitoring.PerformanceMonitor
	collision *collision.CollisionSystem
	updater   *entities.EntityUpdater

	status     render.Status
	pose       world.Pose
	enemies    []*Enemy
	phase      float64
	elapsed    time.Duration
	topDown    bool
	screenshot bool
}

// NewSession starts at the splash screen. music may be nil.
func NewSession(cfg *config.Config, level *world.Level, music Music) *Session {
	if music == nil {
		music = silentMusic{}
	}
	cw, ch := level.Grid.CellSize()
	s := &Session{
		cfg:       cfg,
		level:     level,
		music:     music,
		collision: collision.NewCollisionSystem(level.Grid, cw, ch),
		updater:   entities.NewEntityUpdater(),
		status:    render.SplashScreen,
	}
	s.reset()
	return s
}

// SetMonitor reports enemy updates to pm.
func (s *Session) SetMonitor(pm *monitoring.PerformanceMonitor) {
	s.monitor = pm
}

// reset puts the player and enemies back at their spawn points.
func (s *Session) reset() {
	for _, e := range s.enemies {
		s.collision.UnregisterEntity(e.ID)
	}
	s.collision.UnregisterEntity(playerID)

	s.pose = s.level.Start
	s.pose.Orientation = s.cfg.Camera.StartOrientation
	if s.pose.FOV == 0 {
		s.pose.FOV = s.cfg.GetFOV()
	}
	size := s.entitySize()
	s.collision.RegisterEntity(collision.NewEntity(playerID, s.pose.Position.X, s.pose.Position.Y, size, size, collision.CollisionTypePlayer, false))

	s.enemies = make([]*Enemy, 0, len(s.level.Sprites))
	for i, p := range s.level.Sprites {
		e := &Enemy{ID: fmt.Sprintf("enemy_%d", i), Position: p}
		s.enemies = append(s.enemies, e)
		s.collision.RegisterEntity(collision.NewEntity(e.ID, p.X, p.Y, size, size, collision.CollisionTypeEnemy, true))
	}
	s.phase = 0
}

func (s *Session) entitySize() float64 {
	return 2 * s.cfg.Movement.PlayerRadius
}

func (s *Session) Status() render.Status { return s.status }
func (s *Session) Pose() world.Pose      { return s.pose }
func (s *Session) Phase() float64        { return s.phase }
func (s *Session) TopDown() bool         { return s.topDown }
func (s *Session) Level() *world.Level   { return s.level }

// Enemies returns the enemy positions.
func (s *Session) Enemies() []world.Vec2 {
	out := make([]world.Vec2, len(s.enemies))
	for i, e := range s.enemies {
		out[i] = e.Position
	}
	return out
}

// TakeScreenshot reports whether a screenshot was requested since the last
// call.
func (s *Session) TakeScreenshot() bool {
	req := s.screenshot
	s.screenshot = false
	return req
}

// Frame describes what to draw for the current state.
func (s *Session) Frame(textures *graphics.TextureStore) render.Frame {
	return render.Frame{
		Status:   s.status,
		Grid:     s.level.Grid,
		Pose:     s.pose,
		Sprites:  s.Enemies(),
		Textures: textures,
		Elapsed:  s.elapsed,
		Phase:    s.phase,
		TopDown:  s.topDown,
	}
}

// Update advances the game by one tick of length dt.
func (s *Session) Update(in Input, dt time.Duration) {
	s.elapsed += dt
	if in.Screenshot {
		s.screenshot = true
	}

	switch s.status {
	case render.SplashScreen:
		if in.AnyKey || in.Confirm {
			s.setStatus(render.MainMenu)
		}
	case render.MainMenu:
		if in.Confirm {
			s.reset()
			s.setStatus(render.Playing)
			s.music.PlayBackground()
		}
	case render.Playing:
		s.updatePlaying(in)
	case render.Lost, render.Won:
		if in.Confirm {
			s.ReturnToMenu()
		}
	}
}

// ReturnToMenu abandons the current run.
func (s *Session) ReturnToMenu() {
	s.music.Stop()
	s.setStatus(render.MainMenu)
}

func (s *Session) setStatus(status render.Status) {
	s.status = status
	s.elapsed = 0
}

func (s *Session) updatePlaying(in Input) {
	if in.ToggleMap {
		s.topDown = !s.topDown
	}

	s.handleMovement(in)

	if s.cfg.Enemies.Chase {
		if s.monitor != nil {
			var moved int
			s.monitor.ProfiledFunction("entity_update", func() { moved = s.updateEnemies() })
			s.monitor.RecordEnemyUpdates(moved)
		} else {
			s.updateEnemies()
		}
	}

	s.phase = render.AdvancePhase(s.phase, s.cfg.Render.Celestial.PhaseStep)

	if cell, ok := s.level.Grid.CellAt(s.pose.Position.X, s.pose.Position.Y); ok && cell == world.Goal {
		s.setStatus(render.Won)
		s.music.PlayWin()
		return
	}
	if s.caught() {
		s.setStatus(render.Lost)
		s.music.PlayLose()
	}
}

// handleMovement turns and moves the player. A move into a solid cell is
// rejected as a whole.
func (s *Session) handleMovement(in Input) {
	rot := s.cfg.GetRotSpeed()
	if in.TurnLeft {
		s.pose = s.pose.Rotate(-rot)
	}
	if in.TurnRight {
		s.pose = s.pose.Rotate(rot)
	}
	if in.MouseDX != 0 {
		s.pose = s.pose.Rotate(in.MouseDX * s.cfg.Movement.MouseSensitivity)
	}

	var step float64
	if in.Forward {
		step += s.cfg.GetMoveSpeed()
	}
	if in.Backward {
		step -= s.cfg.GetMoveSpeed()
	}
	if step == 0 {
		return
	}
	dest := s.pose.Position.Add(s.pose.Forward().Scale(step))
	if s.collision.CanMoveTo(playerID, dest.X, dest.Y) {
		s.pose.Position = dest
		s.collision.UpdateEntity(playerID, dest.X, dest.Y)
	}
}

// updateEnemies steps every enemy that can see the player toward it,
// sliding along walls when the direct step is blocked. Line of sight is
// checked in parallel; moves are resolved one enemy at a time so enemies
// cannot walk into each other.
func (s *Session) updateEnemies() int {
	speed := s.cfg.Enemies.Speed
	target := s.pose.Position

	return s.updater.Update(len(s.enemies), func(i int) entities.Step {
		e := s.enemies[i]
		delta := target.Sub(e.Position)
		dist := delta.Len()
		if dist < 1e-9 || !s.collision.CheckLineOfSight(e.Position.X, e.Position.Y, target.X, target.Y) {
			return entities.Step{}
		}
		step := delta.Scale(math.Min(speed, dist) / dist)
		return entities.Step{DX: step.X, DY: step.Y, Move: true}
	}, func(i int, step entities.Step) bool {
		e := s.enemies[i]
		for _, try := range []world.Vec2{{X: step.DX, Y: step.DY}, {X: step.DX}, {Y: step.DY}} {
			if try == (world.Vec2{}) {
				continue
			}
			dest := e.Position.Add(try)
			if s.collision.CanMoveTo(e.ID, dest.X, dest.Y) {
				e.Position = dest
				s.collision.UpdateEntity(e.ID, dest.X, dest.Y)
				return true
			}
		}
		return false
	})
}

func (s *Session) caught() bool {
	p := s.pose.Position
	for _, e := range s.collision.GetNearbyEntities(p.X, p.Y, s.cfg.Enemies.CatchRadius, playerID) {
		if e.CollisionType == collision.CollisionTypeEnemy {
			return true
		}
	}
	return false
}
