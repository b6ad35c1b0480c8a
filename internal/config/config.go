package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all game configuration values
type Config struct {
	Display  DisplayConfig  `yaml:"display"`
	Camera   CameraConfig   `yaml:"camera"`
	Movement MovementConfig `yaml:"movement"`
	Render   RenderConfig   `yaml:"render"`
	Assets   AssetsConfig   `yaml:"assets"`
	Audio    AudioConfig    `yaml:"audio"`
	Enemies  EnemyConfig    `yaml:"enemies"`
}

type DisplayConfig struct {
	ScreenWidth       int    `yaml:"screen_width"`
	ScreenHeight      int    `yaml:"screen_height"`
	FramebufferWidth  int    `yaml:"framebuffer_width"`
	FramebufferHeight int    `yaml:"framebuffer_height"`
	WindowTitle       string `yaml:"window_title"`
	Resizable         bool   `yaml:"resizable"`
	TPS               int    `yaml:"tps"`
	ShowFPS           bool   `yaml:"show_fps"`
}

type CameraConfig struct {
	FieldOfView      float64 `yaml:"field_of_view"`
	StartOrientation float64 `yaml:"start_orientation"`
}

type MovementConfig struct {
	MoveSpeed        float64 `yaml:"move_speed"`
	RotationSpeed    float64 `yaml:"rotation_speed"`
	MouseSensitivity float64 `yaml:"mouse_sensitivity"`
	PlayerRadius     float64 `yaml:"player_radius"`
}

// RenderConfig carries the projection tunables. ProjectionConstant and
// SpriteScale are calibration values, not derived physical constants.
type RenderConfig struct {
	ProjectionConstant float64         `yaml:"projection_constant"`
	SpriteScale        float64         `yaml:"sprite_scale"`
	MinimapSpriteScale float64         `yaml:"minimap_sprite_scale"`
	MaxRayDistance     float64         `yaml:"max_ray_distance"`
	MinSpriteDistance  float64         `yaml:"min_sprite_distance"`
	RayMode            string          `yaml:"ray_mode"` // "march" or "traverse"
	Workers            int             `yaml:"workers"`  // 0 or 1 renders columns on the calling goroutine
	FanRays            int             `yaml:"fan_rays"`
	Minimap            MinimapConfig   `yaml:"minimap"`
	Celestial          CelestialConfig `yaml:"celestial"`
	Colors             ColorsConfig    `yaml:"colors"`
}

type MinimapConfig struct {
	Enabled bool    `yaml:"enabled"`
	Scale   float64 `yaml:"scale"`
	Margin  int     `yaml:"margin"`
}

type CelestialConfig struct {
	Enabled   bool    `yaml:"enabled"`
	PhaseStep float64 `yaml:"phase_step"`
	Radius    int     `yaml:"radius"`
	Color     [3]int  `yaml:"color"`
}

type ColorsConfig struct {
	Sky    [3]int `yaml:"sky"`
	Ground [3]int `yaml:"ground"`
	Goal   [3]int `yaml:"goal"`
	Wall   [3]int `yaml:"wall"`
	Empty  [3]int `yaml:"empty"`
	Player [3]int `yaml:"player"`
	Enemy  [3]int `yaml:"enemy"`
	Ray    [3]int `yaml:"ray"`
}

type AssetsConfig struct {
	Dir              string                  `yaml:"dir"`
	Level            string                  `yaml:"level"`
	TextureCacheSize int                     `yaml:"texture_cache_size"`
	Textures         map[string]string       `yaml:"textures"`
	Screens          map[string]ScreenConfig `yaml:"screens"`
}

// ScreenConfig describes a full-screen status image. Frames loop every PeriodMS.
type ScreenConfig struct {
	Frames   []string `yaml:"frames"`
	PeriodMS int      `yaml:"period_ms"`
}

type AudioConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Background string  `yaml:"background"`
	Win        string  `yaml:"win"`
	Lose       string  `yaml:"lose"`
	Volume     float64 `yaml:"volume"`
}

type EnemyConfig struct {
	Speed       float64 `yaml:"speed"`
	CatchRadius float64 `yaml:"catch_radius"`
	Chase       bool    `yaml:"chase"`
}

// Ray modes accepted by RenderConfig.RayMode.
const (
	RayModeMarch    = "march"
	RayModeTraverse = "traverse"
)

var ErrInvalidConfig = errors.New("invalid config")

var GlobalConfig *Config

// Default returns a configuration that renders the stock level without any
// config file present.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			ScreenWidth:       800,
			ScreenHeight:      800,
			FramebufferWidth:  1000,
			FramebufferHeight: 1000,
			WindowTitle:       "Raystein",
			Resizable:         true,
			TPS:               60,
		},
		Camera: CameraConfig{
			FieldOfView: math.Pi / 2,
		},
		Movement: MovementConfig{
			MoveSpeed:        1.5,
			RotationSpeed:    0.03,
			MouseSensitivity: 0.005,
			PlayerRadius:     4,
		},
		Render: RenderConfig{
			ProjectionConstant: 6 * math.Pi,
			SpriteScale:        20.0,
			MinimapSpriteScale: 9.0,
			MaxRayDistance:     4000,
			MinSpriteDistance:  1.0,
			RayMode:            RayModeMarch,
			FanRays:            5,
			Minimap: MinimapConfig{
				Enabled: true,
				Scale:   0.25,
				Margin:  10,
			},
			Celestial: CelestialConfig{
				Enabled:   true,
				PhaseStep: 0.0005,
				Radius:    30,
				Color:     [3]int{255, 220, 90},
			},
			Colors: ColorsConfig{
				Sky:    [3]int{40, 60, 120},
				Ground: [3]int{60, 50, 40},
				Goal:   [3]int{0x8b, 0x00, 0x00},
				Wall:   [3]int{0xff, 0x00, 0xff},
				Empty:  [3]int{0xff, 0xff, 0xff},
				Player: [3]int{0x00, 0x00, 0xff},
				Enemy:  [3]int{0xff, 0xff, 0x00},
				Ray:    [3]int{0x00, 0x00, 0x00},
			},
		},
		Assets: AssetsConfig{
			Dir:              "assets",
			Level:            "assets/levels/maze.txt",
			TextureCacheSize: 32,
			Textures: map[string]string{
				"horizontal_wall": "small_wall.jpg",
				"vertical_wall":   "large_wall.jpg",
				"pillar_wall":     "corner.jpg",
				"enemy":           "enemy.png",
			},
		},
		Audio: AudioConfig{
			Volume: 1.0,
		},
		Enemies: EnemyConfig{
			Speed:       0.6,
			CatchRadius: 12,
			Chase:       true,
		},
	}
}

// LoadConfig loads the configuration from a YAML file on top of Default().
func LoadConfig(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", filename, err)
	}

	config, err := Parse(data)
	if err != nil {
		return nil, err
	}

	// Set global config for easy access
	GlobalConfig = config

	return config, nil
}

// Parse decodes YAML bytes on top of Default() and validates the result.
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// MustLoadConfig loads the configuration and panics on error
func MustLoadConfig(filename string) *Config {
	config, err := LoadConfig(filename)
	if err != nil {
		panic("Failed to load config: " + err.Error())
	}
	return config
}

// Validate rejects values the renderer cannot work with.
func (c *Config) Validate() error {
	switch {
	case c.Display.FramebufferWidth <= 0 || c.Display.FramebufferHeight <= 0:
		return fmt.Errorf("%w: framebuffer size must be positive, got %dx%d",
			ErrInvalidConfig, c.Display.FramebufferWidth, c.Display.FramebufferHeight)
	case c.Display.ScreenWidth <= 0 || c.Display.ScreenHeight <= 0:
		return fmt.Errorf("%w: screen size must be positive", ErrInvalidConfig)
	case c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 2*math.Pi:
		return fmt.Errorf("%w: field_of_view must be in (0, 2π)", ErrInvalidConfig)
	case c.Render.ProjectionConstant <= 0:
		return fmt.Errorf("%w: projection_constant must be positive", ErrInvalidConfig)
	case c.Render.SpriteScale <= 0 || c.Render.MinimapSpriteScale <= 0:
		return fmt.Errorf("%w: sprite scales must be positive", ErrInvalidConfig)
	case c.Render.MaxRayDistance <= 0:
		return fmt.Errorf("%w: max_ray_distance must be positive", ErrInvalidConfig)
	case c.Render.MinSpriteDistance <= 0:
		return fmt.Errorf("%w: min_sprite_distance must be positive", ErrInvalidConfig)
	}
	switch c.Render.RayMode {
	case RayModeMarch, RayModeTraverse:
	default:
		return fmt.Errorf("%w: unknown ray_mode %q", ErrInvalidConfig, c.Render.RayMode)
	}
	for name, screen := range c.Assets.Screens {
		if len(screen.Frames) > 1 && screen.PeriodMS <= 0 {
			return fmt.Errorf("%w: animated screen %q needs a positive period_ms", ErrInvalidConfig, name)
		}
	}
	return nil
}

// Helper functions for easy access to commonly used values
func (c *Config) GetScreenWidth() int {
	return c.Display.ScreenWidth
}

func (c *Config) GetScreenHeight() int {
	return c.Display.ScreenHeight
}

func (c *Config) GetFramebufferSize() (int, int) {
	return c.Display.FramebufferWidth, c.Display.FramebufferHeight
}

func (c *Config) GetFOV() float64 {
	return c.Camera.FieldOfView
}

func (c *Config) GetMoveSpeed() float64 {
	return c.Movement.MoveSpeed
}

func (c *Config) GetRotSpeed() float64 {
	return c.Movement.RotationSpeed
}

// ProjectionConstant returns the wall-scale calibration, 6π when unset.
func (c *Config) ProjectionConstant() float64 {
	if c.Render.ProjectionConstant <= 0 {
		return 6 * math.Pi
	}
	return c.Render.ProjectionConstant
}

// SpriteScaleFor returns the sprite scale for the active HUD layout; the
// minimap layout uses a smaller value.
func (c *Config) SpriteScaleFor(minimap bool) float64 {
	if minimap {
		return c.Render.MinimapSpriteScale
	}
	return c.Render.SpriteScale
}

// TexturePath resolves a texture slot to a file path under the assets dir.
func (c *Config) TexturePath(slot string) (string, bool) {
	name, ok := c.Assets.Textures[slot]
	if !ok || name == "" {
		return "", false
	}
	return c.Assets.Dir + "/" + name, true
}
