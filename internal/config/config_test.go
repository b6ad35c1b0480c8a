package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
display:
  framebuffer_width: 320
  framebuffer_height: 200
render:
  sprite_scale: 12.5
  ray_mode: traverse
assets:
  textures:
    enemy: bunny.png
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if w, h := cfg.GetFramebufferSize(); w != 320 || h != 200 {
		t.Errorf("framebuffer = %dx%d, want 320x200", w, h)
	}
	if cfg.Render.SpriteScale != 12.5 {
		t.Errorf("sprite_scale = %v, want 12.5", cfg.Render.SpriteScale)
	}
	if cfg.Render.RayMode != RayModeTraverse {
		t.Errorf("ray_mode = %q", cfg.Render.RayMode)
	}
	// Untouched keys keep their defaults.
	if cfg.ProjectionConstant() != 6*math.Pi {
		t.Errorf("projection constant = %v, want 6π", cfg.ProjectionConstant())
	}
	if got, ok := cfg.TexturePath("enemy"); !ok || got != "assets/bunny.png" {
		t.Errorf("TexturePath(enemy) = %q, %v", got, ok)
	}
	if GlobalConfig != cfg {
		t.Error("LoadConfig should set GlobalConfig")
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"zero framebuffer", "display:\n  framebuffer_width: 0\n"},
		{"negative projection", "render:\n  projection_constant: -1\n"},
		{"unknown ray mode", "render:\n  ray_mode: dda\n"},
		{"zero max distance", "render:\n  max_ray_distance: 0\n"},
		{"animated screen without period", "assets:\n  screens:\n    splash:\n      frames: [a.png, b.png]\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.yaml))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Parse error = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseMalformedYAML(t *testing.T) {
	if _, err := Parse([]byte("display: [")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadConfig missing file error = %v, want os.ErrNotExist", err)
	}
}

func TestSpriteScaleFor(t *testing.T) {
	cfg := Default()
	if cfg.SpriteScaleFor(false) != 20.0 || cfg.SpriteScaleFor(true) != 9.0 {
		t.Errorf("SpriteScaleFor = %v/%v", cfg.SpriteScaleFor(false), cfg.SpriteScaleFor(true))
	}
}
