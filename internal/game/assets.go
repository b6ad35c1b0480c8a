package game

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"time"

	"raystein/internal/config"
	"raystein/internal/graphics"
)

// LoadTextures fills a texture store from the assets section. Missing files
// are logged once and replaced by placeholders, so the result is always
// usable.
func LoadTextures(cfg *config.Config) *graphics.TextureStore {
	ts := graphics.NewTextureStore(cfg.Assets.TextureCacheSize)

	slots := make([]string, 0, len(cfg.Assets.Textures))
	for slot := range cfg.Assets.Textures {
		slots = append(slots, slot)
	}
	sort.Strings(slots)
	for _, slot := range slots {
		if path, ok := cfg.TexturePath(slot); ok {
			_ = ts.Load(slot, path)
		}
	}

	for name, sc := range cfg.Assets.Screens {
		if len(sc.Frames) == 0 {
			continue
		}
		paths := make([]string, 0, len(sc.Frames))
		for _, f := range sc.Frames {
			p := filepath.Join(cfg.Assets.Dir, f)
			if _, err := os.Stat(p); err == nil {
				paths = append(paths, p)
			}
		}
		// With no frame on disk the composer falls back to a caption.
		if len(paths) == 0 {
			log.Printf("Warning: no frames found for screen %s", name)
			continue
		}
		_ = ts.LoadScreen(name, time.Duration(sc.PeriodMS)*time.Millisecond, paths)
	}
	return ts
}
