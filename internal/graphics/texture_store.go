package graphics

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/zyedidia/generic/cache"
)

// Texture slots consumed by the renderer.
const (
	SlotHorizontalWall = "horizontal_wall"
	SlotVerticalWall   = "vertical_wall"
	SlotPillarWall     = "pillar_wall"
	SlotEnemy          = "enemy"
)

// Status screen slots.
const (
	ScreenSplash = "splash"
	ScreenMenu   = "menu"
	ScreenLost   = "lost"
	ScreenWon    = "won"
)

const placeholderSize = 64

// TextureStore owns every texture the renderer samples. Slots name what a
// texture is used for; decoded files are shared through an LRU keyed by path
// so several slots can point at one image without decoding it twice.
type TextureStore struct {
	mu       sync.RWMutex
	slots    map[string]*Texture
	screens  map[string]*AnimatedTexture
	decoded  *cache.Cache[string, *Texture]
	missing  map[string]bool // paths already reported as missing
	hits     int
	attempts int
}

// NewTextureStore creates an empty store whose decode cache holds up to
// cacheSize images.
func NewTextureStore(cacheSize int) *TextureStore {
	if cacheSize <= 0 {
		cacheSize = 1
	}
	return &TextureStore{
		slots:   make(map[string]*Texture),
		screens: make(map[string]*AnimatedTexture),
		decoded: cache.New[string, *Texture](cacheSize),
		missing: make(map[string]bool),
	}
}

// Set binds a texture to a slot directly.
func (ts *TextureStore) Set(slot string, tex *Texture) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.slots[slot] = tex
}

// Get returns the texture bound to slot.
func (ts *TextureStore) Get(slot string) (*Texture, bool) {
	if ts == nil {
		return nil, false
	}
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	tex, ok := ts.slots[slot]
	return tex, ok
}

// SetScreen binds an animated texture to a status screen slot.
func (ts *TextureStore) SetScreen(name string, anim *AnimatedTexture) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.screens[name] = anim
}

// Screen returns the animated texture for a status screen.
func (ts *TextureStore) Screen(name string) (*AnimatedTexture, bool) {
	if ts == nil {
		return nil, false
	}
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	anim, ok := ts.screens[name]
	return anim, ok
}

// Load decodes path into slot. A file that cannot be read or decoded is
// replaced by a checker placeholder so rendering continues; the returned
// error says what went wrong.
func (ts *TextureStore) Load(slot, path string) error {
	tex, err := ts.decode(path)
	if err != nil {
		ts.warnOnce(path, err)
		tex = placeholder(slot)
	}
	ts.Set(slot, tex)
	return err
}

// LoadScreen decodes every frame of an animated status screen. Missing
// frames become placeholders.
func (ts *TextureStore) LoadScreen(name string, period time.Duration, paths []string) error {
	if len(paths) == 0 {
		return fmt.Errorf("screen %s: %w", name, ErrNoFrames)
	}
	var firstErr error
	frames := make([]*Texture, 0, len(paths))
	for _, p := range paths {
		tex, err := ts.decode(p)
		if err != nil {
			ts.warnOnce(p, err)
			if firstErr == nil {
				firstErr = err
			}
			tex = placeholder(name)
		}
		frames = append(frames, tex)
	}
	anim, err := NewAnimatedTexture(period, frames...)
	if err != nil {
		return err
	}
	ts.SetScreen(name, anim)
	return firstErr
}

// CacheStats returns decode cache hits and total lookups.
func (ts *TextureStore) CacheStats() (hits, attempts int) {
	ts.mu.RLock()
	defer ts.mu.RUnlock()
	return ts.hits, ts.attempts
}

func (ts *TextureStore) decode(path string) (*Texture, error) {
	ts.mu.Lock()
	ts.attempts++
	if tex, ok := ts.decoded.Get(path); ok {
		ts.hits++
		ts.mu.Unlock()
		return tex, nil
	}
	ts.mu.Unlock()

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture %s: %w", path, err)
	}
	defer file.Close()

	tex, err := DecodeTexture(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture %s: %w", path, err)
	}

	ts.mu.Lock()
	ts.decoded.Put(path, tex)
	ts.mu.Unlock()
	return tex, nil
}

func (ts *TextureStore) warnOnce(path string, err error) {
	ts.mu.Lock()
	seen := ts.missing[path]
	ts.missing[path] = true
	ts.mu.Unlock()
	if !seen {
		log.Printf("Warning: %v, using placeholder", err)
	}
}

// placeholder picks a checker pair by slot so missing walls, enemies and
// screens are distinguishable on screen.
func placeholder(slot string) *Texture {
	switch slot {
	case SlotEnemy:
		return NewCheckerTexture(placeholderSize, placeholderSize, 8, RGB(0, 128, 0), ColorBlack)
	case SlotHorizontalWall, SlotVerticalWall, SlotPillarWall:
		return NewCheckerTexture(placeholderSize, placeholderSize, 8, RGB(128, 0, 128), ColorBlack)
	default:
		return NewCheckerTexture(placeholderSize, placeholderSize, 8, RGB(128, 128, 128), ColorBlack)
	}
}
