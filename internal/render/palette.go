package render

import (
	"raystein/internal/config"
	"raystein/internal/graphics"
	"raystein/internal/world"
)

// Palette is every flat color the renderer paints without a texture.
type Palette struct {
	Sky       graphics.Color
	Ground    graphics.Color
	Goal      graphics.Color
	Wall      graphics.Color
	Empty     graphics.Color
	Player    graphics.Color
	Enemy     graphics.Color
	Ray       graphics.Color
	Celestial graphics.Color
}

// DefaultPalette matches the stock config colors.
func DefaultPalette() Palette {
	return PaletteFromConfig(config.Default().Render)
}

// PaletteFromConfig converts config triples.
func PaletteFromConfig(rc config.RenderConfig) Palette {
	c := rc.Colors
	return Palette{
		Sky:       graphics.FromArray(c.Sky),
		Ground:    graphics.FromArray(c.Ground),
		Goal:      graphics.FromArray(c.Goal),
		Wall:      graphics.FromArray(c.Wall),
		Empty:     graphics.FromArray(c.Empty),
		Player:    graphics.FromArray(c.Player),
		Enemy:     graphics.FromArray(c.Enemy),
		Ray:       graphics.FromArray(c.Ray),
		Celestial: graphics.FromArray(rc.Celestial.Color),
	}
}

// CellColor is the flat fallback for a cell: goal, any wall, or anything
// else.
func (p Palette) CellColor(c world.Cell) graphics.Color {
	switch {
	case c == world.Goal:
		return p.Goal
	case c.IsSolid():
		return p.Wall
	}
	return p.Empty
}

// wallSlot maps a wall cell to its texture slot.
func wallSlot(c world.Cell) (string, bool) {
	switch c {
	case world.HorizontalWall:
		return graphics.SlotHorizontalWall, true
	case world.VerticalWall:
		return graphics.SlotVerticalWall, true
	case world.PillarWall:
		return graphics.SlotPillarWall, true
	}
	return "", false
}
