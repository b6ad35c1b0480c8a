package world

// Cell is the tag stored in every grid slot. Only the three wall variants are
// solid: they block movement and terminate rays.
type Cell uint8

const (
	Empty          Cell = iota // Walkable floor
	PlayerStart                // Where the player spawns, walkable
	Goal                       // Reaching it wins the round, walkable
	HorizontalWall             // '-' wall segment
	VerticalWall               // '|' wall segment
	PillarWall                 // '+' corner pillar
)

var cellNames = [...]string{
	Empty:          "empty",
	PlayerStart:    "player_start",
	Goal:           "goal",
	HorizontalWall: "horizontal_wall",
	VerticalWall:   "vertical_wall",
	PillarWall:     "pillar_wall",
}

// IsSolid reports whether the cell blocks movement and rays.
func (c Cell) IsSolid() bool {
	switch c {
	case HorizontalWall, VerticalWall, PillarWall:
		return true
	}
	return false
}

func (c Cell) String() string {
	if int(c) < len(cellNames) {
		return cellNames[c]
	}
	return "unknown"
}

// Glyph returns the level-file character for the cell.
func (c Cell) Glyph() rune {
	switch c {
	case PlayerStart:
		return GlyphPlayer
	case Goal:
		return GlyphGoal
	case HorizontalWall:
		return GlyphHorizontalWall
	case VerticalWall:
		return GlyphVerticalWall
	case PillarWall:
		return GlyphPillarWall
	}
	return GlyphEmpty
}
