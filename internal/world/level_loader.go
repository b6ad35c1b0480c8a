package world

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// Level file glyphs.
const (
	GlyphEmpty          = '.'
	GlyphBlank          = ' '
	GlyphPlayer         = 'p'
	GlyphGoal           = 'g'
	GlyphHorizontalWall = '-'
	GlyphVerticalWall   = '|'
	GlyphPillarWall     = '+'
	GlyphSprite         = 'b'
)

var (
	ErrUnknownGlyph     = errors.New("level contains unknown glyphs")
	ErrMultipleStarts   = errors.New("level has more than one player start")
	ErrStartOutsideWall = errors.New("player start is not enclosed")
)

var glyphCells = map[rune]Cell{
	GlyphEmpty:          Empty,
	GlyphBlank:          Empty,
	GlyphSprite:         Empty,
	GlyphPlayer:         PlayerStart,
	GlyphGoal:           Goal,
	GlyphHorizontalWall: HorizontalWall,
	GlyphVerticalWall:   VerticalWall,
	GlyphPillarWall:     PillarWall,
}

// CellFromGlyph maps a level-file character to its cell tag.
func CellFromGlyph(r rune) (Cell, bool) {
	c, ok := glyphCells[r]
	return c, ok
}

// Level is a parsed level: the grid plus everything spawned from it.
type Level struct {
	Grid    *Grid
	Start   Pose
	Sprites []Vec2
}

// LevelLoader turns level text into a Level sized for a framebuffer.
type LevelLoader struct {
	fbWidth  int
	fbHeight int
	fov      float64
}

// NewLevelLoader creates a loader for levels rendered into a fbWidth x fbHeight
// framebuffer with the given field of view.
func NewLevelLoader(fbWidth, fbHeight int, fov float64) *LevelLoader {
	return &LevelLoader{
		fbWidth:  fbWidth,
		fbHeight: fbHeight,
		fov:      fov,
	}
}

// LoadLevel loads a level from the specified file path
func (ll *LevelLoader) LoadLevel(path string) (*Level, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open level file %s: %w", path, err)
	}
	defer file.Close()

	level, err := ll.ParseLevel(file)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", path, err)
	}
	return level, nil
}

// ParseLevel reads level rows from r. Blank lines and lines starting with
// '#' are skipped; every other line is trimmed and becomes one grid row.
func (ll *LevelLoader) ParseLevel(r io.Reader) (*Level, error) {
	var (
		rows    [][]Cell
		sprites [][2]int
		starts  [][2]int
	)
	unknown := mapset.New[rune]()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		y := len(rows)
		row := make([]Cell, 0, len(line))
		for x, ch := range []rune(line) {
			cell, ok := CellFromGlyph(ch)
			if !ok {
				unknown.Put(ch)
				cell = Empty
			}
			switch ch {
			case GlyphSprite:
				sprites = append(sprites, [2]int{x, y})
			case GlyphPlayer:
				starts = append(starts, [2]int{x, y})
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading level: %w", err)
	}

	if unknown.Size() > 0 {
		var glyphs []string
		unknown.Each(func(r rune) {
			glyphs = append(glyphs, fmt.Sprintf("%q", r))
		})
		sort.Strings(glyphs)
		return nil, fmt.Errorf("%w: %s", ErrUnknownGlyph, strings.Join(glyphs, ", "))
	}

	grid, err := NewGrid(rows, ll.fbWidth, ll.fbHeight)
	if err != nil {
		return nil, err
	}

	switch len(starts) {
	case 0:
		return nil, ErrNoPlayerStart
	case 1:
	default:
		return nil, fmt.Errorf("%w: found %d", ErrMultipleStarts, len(starts))
	}
	start := starts[0]
	if start[0] == 0 || start[1] == 0 || start[0] == grid.Cols()-1 || start[1] == grid.Rows()-1 {
		return nil, fmt.Errorf("%w: start at column %d, row %d lies on the border", ErrStartOutsideWall, start[0]+1, start[1]+1)
	}

	level := &Level{
		Grid: grid,
		Start: Pose{
			Position: grid.CellCenter(start[0], start[1]),
			FOV:      ll.fov,
		},
		Sprites: make([]Vec2, 0, len(sprites)),
	}
	for _, s := range sprites {
		level.Sprites = append(level.Sprites, grid.CellCenter(s[0], s[1]))
	}

	return level, nil
}
