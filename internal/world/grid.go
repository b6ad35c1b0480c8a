package world

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrEmptyLevel    = errors.New("level contains no rows")
	ErrRaggedGrid    = errors.New("level rows have inconsistent width")
	ErrBadCellSize   = errors.New("cell size must be positive")
	ErrNoPlayerStart = errors.New("level has no player start")
)

// Grid is the immutable tile board. Cell sizes are in pixel units and are
// derived by dividing the framebuffer size by the column and row counts.
type Grid struct {
	cells      [][]Cell
	rows       int
	cols       int
	cellWidth  float64
	cellHeight float64
}

// NewGrid creates a grid sized to cover a fbWidth x fbHeight framebuffer.
// The cell rows are copied.
func NewGrid(cells [][]Cell, fbWidth, fbHeight int) (*Grid, error) {
	if len(cells) == 0 || len(cells[0]) == 0 {
		return nil, ErrEmptyLevel
	}
	cols := len(cells[0])
	copied := make([][]Cell, len(cells))
	for y, row := range cells {
		if len(row) != cols {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrRaggedGrid, y+1, len(row), cols)
		}
		copied[y] = append([]Cell(nil), row...)
	}
	if fbWidth <= 0 || fbHeight <= 0 {
		return nil, fmt.Errorf("%w: framebuffer %dx%d", ErrBadCellSize, fbWidth, fbHeight)
	}

	return &Grid{
		cells:      copied,
		rows:       len(cells),
		cols:       cols,
		cellWidth:  float64(fbWidth) / float64(cols),
		cellHeight: float64(fbHeight) / float64(len(cells)),
	}, nil
}

// NewGridWithCellSize creates a grid with explicit cell dimensions.
func NewGridWithCellSize(cells [][]Cell, cellWidth, cellHeight float64) (*Grid, error) {
	if !(cellWidth > 0) || !(cellHeight > 0) {
		return nil, fmt.Errorf("%w: %vx%v", ErrBadCellSize, cellWidth, cellHeight)
	}
	g, err := NewGrid(cells, 1, 1)
	if err != nil {
		return nil, err
	}
	g.cellWidth = cellWidth
	g.cellHeight = cellHeight
	return g, nil
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	return g.cols
}

// CellSize returns the pixel width and height of one cell.
func (g *Grid) CellSize() (float64, float64) {
	return g.cellWidth, g.cellHeight
}

// InBounds checks if a col/row position is within grid bounds
func (g *Grid) InBounds(col, row int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// At returns the cell at col/row. Callers must check InBounds first.
func (g *Grid) At(col, row int) Cell {
	return g.cells[row][col]
}

// CellIndex converts a pixel-space point to the col/row containing it.
// Negative coordinates map to negative indices so they fail InBounds.
func (g *Grid) CellIndex(x, y float64) (int, int) {
	return int(math.Floor(x / g.cellWidth)), int(math.Floor(y / g.cellHeight))
}

// CellAt returns the cell under a pixel-space point and whether the point lies
// inside the grid.
func (g *Grid) CellAt(x, y float64) (Cell, bool) {
	if math.IsNaN(x) || math.IsNaN(y) {
		return Empty, false
	}
	col, row := g.CellIndex(x, y)
	if !g.InBounds(col, row) {
		return Empty, false
	}
	return g.cells[row][col], true
}

// CellCenter returns the pixel-space centre of a cell.
func (g *Grid) CellCenter(col, row int) Vec2 {
	return Vec2{
		X: float64(col)*g.cellWidth + g.cellWidth/2,
		Y: float64(row)*g.cellHeight + g.cellHeight/2,
	}
}

// Find returns the first cell position holding c, scanning row-major.
func (g *Grid) Find(c Cell) (col, row int, ok bool) {
	for y, line := range g.cells {
		for x, cell := range line {
			if cell == c {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// IsTileBlocking reports whether a tile blocks movement. Out-of-bounds tiles
// block.
func (g *Grid) IsTileBlocking(tileX, tileY int) bool {
	if !g.InBounds(tileX, tileY) {
		return true
	}
	return g.cells[tileY][tileX].IsSolid()
}

// GetWorldBounds returns the grid size in tiles.
func (g *Grid) GetWorldBounds() (width, height int) {
	return g.cols, g.rows
}
