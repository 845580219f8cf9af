package world

import (
	"errors"
	"fmt"
)

const (
	// Default maze dimensions
	DefaultWidth  = 30
	DefaultHeight = 20

	// CellSize is the on-screen size of one cell for pixel-based frontends.
	CellSize = 24
)

// ErrGridTooSmall is returned when a grid has no interior cell to carve.
var ErrGridTooSmall = errors.New("grid too small: width and height must be at least 3")

// Maze is a wall/path grid. Tiles are indexed [y][x].
type Maze struct {
	Width  int
	Height int
	Tiles  [][]Tile
}

// NewMaze creates a maze filled with walls.
func NewMaze(width, height int) *Maze {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}

	return &Maze{
		Width:  width,
		Height: height,
		Tiles:  tiles,
	}
}

// ParseMaze builds a maze from rows of tile glyphs ('#' wall, '.' path).
func ParseMaze(rows []string) (*Maze, error) {
	if len(rows) == 0 {
		return nil, errors.New("parse maze: no rows")
	}
	width := len(rows[0])
	m := NewMaze(width, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("parse maze: row %d has width %d, want %d", y, len(row), width)
		}
		for x, ch := range []byte(row) {
			switch Tile(ch) {
			case TileWall, TilePath:
				m.Tiles[y][x] = Tile(ch)
			default:
				return nil, fmt.Errorf("parse maze: invalid tile %q at (%d,%d)", ch, x, y)
			}
		}
	}
	return m, nil
}

// InBounds returns true if the position lies on the grid.
func (m *Maze) InBounds(p Position) bool {
	return p.X >= 0 && p.X < m.Width && p.Y >= 0 && p.Y < m.Height
}

// IsInterior returns true if the position lies strictly inside the border.
func (m *Maze) IsInterior(p Position) bool {
	return p.X > 0 && p.X < m.Width-1 && p.Y > 0 && p.Y < m.Height-1
}

// IsPassable returns true if the given position can be walked on.
func (m *Maze) IsPassable(p Position) bool {
	if !m.InBounds(p) {
		return false
	}
	return m.Tiles[p.Y][p.X].IsPassable()
}

// GetTile returns the tile at the given position. Off-grid reads are walls.
func (m *Maze) GetTile(p Position) Tile {
	if !m.InBounds(p) {
		return TileWall
	}
	return m.Tiles[p.Y][p.X]
}

// PathCells returns every path cell in row-major order.
func (m *Maze) PathCells() []Position {
	var cells []Position
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Tiles[y][x] == TilePath {
				cells = append(cells, Position{X: x, Y: y})
			}
		}
	}
	return cells
}

// Corners returns the four interior corners in the order
// top-left, top-right, bottom-left, bottom-right.
func (m *Maze) Corners() [4]Position {
	return [4]Position{
		{X: 1, Y: 1},
		{X: m.Width - 2, Y: 1},
		{X: 1, Y: m.Height - 2},
		{X: m.Width - 2, Y: m.Height - 2},
	}
}

// Opposite returns the interior position mirrored through the grid centre.
// For an interior corner this is the diagonally opposite corner.
func (m *Maze) Opposite(p Position) Position {
	return Position{X: m.Width - 1 - p.X, Y: m.Height - 1 - p.Y}
}

// Rows renders the maze as one string of tile glyphs per row.
func (m *Maze) Rows() []string {
	rows := make([]string, m.Height)
	for y := range m.Tiles {
		buf := make([]byte, m.Width)
		for x, t := range m.Tiles[y] {
			buf[x] = byte(t)
		}
		rows[y] = string(buf)
	}
	return rows
}

// Clone returns a deep copy sharing no storage with m.
func (m *Maze) Clone() *Maze {
	c := &Maze{
		Width:  m.Width,
		Height: m.Height,
		Tiles:  make([][]Tile, m.Height),
	}
	for y := range m.Tiles {
		c.Tiles[y] = make([]Tile, m.Width)
		copy(c.Tiles[y], m.Tiles[y])
	}
	return c
}

// Equal reports whether two mazes have identical dimensions and tiles.
func (m *Maze) Equal(other *Maze) bool {
	if m == nil || other == nil {
		return m == other
	}
	if m.Width != other.Width || m.Height != other.Height {
		return false
	}
	for y := range m.Tiles {
		for x := range m.Tiles[y] {
			if m.Tiles[y][x] != other.Tiles[y][x] {
				return false
			}
		}
	}
	return true
}
