package world

// Fog tracks which cells the player has ever occupied.
type Fog struct {
	Width    int
	Height   int
	explored [][]bool
}

// NewFog creates a fog grid with nothing explored.
func NewFog(width, height int) *Fog {
	explored := make([][]bool, height)
	for y := range explored {
		explored[y] = make([]bool, width)
	}
	return &Fog{Width: width, Height: height, explored: explored}
}

func (f *Fog) inBounds(p Position) bool {
	return p.X >= 0 && p.X < f.Width && p.Y >= 0 && p.Y < f.Height
}

// Reveal marks a single cell as explored. Revealing twice is a no-op and
// off-grid positions are ignored.
func (f *Fog) Reveal(p Position) {
	if f.inBounds(p) {
		f.explored[p.Y][p.X] = true
	}
}

// IsVisible returns true if the cell has been explored.
func (f *Fog) IsVisible(p Position) bool {
	if !f.inBounds(p) {
		return false
	}
	return f.explored[p.Y][p.X]
}

// ExploredCount returns the number of explored cells.
func (f *Fog) ExploredCount() int {
	n := 0
	for _, row := range f.explored {
		for _, v := range row {
			if v {
				n++
			}
		}
	}
	return n
}

// Rows renders the fog as strings, 'x' for explored and '.' otherwise.
func (f *Fog) Rows() []string {
	rows := make([]string, f.Height)
	for y, row := range f.explored {
		buf := make([]byte, f.Width)
		for x, v := range row {
			if v {
				buf[x] = 'x'
			} else {
				buf[x] = '.'
			}
		}
		rows[y] = string(buf)
	}
	return rows
}

// ParseFog is the inverse of Rows. Any byte other than 'x' is unexplored.
func ParseFog(width int, rows []string) *Fog {
	f := NewFog(width, len(rows))
	for y, row := range rows {
		for x := 0; x < width && x < len(row); x++ {
			f.explored[y][x] = row[x] == 'x'
		}
	}
	return f
}

// Clone returns a deep copy sharing no storage with f.
func (f *Fog) Clone() *Fog {
	c := NewFog(f.Width, f.Height)
	for y := range f.explored {
		copy(c.explored[y], f.explored[y])
	}
	return c
}

// Equal reports whether two fog grids have the same dimensions and history.
func (f *Fog) Equal(other *Fog) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.Width != other.Width || f.Height != other.Height {
		return false
	}
	for y := range f.explored {
		for x := range f.explored[y] {
			if f.explored[y][x] != other.explored[y][x] {
				return false
			}
		}
	}
	return true
}
