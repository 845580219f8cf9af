// Package world provides maze generation, fog of war and grid geometry.
package world

// Tile represents a single maze cell.
type Tile rune

const (
	// TileWall represents an impassable wall cell.
	TileWall Tile = '#'
	// TilePath represents a carved, walkable cell.
	TilePath Tile = '.'
)

// IsPassable returns true if the tile can be walked on.
func (t Tile) IsPassable() bool {
	return t == TilePath
}

// Rune returns the tile's display character.
func (t Tile) Rune() rune {
	return rune(t)
}
