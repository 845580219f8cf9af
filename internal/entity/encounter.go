package entity

import (
	"github.com/samdwyer/fracturecrawl/internal/world"
)

// EncounterIndex maps grid cells to the enemies standing on them while
// keeping spawn order for rendering and snapshots.
type EncounterIndex struct {
	enemies []*Enemy
	byCell  map[world.Position]*Enemy
}

// NewEncounterIndex indexes the given enemies. If two enemies share a cell
// the first one in the slice is found by At.
func NewEncounterIndex(enemies []*Enemy) *EncounterIndex {
	idx := &EncounterIndex{
		enemies: make([]*Enemy, 0, len(enemies)),
		byCell:  make(map[world.Position]*Enemy, len(enemies)),
	}
	for _, e := range enemies {
		idx.enemies = append(idx.enemies, e)
		if _, taken := idx.byCell[e.Position()]; !taken {
			idx.byCell[e.Position()] = e
		}
	}
	return idx
}

// At returns the enemy occupying p, or nil.
func (idx *EncounterIndex) At(p world.Position) *Enemy {
	return idx.byCell[p]
}

// Remove deletes e from the index. Returns false if e was not present.
func (idx *EncounterIndex) Remove(e *Enemy) bool {
	for i, existing := range idx.enemies {
		if existing != e {
			continue
		}
		idx.enemies = append(idx.enemies[:i], idx.enemies[i+1:]...)

		p := e.Position()
		delete(idx.byCell, p)
		for _, other := range idx.enemies {
			if other.Position() == p {
				idx.byCell[p] = other
				break
			}
		}
		return true
	}
	return false
}

// All returns the enemies in spawn order. The slice must not be modified.
func (idx *EncounterIndex) All() []*Enemy {
	return idx.enemies
}

// Len returns the number of enemies.
func (idx *EncounterIndex) Len() int {
	return len(idx.enemies)
}

// Clone deep-copies every enemy into a new index.
func (idx *EncounterIndex) Clone() *EncounterIndex {
	copies := make([]*Enemy, len(idx.enemies))
	for i, e := range idx.enemies {
		copies[i] = e.Clone()
	}
	return NewEncounterIndex(copies)
}

// IsEnemyVisible reports whether an enemy should be drawn: always in reveal
// mode, otherwise only once its cell has been explored.
func IsEnemyVisible(e *Enemy, fog *world.Fog, revealMode bool) bool {
	return revealMode || fog.IsVisible(e.Position())
}
