// Package entity provides labyrinth enemies and the index used to find them.
package entity

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/fracturecrawl/internal/combat"
	"github.com/samdwyer/fracturecrawl/internal/gamedata"
	"github.com/samdwyer/fracturecrawl/internal/world"
)

// Default stats for enemies created without an archetype.
const (
	DefaultHP     = 50
	DefaultDamage = 10
)

// Enemy is the simulation state of a hostile creature in the labyrinth.
// Rendering handles belong to the presentation layer and are rebuilt from
// Def on every frame, so an Enemy copies cleanly into a snapshot.
type Enemy struct {
	Def   *gamedata.EnemyDef // Archetype (nil for default enemies)
	X, Y  int                // Grid position
	HP    int                // Current health
	MaxHP int                // Maximum health
}

// NewEnemy creates a default enemy at the given position.
func NewEnemy(p world.Position) *Enemy {
	return &Enemy{
		X:     p.X,
		Y:     p.Y,
		HP:    DefaultHP,
		MaxHP: DefaultHP,
	}
}

// NewEnemyFromDef creates an enemy from a data-driven definition.
func NewEnemyFromDef(def *gamedata.EnemyDef, p world.Position) *Enemy {
	if def == nil {
		return NewEnemy(p)
	}
	return &Enemy{
		Def:   def,
		X:     p.X,
		Y:     p.Y,
		HP:    def.HP,
		MaxHP: def.HP,
	}
}

// Position returns the enemy's grid cell.
func (e *Enemy) Position() world.Position {
	return world.Position{X: e.X, Y: e.Y}
}

// Name returns the display name.
func (e *Enemy) Name() string {
	if e.Def != nil {
		return e.Def.Name
	}
	return "Enemy"
}

// ID returns the archetype identifier.
func (e *Enemy) ID() string {
	if e.Def != nil {
		return e.Def.ID
	}
	return "default"
}

// Symbol returns the display glyph.
func (e *Enemy) Symbol() rune {
	if e.Def != nil {
		return e.Def.GlyphRune()
	}
	return 'e'
}

// Color returns the tcell color for this enemy.
func (e *Enemy) Color() tcell.Color {
	if e.Def != nil {
		return e.Def.TCellColor()
	}
	return tcell.ColorRed
}

// Damage returns the damage dealt per blow in combat.
func (e *Enemy) Damage() int {
	if e.Def != nil {
		return e.Def.Damage
	}
	return DefaultDamage
}

// IsAlive returns true if the enemy has health remaining.
func (e *Enemy) IsAlive() bool { return e.HP > 0 }

// TakeDamage reduces HP and returns actual damage taken.
func (e *Enemy) TakeDamage(amount int) int {
	if amount <= 0 {
		return 0
	}
	actual := min(amount, e.HP)
	e.HP -= actual
	return actual
}

// Combatant interface implementation

// GetName returns the display name for combat.
func (e *Enemy) GetName() string { return e.Name() }

// GetHP returns current HP.
func (e *Enemy) GetHP() int { return e.HP }

// GetMaxHP returns maximum HP.
func (e *Enemy) GetMaxHP() int { return e.MaxHP }

var _ combat.Combatant = (*Enemy)(nil)

// Clone returns an independent copy. Def is shared; archetypes are read-only.
func (e *Enemy) Clone() *Enemy {
	c := *e
	return &c
}
