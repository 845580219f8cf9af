package gamedata

import (
	"errors"
	"math/rand"
)

// EnemyRegistry holds loaded enemy definitions and provides spawning utilities.
type EnemyRegistry struct {
	enemies []EnemyDef
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	return &EnemyRegistry{enemies: enemies}
}

// LoadEnemyRegistry loads and creates a registry from the embedded enemies.json.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.json")
	}
	return NewEnemyRegistry(enemies), nil
}

// MustLoadEnemyRegistry loads a registry, panicking on error.
func MustLoadEnemyRegistry() *EnemyRegistry {
	registry, err := LoadEnemyRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnFor selects an enemy definition allowed in the fracture using
// weighted probability. Returns nil if no archetype matches.
func (r *EnemyRegistry) SpawnFor(fracture FractureDef, rng *rand.Rand) *EnemyDef {
	totalWeight := 0
	for i := range r.enemies {
		if fracture.AllowsTier(r.enemies[i].Tier) {
			totalWeight += r.enemies[i].SpawnWeight
		}
	}
	if totalWeight <= 0 {
		return nil
	}

	roll := rng.Intn(totalWeight)

	cumulative := 0
	for i := range r.enemies {
		if !fracture.AllowsTier(r.enemies[i].Tier) {
			continue
		}
		cumulative += r.enemies[i].SpawnWeight
		if roll < cumulative {
			return &r.enemies[i]
		}
	}
	return nil
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	for i := range r.enemies {
		if r.enemies[i].ID == id {
			return &r.enemies[i]
		}
	}
	return nil
}

// All returns all enemy definitions.
func (r *EnemyRegistry) All() []EnemyDef {
	return r.enemies
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}

// =============================================================================
// FractureRegistry
// =============================================================================

// FractureRegistry holds fracture definitions in hub display order.
type FractureRegistry struct {
	fractures []FractureDef
}

// NewFractureRegistry creates a registry from loaded fracture definitions.
func NewFractureRegistry(fractures []FractureDef) *FractureRegistry {
	return &FractureRegistry{fractures: fractures}
}

// LoadFractureRegistry loads and creates a registry from the embedded fractures.json.
func LoadFractureRegistry() (*FractureRegistry, error) {
	fractures, err := LoadFractures()
	if err != nil {
		return nil, err
	}
	if len(fractures) == 0 {
		return nil, errors.New("no fractures loaded from fractures.json")
	}
	return NewFractureRegistry(fractures), nil
}

// GetByID returns the fracture with the given ID, or nil if not found.
func (r *FractureRegistry) GetByID(id string) *FractureDef {
	for i := range r.fractures {
		if r.fractures[i].ID == id {
			return &r.fractures[i]
		}
	}
	return nil
}

// At returns the fracture at a hub slot, or nil when out of range.
func (r *FractureRegistry) At(index int) *FractureDef {
	if index < 0 || index >= len(r.fractures) {
		return nil
	}
	return &r.fractures[index]
}

// All returns all fracture definitions.
func (r *FractureRegistry) All() []FractureDef {
	return r.fractures
}
