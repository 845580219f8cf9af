// Package game provides the main game loop and scene management.
package game

// State represents the active scene.
type State int

const (
	// StateHub is the fracture selection screen between runs.
	StateHub State = iota
	// StateLabyrinth is exploration of a generated maze.
	StateLabyrinth
	// StateCombat is a duel with an encountered enemy.
	StateCombat
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateHub:
		return "hub"
	case StateLabyrinth:
		return "labyrinth"
	case StateCombat:
		return "combat"
	default:
		return "unknown"
	}
}
