package labyrinth

// State is the exploration state machine's current state.
type State int

const (
	// StateIdle is waiting for input.
	StateIdle State = iota
	// StateMoving is held only while a move resolves within AttemptMove.
	StateMoving
	// StateEncounter means an enemy was hit and control passed to combat.
	StateEncounter
	// StateReachedExit means the run was completed.
	StateReachedExit
	// StateEscaped means the run was abandoned.
	StateEscaped
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMoving:
		return "moving"
	case StateEncounter:
		return "encounter"
	case StateReachedExit:
		return "reached_exit"
	case StateEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}

// Terminal reports whether the run has ended for this labyrinth instance.
func (s State) Terminal() bool {
	return s == StateEncounter || s == StateReachedExit || s == StateEscaped
}

// Outcome is what a successful move led to.
type Outcome int

const (
	OutcomeMoved Outcome = iota
	OutcomeEncounter
	OutcomeReachedExit
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeEncounter:
		return "encounter"
	case OutcomeReachedExit:
		return "reached_exit"
	default:
		return "unknown"
	}
}

// CellKind tells the renderer how to fill a cell.
type CellKind int

const (
	CellWall CellKind = iota
	CellExplored
	CellFog
)
