package labyrinth

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidMove is the parent of every rejected move. Callers normally
	// ignore it; nothing changes when it is returned.
	ErrInvalidMove = errors.New("invalid move")
	// ErrOutOfBounds means the target cell is off the grid.
	ErrOutOfBounds = fmt.Errorf("%w: out of bounds", ErrInvalidMove)
	// ErrBlocked means the target cell is a wall.
	ErrBlocked = fmt.Errorf("%w: blocked by wall", ErrInvalidMove)
	// ErrNotIdle means a move was attempted outside StateIdle.
	ErrNotIdle = errors.New("labyrinth is not accepting moves")
	// ErrSnapshotConsumed means a snapshot was restored a second time.
	ErrSnapshotConsumed = errors.New("snapshot already restored")
)
