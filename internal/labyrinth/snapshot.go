package labyrinth

import (
	"encoding/json"
	"fmt"

	"github.com/samdwyer/fracturecrawl/internal/entity"
	"github.com/samdwyer/fracturecrawl/internal/gamedata"
	"github.com/samdwyer/fracturecrawl/internal/world"
)

// Snapshot is an independent copy of a labyrinth taken when combat begins.
// It is restored exactly once.
type Snapshot struct {
	maze     *world.Maze
	fog      *world.Fog
	enemies  []*entity.Enemy
	player   world.Position
	exit     world.Position
	consumed bool
}

// Preserved is the labyrinth state handed back by Snapshot.Restore.
type Preserved struct {
	Maze    *world.Maze
	Fog     *world.Fog
	Enemies []*entity.Enemy
	Player  world.Position
	Exit    world.Position
}

// Capture deep-copies the given state. Later changes to the arguments do
// not affect the snapshot.
func Capture(maze *world.Maze, fog *world.Fog, enemies []*entity.Enemy, player, exit world.Position) *Snapshot {
	return &Snapshot{
		maze:    maze.Clone(),
		fog:     fog.Clone(),
		enemies: cloneEnemies(enemies),
		player:  player,
		exit:    exit,
	}
}

func cloneEnemies(enemies []*entity.Enemy) []*entity.Enemy {
	out := make([]*entity.Enemy, len(enemies))
	for i, e := range enemies {
		out[i] = e.Clone()
	}
	return out
}

// Restore hands out the captured state. The snapshot keeps nothing the
// caller can alias, and any later call returns ErrSnapshotConsumed.
func (s *Snapshot) Restore() (Preserved, error) {
	if s.consumed {
		return Preserved{}, ErrSnapshotConsumed
	}
	s.consumed = true

	p := Preserved{
		Maze:    s.maze,
		Fog:     s.fog,
		Enemies: s.enemies,
		Player:  s.player,
		Exit:    s.exit,
	}
	s.maze, s.fog, s.enemies = nil, nil, nil
	return p, nil
}

// Consumed reports whether Restore has already been called.
func (s *Snapshot) Consumed() bool { return s.consumed }

// Player returns the captured player position.
func (s *Snapshot) Player() world.Position { return s.player }

// Exit returns the captured exit position.
func (s *Snapshot) Exit() world.Position { return s.exit }

// EnemyCount returns how many enemies the snapshot holds.
func (s *Snapshot) EnemyCount() int { return len(s.enemies) }

// EnemyAt returns a copy of the captured enemy on p, or nil.
func (s *Snapshot) EnemyAt(p world.Position) *entity.Enemy {
	for _, e := range s.enemies {
		if e.Position() == p {
			return e.Clone()
		}
	}
	return nil
}

type snapshotJSON struct {
	Maze    []string       `json:"maze"`
	Fog     []string       `json:"fog"`
	Enemies []enemyJSON    `json:"enemies"`
	Player  world.Position `json:"player"`
	Exit    world.Position `json:"exit"`
}

type enemyJSON struct {
	Def   *gamedata.EnemyDef `json:"def,omitempty"`
	X     int                `json:"x"`
	Y     int                `json:"y"`
	HP    int                `json:"hp"`
	MaxHP int                `json:"maxHp"`
}

// MarshalJSON encodes the captured state. Consumed snapshots cannot be encoded.
func (s *Snapshot) MarshalJSON() ([]byte, error) {
	if s.consumed {
		return nil, ErrSnapshotConsumed
	}
	out := snapshotJSON{
		Maze:    s.maze.Rows(),
		Fog:     s.fog.Rows(),
		Enemies: make([]enemyJSON, len(s.enemies)),
		Player:  s.player,
		Exit:    s.exit,
	}
	for i, e := range s.enemies {
		out.Enemies[i] = enemyJSON{Def: e.Def, X: e.X, Y: e.Y, HP: e.HP, MaxHP: e.MaxHP}
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a snapshot into an unconsumed state.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	var in snapshotJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}

	maze, err := world.ParseMaze(in.Maze)
	if err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}
	if len(in.Fog) != maze.Height {
		return fmt.Errorf("decode snapshot: fog has %d rows, maze has %d", len(in.Fog), maze.Height)
	}

	enemies := make([]*entity.Enemy, len(in.Enemies))
	for i, e := range in.Enemies {
		enemies[i] = &entity.Enemy{Def: e.Def, X: e.X, Y: e.Y, HP: e.HP, MaxHP: e.MaxHP}
	}

	*s = Snapshot{
		maze:    maze,
		fog:     world.ParseFog(maze.Width, in.Fog),
		enemies: enemies,
		player:  in.Player,
		exit:    in.Exit,
	}
	return nil
}
