// Package labyrinth runs one exploration of a generated maze: player
// movement, fog of war, enemy encounters, exits and escapes, and the
// snapshot that carries a run across a combat detour.
package labyrinth

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/fracturecrawl/internal/entity"
	"github.com/samdwyer/fracturecrawl/internal/gamedata"
	"github.com/samdwyer/fracturecrawl/internal/logger"
	"github.com/samdwyer/fracturecrawl/internal/run"
	"github.com/samdwyer/fracturecrawl/internal/telemetry"
	"github.com/samdwyer/fracturecrawl/internal/world"
)

// Option configures a labyrinth.
type Option func(*options)

type options struct {
	width, height int
	log           logrus.FieldLogger
}

// WithSize overrides the generated maze dimensions.
func WithSize(width, height int) Option {
	return func(o *options) {
		o.width = width
		o.height = height
	}
}

// WithLogger sets the logger. The default discards output.
func WithLogger(log logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = log
	}
}

func buildOptions(opts []Option) options {
	o := options{
		width:  world.DefaultWidth,
		height: world.DefaultHeight,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.log == nil {
		o.log = logger.Discard()
	}
	return o
}

// MoveResult describes a successful move.
type MoveResult struct {
	Outcome   Outcome
	From, To  world.Position
	Enemy     *entity.Enemy // Set on OutcomeEncounter
	Snapshot  *Snapshot     // Set on OutcomeEncounter
	LeveledUp bool          // Set on OutcomeReachedExit
}

// Labyrinth is the exploration state machine for a single run.
type Labyrinth struct {
	rc      *run.Context
	maze    *world.Maze
	fog     *world.Fog
	enemies *entity.EncounterIndex
	player  world.Position
	exit    world.Position

	state      State
	revealMode bool
	log        logrus.FieldLogger
}

// Generate builds a fresh labyrinth for rc's fracture: carves the maze,
// places the exit and spawns 5 + 2×difficulty enemies. registry may be nil,
// in which case every enemy uses default stats.
func Generate(ctx context.Context, rc *run.Context, rng *rand.Rand, registry *gamedata.EnemyRegistry, opts ...Option) (*Labyrinth, error) {
	o := buildOptions(opts)

	tracer := telemetry.Tracer("labyrinth")
	ctx, span := tracer.Start(ctx, "labyrinth.generate")
	defer span.End()

	maze, start, err := world.Generate(ctx, o.width, o.height, rng)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("generate labyrinth: %w", err)
	}

	exit, degenerate := world.PlaceExit(maze, start, rng)
	if degenerate {
		o.log.WithFields(logrus.Fields{
			"component": "labyrinth",
			"width":     o.width,
			"height":    o.height,
			"exit":      exit.String(),
		}).Warn("No path cell available for the exit; using the opposite corner.")
		span.SetAttributes(attribute.Bool("labyrinth.degenerate_exit", true))
	}

	count := run.EnemyCount(rc.Fracture.Difficulty)
	positions := world.SpawnPositions(maze, start, exit, count, rng)
	enemies := make([]*entity.Enemy, 0, len(positions))
	for _, p := range positions {
		var def *gamedata.EnemyDef
		if registry != nil {
			def = registry.SpawnFor(rc.Fracture, rng)
		}
		enemies = append(enemies, entity.NewEnemyFromDef(def, p))
	}

	span.SetAttributes(
		attribute.String("fracture.id", rc.Fracture.ID),
		attribute.Int("fracture.difficulty", rc.Fracture.Difficulty),
		attribute.Int("labyrinth.enemies", len(enemies)),
		attribute.Int("labyrinth.start_x", start.X),
		attribute.Int("labyrinth.start_y", start.Y),
		attribute.Int("labyrinth.exit_x", exit.X),
		attribute.Int("labyrinth.exit_y", exit.Y),
	)

	return New(rc, maze, start, exit, enemies, opts...), nil
}

// New assembles a labyrinth from prepared parts with a fresh fog grid and
// the start cell revealed. The labyrinth takes ownership of maze and enemies.
func New(rc *run.Context, maze *world.Maze, start, exit world.Position, enemies []*entity.Enemy, opts ...Option) *Labyrinth {
	l := assemble(rc, maze, world.NewFog(maze.Width, maze.Height), entity.NewEncounterIndex(enemies), start, exit, buildOptions(opts))
	l.fog.Reveal(start)
	return l
}

// Restore resumes a run from a snapshot taken at an encounter. The snapshot
// is consumed; restoring it again returns ErrSnapshotConsumed.
func Restore(ctx context.Context, rc *run.Context, snap *Snapshot, opts ...Option) (*Labyrinth, error) {
	tracer := telemetry.Tracer("labyrinth")
	_, span := tracer.Start(ctx, "labyrinth.restore")
	defer span.End()

	p, err := snap.Restore()
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("restore labyrinth: %w", err)
	}

	l := assemble(rc, p.Maze, p.Fog, entity.NewEncounterIndex(p.Enemies), p.Player, p.Exit, buildOptions(opts))
	span.SetAttributes(
		attribute.Int("labyrinth.enemies", l.enemies.Len()),
		attribute.Int("labyrinth.explored", l.fog.ExploredCount()),
	)
	return l, nil
}

func assemble(rc *run.Context, maze *world.Maze, fog *world.Fog, enemies *entity.EncounterIndex, player, exit world.Position, o options) *Labyrinth {
	return &Labyrinth{
		rc:      rc,
		maze:    maze,
		fog:     fog,
		enemies: enemies,
		player:  player,
		exit:    exit,
		state:   StateIdle,
		log:     o.log.WithField("component", "labyrinth"),
	}
}

// AttemptMove moves the player one cell. Rejected moves return an error
// wrapping ErrInvalidMove and leave every piece of state untouched.
func (l *Labyrinth) AttemptMove(ctx context.Context, dir world.Direction) (MoveResult, error) {
	if l.state != StateIdle {
		return MoveResult{}, fmt.Errorf("move %s in state %s: %w", dir, l.state, ErrNotIdle)
	}

	from := l.player
	target := from.Add(dir)

	if !l.maze.InBounds(target) {
		l.log.WithField("target", target.String()).Debug("Move out of bounds.")
		return MoveResult{}, fmt.Errorf("move %s to %v: %w", dir, target, ErrOutOfBounds)
	}
	if !l.maze.IsPassable(target) {
		l.log.WithField("target", target.String()).Debug("Move blocked by wall.")
		return MoveResult{}, fmt.Errorf("move %s to %v: %w", dir, target, ErrBlocked)
	}

	l.state = StateMoving
	l.player = target
	l.fog.Reveal(target)

	result := MoveResult{Outcome: OutcomeMoved, From: from, To: target}

	if target == l.exit {
		result.Outcome = OutcomeReachedExit
		result.LeveledUp = l.reachExit(ctx)
		return result, nil
	}

	if enemy := l.enemies.At(target); enemy != nil {
		result.Outcome = OutcomeEncounter
		result.Enemy = enemy
		result.Snapshot = l.encounter(ctx, enemy)
		return result, nil
	}

	l.state = StateIdle
	return result, nil
}

// encounter removes the enemy and snapshots what remains.
func (l *Labyrinth) encounter(ctx context.Context, enemy *entity.Enemy) *Snapshot {
	tracer := telemetry.Tracer("labyrinth")
	_, span := tracer.Start(ctx, "labyrinth.encounter")
	defer span.End()

	l.enemies.Remove(enemy)
	snap := Capture(l.maze, l.fog, l.enemies.All(), l.player, l.exit)
	l.state = StateEncounter

	span.SetAttributes(
		attribute.String("enemy.id", enemy.ID()),
		attribute.Int("enemy.hp", enemy.HP),
		attribute.Int("labyrinth.enemies_remaining", l.enemies.Len()),
	)
	l.log.WithFields(logrus.Fields{
		"enemy":     enemy.ID(),
		"position":  l.player.String(),
		"remaining": l.enemies.Len(),
	}).Info("Enemy encountered.")

	return snap
}

// reachExit applies the exit reward and ends the run.
func (l *Labyrinth) reachExit(ctx context.Context) bool {
	tracer := telemetry.Tracer("labyrinth")
	_, span := tracer.Start(ctx, "labyrinth.exit")
	defer span.End()

	explored := l.fog.ExploredCount()
	leveledUp := run.ApplyExitReward(l.rc.Player)
	l.release()
	l.state = StateReachedExit

	span.SetAttributes(
		attribute.Int("labyrinth.explored", explored),
		attribute.Bool("player.leveled_up", leveledUp),
		attribute.Int("player.level", l.rc.Player.Level),
	)
	l.log.WithFields(logrus.Fields{
		"level":     l.rc.Player.Level,
		"leveledUp": leveledUp,
	}).Info("Exit reached.")

	return leveledUp
}

// Escape abandons the run, granting the escape reward and dropping all
// labyrinth state. It never fails; on an already finished run it does
// nothing and returns false.
func (l *Labyrinth) Escape(ctx context.Context) bool {
	if l.state.Terminal() {
		return false
	}

	tracer := telemetry.Tracer("labyrinth")
	_, span := tracer.Start(ctx, "labyrinth.escape")
	defer span.End()

	span.SetAttributes(attribute.Int("labyrinth.enemies_remaining", l.enemies.Len()))

	run.ApplyEscapeReward(l.rc.Player)
	l.release()
	l.state = StateEscaped

	l.log.Info("Escaped to hub.")
	return true
}

func (l *Labyrinth) release() {
	l.maze = nil
	l.fog = nil
	l.enemies = nil
	l.revealMode = false
}

// ToggleRevealMode flips enemy reveal mode and returns the new value.
func (l *Labyrinth) ToggleRevealMode() bool {
	l.revealMode = !l.revealMode
	return l.revealMode
}

// RevealMode reports whether all enemies are being shown.
func (l *Labyrinth) RevealMode() bool { return l.revealMode }

// State returns the current state machine state.
func (l *Labyrinth) State() State { return l.state }

// Context returns the run context.
func (l *Labyrinth) Context() *run.Context { return l.rc }

// Player returns the player's cell.
func (l *Labyrinth) Player() world.Position { return l.player }

// Exit returns the exit cell.
func (l *Labyrinth) Exit() world.Position { return l.exit }

// Released reports whether the grids were dropped at the end of the run.
func (l *Labyrinth) Released() bool { return l.maze == nil }

// Width returns the maze width, or 0 once released.
func (l *Labyrinth) Width() int {
	if l.maze == nil {
		return 0
	}
	return l.maze.Width
}

// Height returns the maze height, or 0 once released.
func (l *Labyrinth) Height() int {
	if l.maze == nil {
		return 0
	}
	return l.maze.Height
}

// CellAt classifies a cell for rendering.
func (l *Labyrinth) CellAt(p world.Position) CellKind {
	if l.maze == nil || l.maze.GetTile(p) == world.TileWall {
		return CellWall
	}
	if l.fog.IsVisible(p) {
		return CellExplored
	}
	return CellFog
}

// Explored reports whether the player has ever been on p.
func (l *Labyrinth) Explored(p world.Position) bool {
	return l.fog != nil && l.fog.IsVisible(p)
}

// ExploredCount returns how many cells have been explored.
func (l *Labyrinth) ExploredCount() int {
	if l.fog == nil {
		return 0
	}
	return l.fog.ExploredCount()
}

// Enemies returns the remaining enemies in spawn order.
func (l *Labyrinth) Enemies() []*entity.Enemy {
	if l.enemies == nil {
		return nil
	}
	return l.enemies.All()
}

// EnemyVisible reports whether e should be drawn this frame.
func (l *Labyrinth) EnemyVisible(e *entity.Enemy) bool {
	if l.fog == nil {
		return false
	}
	return entity.IsEnemyVisible(e, l.fog, l.revealMode)
}
