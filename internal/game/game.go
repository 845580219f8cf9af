package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/fracturecrawl/internal/combat"
	"github.com/samdwyer/fracturecrawl/internal/entity"
	"github.com/samdwyer/fracturecrawl/internal/gamedata"
	"github.com/samdwyer/fracturecrawl/internal/labyrinth"
	"github.com/samdwyer/fracturecrawl/internal/run"
	"github.com/samdwyer/fracturecrawl/internal/telemetry"
	"github.com/samdwyer/fracturecrawl/internal/ui"
	"github.com/samdwyer/fracturecrawl/internal/world"
)

// ErrNoSnapshot is returned when combat ends with nothing to return to.
var ErrNoSnapshot = errors.New("no labyrinth snapshot to restore")

// Game holds the entire game state.
type Game struct {
	cfg      Config
	screen   *ui.Screen
	renderer *ui.Renderer
	log      logrus.FieldLogger
	rng      *rand.Rand

	enemyDefs *gamedata.EnemyRegistry
	fractures *gamedata.FractureRegistry

	player   *run.Progression
	rc       *run.Context
	lab      *labyrinth.Labyrinth
	snapshot *labyrinth.Snapshot
	duel     *combat.Duel
	foe      *entity.Enemy

	state   State
	message string
	running bool
}

// New creates a new game instance on the terminal.
func New(cfg Config, log logrus.FieldLogger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(cfg, log, screen), nil
}

// NewWithScreen creates a game drawing to an already initialized screen.
func NewWithScreen(cfg Config, log logrus.FieldLogger, screen *ui.Screen) *Game {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		log:      log.WithField("component", "game"),
		rng:      rand.New(rand.NewSource(seed)),
		player:   run.NewProgression(),
		state:    StateHub,
		running:  true,
	}
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	if err := g.init(ctx); err != nil {
		g.screen.Close()
		return err
	}

	// Main game loop
	for g.running {
		g.render()
		g.handleInput(ctx)
	}

	// Cleanup
	g.screen.Close()
	return nil
}

// init loads game data (traced).
func (g *Game) init(ctx context.Context) error {
	tracer := telemetry.Tracer("game")
	_, span := tracer.Start(ctx, "game.init")
	defer span.End()

	enemyDefs, err := gamedata.LoadEnemyRegistry()
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("load enemies: %w", err)
	}
	fractures, err := gamedata.LoadFractureRegistry()
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("load fractures: %w", err)
	}
	g.enemyDefs = enemyDefs
	g.fractures = fractures

	span.SetAttributes(
		attribute.Int("gamedata.enemies", enemyDefs.Count()),
		attribute.Int("gamedata.fractures", len(fractures.All())),
		attribute.Int("maze.width", g.cfg.MazeWidth),
		attribute.Int("maze.height", g.cfg.MazeHeight),
	)
	g.log.WithField("enemies", enemyDefs.Count()).Info("Game data loaded.")
	return nil
}

func (g *Game) render() {
	switch g.state {
	case StateHub:
		g.renderer.RenderHub(g.fractures.All(), g.player, g.message)
	case StateLabyrinth:
		g.renderer.RenderLabyrinth(g.lab, g.player, g.message)
	case StateCombat:
		g.renderer.RenderCombat(g.duel, g.foe)
	}
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
		g.running = false
		return
	}

	switch g.state {
	case StateHub:
		g.handleHubKey(ctx, ev)
	case StateLabyrinth:
		g.handleLabyrinthKey(ctx, ev)
	case StateCombat:
		g.handleCombatKey(ctx, ev)
	}
}

func (g *Game) handleHubKey(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape {
		g.running = false
		return
	}
	if ev.Key() == tcell.KeyRune && ev.Rune() >= '1' && ev.Rune() <= '9' {
		g.enterFracture(ctx, int(ev.Rune()-'1'))
	}
}

func (g *Game) handleLabyrinthKey(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyUp:
		g.tryMove(ctx, world.DirUp)
	case tcell.KeyDown:
		g.tryMove(ctx, world.DirDown)
	case tcell.KeyLeft:
		g.tryMove(ctx, world.DirLeft)
	case tcell.KeyRight:
		g.tryMove(ctx, world.DirRight)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'w', 'W':
			g.tryMove(ctx, world.DirUp)
		case 's', 'S':
			g.tryMove(ctx, world.DirDown)
		case 'a', 'A':
			g.tryMove(ctx, world.DirLeft)
		case 'd', 'D':
			g.tryMove(ctx, world.DirRight)
		case 'r', 'R':
			if g.lab.ToggleRevealMode() {
				g.message = "Reveal mode on."
			} else {
				g.message = "Reveal mode off."
			}
		case 'e', 'E':
			g.escape(ctx)
		}
	}
}

func (g *Game) handleCombatKey(ctx context.Context, ev *tcell.EventKey) {
	switch {
	case ev.Key() == tcell.KeyEscape:
		g.duel.Flee()
	case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
		g.duel.Exchange()
	default:
		return
	}
	if g.duel.Over() {
		g.endCombat(ctx)
	}
}

// enterFracture generates a labyrinth for the fracture at index.
func (g *Game) enterFracture(ctx context.Context, index int) {
	f := g.fractures.At(index)
	if f == nil {
		return
	}
	if !f.Unlocked(g.player.FractureIndex) {
		g.message = fmt.Sprintf("%s is locked. Clear %d fractures first.", f.Name, f.UnlockRequirement)
		return
	}

	g.rc = run.NewContext(g.player, *f)
	lab, err := labyrinth.Generate(ctx, g.rc, g.rng, g.enemyDefs,
		labyrinth.WithSize(g.cfg.MazeWidth, g.cfg.MazeHeight),
		labyrinth.WithLogger(g.log),
	)
	if err != nil {
		g.log.WithError(err).Error("Failed to generate labyrinth.")
		g.message = "The fracture collapsed. Try again."
		return
	}

	g.lab = lab
	g.state = StateLabyrinth
	g.message = fmt.Sprintf("Entered %s.", f.Name)
	g.log.WithField("fracture", f.ID).Info("Entered fracture.")
}

// tryMove moves the explorer and reacts to what happens on arrival.
func (g *Game) tryMove(ctx context.Context, dir world.Direction) {
	res, err := g.lab.AttemptMove(ctx, dir)
	if err != nil {
		return
	}
	g.message = ""

	switch res.Outcome {
	case labyrinth.OutcomeReachedExit:
		g.message = "Fracture cleared! +10 crystals, +5 gears, +50 XP."
		if res.LeveledUp {
			g.message += fmt.Sprintf(" Level up! Now level %d.", g.player.Level)
		}
		g.leaveLabyrinth()
	case labyrinth.OutcomeEncounter:
		g.startCombat(ctx, res.Enemy, res.Snapshot)
	}
}

// escape abandons the current run.
func (g *Game) escape(ctx context.Context) {
	if g.lab.Escape(ctx) {
		g.message = "Escaped! +5 crystals, +2 gears."
		g.leaveLabyrinth()
	}
}

func (g *Game) leaveLabyrinth() {
	g.lab = nil
	g.snapshot = nil
	g.state = StateHub
}

// startCombat parks the labyrinth in its snapshot and opens a duel.
func (g *Game) startCombat(ctx context.Context, foe *entity.Enemy, snap *labyrinth.Snapshot) {
	g.snapshot = snap
	g.lab = nil
	g.foe = foe
	g.duel = combat.NewDuel(combat.NewExplorer(), foe, foe.Damage())
	g.state = StateCombat

	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.start")
	span.SetAttributes(
		attribute.String("enemy.id", foe.ID()),
		attribute.Int("enemy.hp", foe.GetHP()),
		attribute.Int("enemy.damage", foe.Damage()),
	)
	span.End()
}

// endCombat applies the outcome and leaves the combat scene.
func (g *Game) endCombat(ctx context.Context) {
	outcome := g.duel.Outcome

	tracer := telemetry.Tracer("combat")
	_, span := tracer.Start(ctx, "combat.end")
	span.SetAttributes(
		attribute.String("outcome", outcome.String()),
		attribute.Int("rounds", g.duel.Rounds),
		attribute.Int("player_hp_remaining", g.duel.Player.GetHP()),
	)
	span.End()

	g.log.WithFields(logrus.Fields{
		"enemy":   g.foe.ID(),
		"outcome": outcome.String(),
		"rounds":  g.duel.Rounds,
	}).Info("Combat ended.")

	switch outcome {
	case combat.OutcomeVictory:
		g.message = fmt.Sprintf("%s defeated! +20 XP, +3 crystals, +1 gear.", g.foe.Name())
		if run.ApplyCombatVictory(g.player) {
			g.message += fmt.Sprintf(" Level up! Now level %d.", g.player.Level)
		}
		g.resume(ctx)
	case combat.OutcomeFled:
		g.message = "You slip back into the maze."
		g.resume(ctx)
	case combat.OutcomeDefeat:
		run.ApplyCombatDefeat(g.player)
		g.message = "Defeated. You lost some of your resources."
		g.leaveLabyrinth()
	}

	g.duel = nil
	g.foe = nil
}

// resume rebuilds the labyrinth from the snapshot taken at the encounter.
func (g *Game) resume(ctx context.Context) {
	if err := g.restoreLabyrinth(ctx); err != nil {
		g.log.WithError(err).Error("Failed to restore labyrinth.")
		g.message = "The fracture closed behind you."
		g.leaveLabyrinth()
	}
}

func (g *Game) restoreLabyrinth(ctx context.Context) error {
	if g.snapshot == nil {
		return ErrNoSnapshot
	}
	lab, err := labyrinth.Restore(ctx, g.rc, g.snapshot, labyrinth.WithLogger(g.log))
	g.snapshot = nil
	if err != nil {
		return fmt.Errorf("restore labyrinth: %w", err)
	}
	g.lab = lab
	g.state = StateLabyrinth
	return nil
}
