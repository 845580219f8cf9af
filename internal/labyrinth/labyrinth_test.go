package labyrinth

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/samdwyer/fracturecrawl/internal/entity"
	"github.com/samdwyer/fracturecrawl/internal/gamedata"
	"github.com/samdwyer/fracturecrawl/internal/run"
	"github.com/samdwyer/fracturecrawl/internal/telemetry"
	"github.com/samdwyer/fracturecrawl/internal/world"
)

func pos(x, y int) world.Position { return world.Position{X: x, Y: y} }

// carve builds a wall-filled maze and opens the given straight segments.
func carve(width, height int, segments ...[2]world.Position) *world.Maze {
	m := world.NewMaze(width, height)
	for _, seg := range segments {
		from, to := seg[0], seg[1]
		for y := min(from.Y, to.Y); y <= max(from.Y, to.Y); y++ {
			for x := min(from.X, to.X); x <= max(from.X, to.X); x++ {
				m.Tiles[y][x] = world.TilePath
			}
		}
	}
	return m
}

// scenario is a 30×20 maze: (1,1) → (5,1) → (5,8), exit at (5,8), one enemy
// at (5,5), one at (5,7) and one in an isolated cell at (10,10).
func scenario(t *testing.T) (*Labyrinth, *run.Context) {
	t.Helper()
	m := carve(world.DefaultWidth, world.DefaultHeight,
		[2]world.Position{pos(1, 1), pos(5, 1)},
		[2]world.Position{pos(5, 1), pos(5, 8)},
		[2]world.Position{pos(10, 10), pos(10, 10)},
	)
	enemies := []*entity.Enemy{
		entity.NewEnemy(pos(5, 5)),
		entity.NewEnemy(pos(5, 7)),
		entity.NewEnemy(pos(10, 10)),
	}
	rc := run.NewContext(run.NewProgression(), gamedata.UnknownFracture)
	return New(rc, m, pos(1, 1), pos(5, 8), enemies), rc
}

func mustMove(t *testing.T, l *Labyrinth, dirs ...world.Direction) MoveResult {
	t.Helper()
	var res MoveResult
	for _, d := range dirs {
		var err error
		res, err = l.AttemptMove(context.Background(), d)
		if err != nil {
			t.Fatalf("AttemptMove(%s) from %v: %v", d, l.Player(), err)
		}
	}
	return res
}

func TestNewRevealsSpawnCell(t *testing.T) {
	l, _ := scenario(t)

	if l.State() != StateIdle {
		t.Errorf("State() = %s, want idle", l.State())
	}
	if !l.Explored(pos(1, 1)) || l.ExploredCount() != 1 {
		t.Errorf("spawn cell should be the only explored cell, got %d", l.ExploredCount())
	}
	if l.CellAt(pos(1, 1)) != CellExplored || l.CellAt(pos(2, 1)) != CellFog || l.CellAt(pos(0, 0)) != CellWall {
		t.Error("CellAt does not follow the fog policy")
	}
}

func TestEncounterScenario(t *testing.T) {
	l, _ := scenario(t)

	mustMove(t, l, world.DirRight, world.DirRight, world.DirRight, world.DirRight,
		world.DirDown, world.DirDown, world.DirDown)
	res := mustMove(t, l, world.DirDown)

	if res.Outcome != OutcomeEncounter {
		t.Fatalf("Outcome = %s, want encounter", res.Outcome)
	}
	if res.Enemy == nil || res.Enemy.Position() != pos(5, 5) || res.Enemy.HP != 50 {
		t.Fatalf("Enemy = %+v, want the enemy from (5,5)", res.Enemy)
	}
	if l.State() != StateEncounter {
		t.Errorf("State() = %s, want encounter", l.State())
	}
	for _, e := range l.Enemies() {
		if e.Position() == pos(5, 5) {
			t.Error("encountered enemy still in the live collection")
		}
	}

	snap := res.Snapshot
	if snap == nil {
		t.Fatal("encounter produced no snapshot")
	}
	if snap.EnemyAt(pos(5, 5)) != nil {
		t.Error("snapshot still holds an enemy at (5,5)")
	}
	if snap.EnemyCount() != 2 {
		t.Errorf("snapshot EnemyCount() = %d, want 2", snap.EnemyCount())
	}
	if snap.Player() != pos(5, 5) || snap.Exit() != pos(5, 8) {
		t.Errorf("snapshot player %v exit %v", snap.Player(), snap.Exit())
	}

	if _, err := l.AttemptMove(context.Background(), world.DirDown); !errors.Is(err, ErrNotIdle) {
		t.Errorf("move during encounter error = %v, want ErrNotIdle", err)
	}
}

func TestMoveIntoBorderRejected(t *testing.T) {
	l, _ := scenario(t)
	fogBefore := l.fog.Clone()
	enemiesBefore := l.enemies.Clone().All()

	_, err := l.AttemptMove(context.Background(), world.DirLeft)
	if !errors.Is(err, ErrInvalidMove) || !errors.Is(err, ErrBlocked) {
		t.Fatalf("LEFT from (1,1) error = %v, want ErrBlocked", err)
	}
	if l.Player() != pos(1, 1) {
		t.Errorf("Player() = %v, want (1,1)", l.Player())
	}
	if !l.fog.Equal(fogBefore) {
		t.Error("rejected move changed the fog")
	}
	if !reflect.DeepEqual(l.Enemies(), enemiesBefore) {
		t.Error("rejected move changed the enemies")
	}
	if l.State() != StateIdle {
		t.Errorf("State() = %s after rejected move", l.State())
	}
}

func TestMoveOutOfBoundsRejected(t *testing.T) {
	m := carve(5, 5, [2]world.Position{pos(0, 2), pos(2, 2)})
	l := New(run.NewContext(nil, gamedata.FractureDef{}), m, pos(0, 2), pos(2, 2), nil)

	_, err := l.AttemptMove(context.Background(), world.DirLeft)
	if !errors.Is(err, ErrOutOfBounds) || !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("error = %v, want ErrOutOfBounds", err)
	}
	if l.Player() != pos(0, 2) || l.ExploredCount() != 1 {
		t.Error("out-of-bounds move changed state")
	}
}

func TestInvalidMovesLeaveGeneratedStateUnchanged(t *testing.T) {
	ctx := context.Background()
	for seed := int64(1); seed <= 10; seed++ {
		rc := run.NewContext(nil, gamedata.UnknownFracture)
		l, err := Generate(ctx, rc, rand.New(rand.NewSource(seed)), nil)
		if err != nil {
			t.Fatal(err)
		}
		for _, d := range world.Directions {
			if l.maze.IsPassable(l.Player().Add(d)) {
				continue
			}
			player, fog, enemies := l.Player(), l.fog.Clone(), l.enemies.Clone().All()
			if _, err := l.AttemptMove(ctx, d); !errors.Is(err, ErrInvalidMove) {
				t.Fatalf("seed %d: move %s into wall error = %v", seed, d, err)
			}
			if l.Player() != player || !l.fog.Equal(fog) || !reflect.DeepEqual(l.Enemies(), enemies) {
				t.Fatalf("seed %d: rejected move %s changed state", seed, d)
			}
		}
	}
}

func TestFogFollowsPlayer(t *testing.T) {
	l, _ := scenario(t)
	mustMove(t, l, world.DirRight, world.DirRight, world.DirLeft)

	for _, p := range []world.Position{pos(1, 1), pos(2, 1), pos(3, 1)} {
		if !l.Explored(p) {
			t.Errorf("%v should be explored", p)
		}
	}
	if l.Explored(pos(4, 1)) {
		t.Error("(4,1) was never visited")
	}
	if l.ExploredCount() != 3 {
		t.Errorf("ExploredCount() = %d, want 3 (revisits are idempotent)", l.ExploredCount())
	}
}

func TestRevealModeToggle(t *testing.T) {
	l, _ := scenario(t)
	mustMove(t, l, world.DirRight)

	before := make([]bool, len(l.Enemies()))
	for i, e := range l.Enemies() {
		before[i] = l.EnemyVisible(e)
		if before[i] {
			t.Errorf("enemy at %v visible before exploring it", e.Position())
		}
	}

	if !l.ToggleRevealMode() {
		t.Fatal("first toggle should enable reveal mode")
	}
	for _, e := range l.Enemies() {
		if !l.EnemyVisible(e) {
			t.Errorf("enemy at %v hidden in reveal mode", e.Position())
		}
	}

	if l.ToggleRevealMode() {
		t.Fatal("second toggle should disable reveal mode")
	}
	for i, e := range l.Enemies() {
		if l.EnemyVisible(e) != before[i] {
			t.Errorf("enemy %d visibility changed after toggling twice", i)
		}
	}
}

func TestReachExitRewards(t *testing.T) {
	l, rc := scenario(t)
	l.enemies = entity.NewEncounterIndex(nil)

	mustMove(t, l, world.DirRight, world.DirRight, world.DirRight, world.DirRight,
		world.DirDown, world.DirDown, world.DirDown, world.DirDown, world.DirDown, world.DirDown)
	res := mustMove(t, l, world.DirDown)

	if res.Outcome != OutcomeReachedExit {
		t.Fatalf("Outcome = %s, want reached_exit", res.Outcome)
	}
	p := rc.Player
	if p.Resources.Crystals != 10 || p.Resources.Gears != 5 || p.Experience != 50 {
		t.Errorf("rewards = %+v xp %d", p.Resources, p.Experience)
	}
	if res.LeveledUp || p.Level != 1 {
		t.Error("50 experience should not level up")
	}
	if l.State() != StateReachedExit || !l.Released() {
		t.Errorf("State() = %s, Released() = %v", l.State(), l.Released())
	}
	if l.Escape(context.Background()) {
		t.Error("Escape after reaching the exit should do nothing")
	}
	if p.Resources.Crystals != 10 {
		t.Error("Escape after exit paid out again")
	}
}

func TestReachExitSingleLevelUp(t *testing.T) {
	m := carve(5, 3, [2]world.Position{pos(1, 1), pos(2, 1)})
	rc := run.NewContext(run.NewProgression(), gamedata.UnknownFracture)
	rc.Player.Experience = 390
	l := New(rc, m, pos(1, 1), pos(2, 1), nil)

	res := mustMove(t, l, world.DirRight)
	if !res.LeveledUp {
		t.Fatal("expected a level up")
	}
	if rc.Player.Level != 2 || rc.Player.Experience != 340 || rc.Player.SkillPoints != 1 {
		t.Errorf("level %d xp %d sp %d, want 2/340/1", rc.Player.Level, rc.Player.Experience, rc.Player.SkillPoints)
	}
}

func TestEscape(t *testing.T) {
	l, rc := scenario(t)
	rc.Player.FractureIndex = 2
	mustMove(t, l, world.DirRight)
	l.ToggleRevealMode()

	if !l.Escape(context.Background()) {
		t.Fatal("Escape() = false from idle")
	}
	if rc.Player.Resources.Crystals != 5 || rc.Player.Resources.Gears != 2 {
		t.Errorf("escape rewards = %+v", rc.Player.Resources)
	}
	if rc.Player.FractureIndex != 2 {
		t.Errorf("FractureIndex = %d, escape must not progress difficulty", rc.Player.FractureIndex)
	}
	if l.State() != StateEscaped || !l.Released() {
		t.Error("escape should release the run")
	}
	if l.maze != nil || l.fog != nil || l.enemies != nil || l.RevealMode() {
		t.Error("escape left residual run state")
	}
	if l.Enemies() != nil || l.Width() != 0 || l.CellAt(pos(1, 1)) != CellWall || l.ExploredCount() != 0 {
		t.Error("queries on a released labyrinth should report nothing")
	}
	if l.Escape(context.Background()) {
		t.Error("second Escape() should be a no-op")
	}
	if rc.Player.Resources.Crystals != 5 {
		t.Error("second Escape() paid out again")
	}
	if _, err := l.AttemptMove(context.Background(), world.DirRight); !errors.Is(err, ErrNotIdle) {
		t.Errorf("move after escape error = %v, want ErrNotIdle", err)
	}
}

func TestGenerate(t *testing.T) {
	registry := gamedata.MustLoadEnemyRegistry()
	fractures, err := gamedata.LoadFractureRegistry()
	if err != nil {
		t.Fatal(err)
	}

	for _, fracture := range fractures.All() {
		rc := run.NewContext(nil, fracture)
		l, err := Generate(context.Background(), rc, rand.New(rand.NewSource(42)), registry)
		if err != nil {
			t.Fatalf("%s: Generate error: %v", fracture.ID, err)
		}

		if l.Width() != world.DefaultWidth || l.Height() != world.DefaultHeight {
			t.Errorf("%s: size %dx%d", fracture.ID, l.Width(), l.Height())
		}
		if want := run.EnemyCount(fracture.Difficulty); len(l.Enemies()) != want {
			t.Errorf("%s: %d enemies, want %d", fracture.ID, len(l.Enemies()), want)
		}
		if l.Exit() == l.Player() || l.CellAt(l.Exit()) == CellWall {
			t.Errorf("%s: bad exit %v (start %v)", fracture.ID, l.Exit(), l.Player())
		}
		if !l.Explored(l.Player()) || l.ExploredCount() != 1 {
			t.Errorf("%s: only the start should be explored", fracture.ID)
		}

		seen := map[world.Position]bool{}
		for _, e := range l.Enemies() {
			p := e.Position()
			if l.CellAt(p) == CellWall || p == l.Player() || p == l.Exit() || seen[p] {
				t.Errorf("%s: bad enemy cell %v", fracture.ID, p)
			}
			seen[p] = true
			if e.Def == nil || !fracture.AllowsTier(e.Def.Tier) {
				t.Errorf("%s: enemy archetype %v not allowed", fracture.ID, e.Def)
			}
			if e.HP != e.Def.HP || e.MaxHP != e.Def.HP {
				t.Errorf("%s: enemy HP %d/%d, want %d", fracture.ID, e.HP, e.MaxHP, e.Def.HP)
			}
		}
	}
}

func TestGenerateSizeOptionAndErrors(t *testing.T) {
	rc := run.NewContext(nil, gamedata.UnknownFracture)
	l, err := Generate(context.Background(), rc, rand.New(rand.NewSource(1)), nil, WithSize(11, 9))
	if err != nil {
		t.Fatal(err)
	}
	if l.Width() != 11 || l.Height() != 9 {
		t.Errorf("size = %dx%d, want 11x9", l.Width(), l.Height())
	}
	for _, e := range l.Enemies() {
		if e.HP != entity.DefaultHP {
			t.Errorf("nil registry should spawn default enemies, got HP %d", e.HP)
		}
	}

	if _, err := Generate(context.Background(), rc, rand.New(rand.NewSource(1)), nil, WithSize(2, 2)); !errors.Is(err, world.ErrGridTooSmall) {
		t.Errorf("tiny grid error = %v, want ErrGridTooSmall", err)
	}
}

func TestGenerateDegenerateExitLogsWarning(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	rc := run.NewContext(nil, gamedata.UnknownFracture)

	l, err := Generate(context.Background(), rc, rand.New(rand.NewSource(1)), nil, WithSize(4, 4), WithLogger(log))
	if err != nil {
		t.Fatal(err)
	}
	if l.Exit() == l.Player() {
		t.Error("fallback exit must differ from start")
	}
	if len(l.Enemies()) != 0 {
		t.Errorf("single-cell maze spawned %d enemies", len(l.Enemies()))
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("expected a warning for the degenerate exit, got %v", entry)
	}
}

func TestRejectedMoveIsLoggedAtDebug(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	m := carve(5, 3, [2]world.Position{pos(1, 1), pos(3, 1)})
	l := New(run.NewContext(nil, gamedata.FractureDef{}), m, pos(1, 1), pos(3, 1), nil, WithLogger(log))
	_, _ = l.AttemptMove(context.Background(), world.DirUp)

	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.DebugLevel || entry.Data["component"] != "labyrinth" {
		t.Fatalf("unexpected log entry: %v", entry)
	}
}

func TestEncounterIsTraced(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	telemetry.Install(tp)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	l, _ := scenario(t)
	mustMove(t, l, world.DirRight, world.DirRight, world.DirRight, world.DirRight,
		world.DirDown, world.DirDown, world.DirDown, world.DirDown)

	found := false
	for _, span := range recorder.Ended() {
		if span.Name() == "labyrinth.encounter" {
			found = true
		}
	}
	if !found {
		t.Error("no labyrinth.encounter span recorded")
	}
}
