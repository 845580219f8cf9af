package world

import (
	"context"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/fracturecrawl/internal/telemetry"
)

// carveFrame is one level of the backtracking walk. Each frame keeps its own
// shuffled direction order so the walk consumes the RNG exactly as the
// recursive formulation would.
type carveFrame struct {
	pos  Position
	dirs [4]Direction
	next int
}

// Generate carves a perfect maze by randomized backtracking from a random
// interior corner and returns it with the start position.
func Generate(ctx context.Context, width, height int, rng *rand.Rand) (*Maze, Position, error) {
	if width < 3 || height < 3 {
		return nil, Position{}, ErrGridTooSmall
	}

	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "maze.generate")
	defer span.End()

	startTime := time.Now()

	m := NewMaze(width, height)
	corners := m.Corners()
	start := corners[rng.Intn(len(corners))]

	m.carve(start, rng)

	span.SetAttributes(
		attribute.Int("maze.width", width),
		attribute.Int("maze.height", height),
		attribute.Int("maze.start_x", start.X),
		attribute.Int("maze.start_y", start.Y),
		attribute.Int("maze.path_cells", len(m.PathCells())),
		attribute.Int64("maze.generation_ms", time.Since(startTime).Milliseconds()),
	)

	return m, start, nil
}

// carve runs the backtracker with an explicit stack. Cells are only entered
// through an edge carved from an already visited cell, so the result is a
// spanning tree over the odd lattice reachable from start.
func (m *Maze) carve(start Position, rng *rand.Rand) {
	stack := []*carveFrame{m.enter(start, rng)}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next >= len(top.dirs) {
			stack = stack[:len(stack)-1]
			continue
		}

		dir := top.dirs[top.next]
		top.next++

		dx, dy := dir.Delta()
		neighbor := Position{X: top.pos.X + 2*dx, Y: top.pos.Y + 2*dy}
		if !m.IsInterior(neighbor) || m.Tiles[neighbor.Y][neighbor.X] != TileWall {
			continue
		}

		m.Tiles[top.pos.Y+dy][top.pos.X+dx] = TilePath
		stack = append(stack, m.enter(neighbor, rng))
	}
}

// enter marks p as path and prepares its shuffled neighbour order.
func (m *Maze) enter(p Position, rng *rand.Rand) *carveFrame {
	m.Tiles[p.Y][p.X] = TilePath
	frame := &carveFrame{pos: p, dirs: Directions}
	rng.Shuffle(len(frame.dirs), func(i, j int) {
		frame.dirs[i], frame.dirs[j] = frame.dirs[j], frame.dirs[i]
	})
	return frame
}

// PlaceExit picks a uniformly random path cell other than exclude. When the
// maze has no such cell it falls back to the corner opposite exclude and
// reports degenerate=true; that cell may be a wall.
func PlaceExit(m *Maze, exclude Position, rng *rand.Rand) (exit Position, degenerate bool) {
	var candidates []Position
	for _, p := range m.PathCells() {
		if p != exclude {
			candidates = append(candidates, p)
		}
	}

	if len(candidates) == 0 {
		return m.Opposite(exclude), true
	}
	return candidates[rng.Intn(len(candidates))], false
}

// SpawnPositions rejection-samples interior cells until count distinct path
// cells are found that are neither start nor exit. count is clamped to the
// number of eligible cells so sampling always terminates.
func SpawnPositions(m *Maze, start, exit Position, count int, rng *rand.Rand) []Position {
	if count <= 0 || m.Width < 3 || m.Height < 3 {
		return nil
	}

	eligible := 0
	for _, p := range m.PathCells() {
		if p != start && p != exit {
			eligible++
		}
	}
	if count > eligible {
		count = eligible
	}

	taken := make(map[Position]bool, count)
	positions := make([]Position, 0, count)
	for len(positions) < count {
		p := Position{
			X: rng.Intn(m.Width-2) + 1,
			Y: rng.Intn(m.Height-2) + 1,
		}
		if m.Tiles[p.Y][p.X] != TilePath || p == start || p == exit || taken[p] {
			continue
		}
		taken[p] = true
		positions = append(positions, p)
	}
	return positions
}
