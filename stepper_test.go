package astar

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/astar/v2/logging"
)

func TestStepDiagonalOnOpenGrid(t *testing.T) {
	grid := newTestGrid(t, 5, 5, pos(0, 0), pos(4, 4))
	engine := NewEngine()
	engine.Init(grid.Start(), grid.Target())

	path, err := runToEnd(t, engine, grid, 100)
	require.NoError(t, err)
	require.NotNil(t, path)

	assert.Equal(t, []Position{pos(0, 0), pos(1, 1), pos(2, 2), pos(3, 3), pos(4, 4)}, path.Positions)
	assert.Equal(t, 56, path.Cost)
	assert.Equal(t, 5, engine.StepCount())
	assert.Equal(t, PhaseSolved, engine.Phase())
}

func TestStepAroundWallColumn(t *testing.T) {
	grid := newTestGrid(t, 5, 5, pos(0, 0), pos(4, 0), wallColumn(2, 5, 4)...)
	engine := NewEngine()
	engine.Init(grid.Start(), grid.Target())

	path, err := runToEnd(t, engine, grid, 100)
	require.NoError(t, err)
	require.NotNil(t, path)

	assert.True(t, path.Contains(pos(2, 4)))
	assert.Equal(t, 96, path.Cost)
	assert.Equal(t, pos(0, 0), path.Positions[0])
	assert.Equal(t, pos(4, 0), path.Positions[path.Len()-1])
	for i := 1; i < path.Len(); i++ {
		a, b := path.Positions[i-1], path.Positions[i]
		assert.LessOrEqual(t, abs(a.X-b.X), 1)
		assert.LessOrEqual(t, abs(a.Y-b.Y), 1)
		state, _ := grid.State(b)
		assert.NotEqual(t, StateWall, state)
	}
}

func TestStepStartIsTarget(t *testing.T) {
	grid := newTestGrid(t, 5, 5, pos(2, 2), pos(2, 2))
	engine := NewEngine()
	engine.Init(grid.Start(), grid.Target())

	var current Position
	path, err := engine.Step(grid, &current)
	require.NoError(t, err)
	require.NotNil(t, path)
	assert.Equal(t, []Position{pos(2, 2)}, path.Positions)
	assert.Zero(t, path.Cost)
	assert.Equal(t, pos(2, 2), current)
}

func TestStepWritesCurrentPosition(t *testing.T) {
	grid := newTestGrid(t, 5, 5, pos(0, 0), pos(4, 4))
	engine := NewEngine()
	engine.Init(grid.Start(), grid.Target())

	var current Position
	_, err := engine.Step(grid, &current)
	require.NoError(t, err)
	assert.Equal(t, pos(0, 0), current)

	_, err = engine.Step(grid, &current)
	require.NoError(t, err)
	assert.Equal(t, pos(1, 1), current)
}

func TestStepBeforeInit(t *testing.T) {
	grid := newTestGrid(t, 3, 3, pos(0, 0), pos(2, 2))
	engine := NewEngine()

	_, err := engine.Step(grid, nil)
	assert.ErrorIs(t, err, ErrNotInitialized)

	engine.SetStart(pos(0, 0))
	_, err = engine.Step(grid, nil)
	assert.ErrorIs(t, err, ErrNotInitialized)
	assert.Equal(t, PhaseUninitialized, engine.Phase())

	engine.SetTarget(pos(2, 2))
	assert.Equal(t, PhaseReady, engine.Phase())
	_, err = engine.Step(grid, nil)
	assert.NoError(t, err)
}

func TestStepEndpointsOutsideGrid(t *testing.T) {
	grid := newTestGrid(t, 3, 3, pos(0, 0), pos(2, 2))
	engine := NewEngine()

	engine.Init(pos(0, 0), pos(7, 7))
	_, err := engine.Step(grid, nil)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)

	engine.Init(pos(-1, 0), pos(2, 2))
	_, err = engine.Step(grid, nil)
	assert.ErrorIs(t, err, ErrIndexOutOfBounds)
}

func TestStepUnreachableTarget(t *testing.T) {
	grid := newTestGrid(t, 5, 5, pos(0, 0), pos(4, 4), pos(3, 3), pos(3, 4), pos(4, 3))
	engine := NewEngine()
	engine.Init(grid.Start(), grid.Target())

	path, err := runToEnd(t, engine, grid, 100)
	assert.Nil(t, path)
	require.ErrorIs(t, err, ErrNoPathFound)
	assert.Equal(t, 21, engine.VisitedSize())
	assert.Equal(t, 21, engine.StepCount())
	assert.Equal(t, PhaseExhausted, engine.Phase())

	_, err = engine.Step(grid, nil)
	assert.ErrorIs(t, err, ErrNoPathFound)
	assert.Equal(t, 21, engine.StepCount())
}

func TestStepKeepsGridConsistent(t *testing.T) {
	walls := append(wallColumn(3, 8, 6), pos(5, 2), pos(5, 3), pos(6, 3))
	grid := newTestGrid(t, 8, 8, pos(0, 1), pos(7, 2), walls...)
	engine := NewEngine()
	engine.Init(grid.Start(), grid.Target())

	seen := map[Position]int{}
	for i := 0; i < 200; i++ {
		var current Position
		path, err := engine.Step(grid, &current)
		require.NoError(t, err)
		if path != nil {
			break
		}
		seen[current]++
		requireConsistent(t, engine, grid)
	}
	require.Equal(t, PhaseSolved, engine.Phase())
	for p, n := range seen {
		assert.Equal(t, 1, n, "%s expanded more than once", p)
	}
}

func TestStepNeverOverwritesEndpoints(t *testing.T) {
	grid := newTestGrid(t, 6, 6, pos(1, 1), pos(4, 4))
	engine := NewEngine()
	engine.Init(grid.Start(), grid.Target())

	_, err := runToEnd(t, engine, grid, 100)
	require.NoError(t, err)

	start, _ := grid.State(pos(1, 1))
	target, _ := grid.State(pos(4, 4))
	assert.Equal(t, StateStart, start)
	assert.Equal(t, StateTarget, target)

	for _, p := range []Position{pos(2, 2), pos(3, 3)} {
		state, _ := grid.State(p)
		assert.Equal(t, StatePath, state, p.String())
	}
}

func TestStepRecordsScoresAndParents(t *testing.T) {
	grid := newTestGrid(t, 5, 5, pos(0, 0), pos(4, 4))
	engine := NewEngine()
	engine.Init(grid.Start(), grid.Target())

	_, err := engine.Step(grid, nil)
	require.NoError(t, err)

	cell, err := grid.Cell(pos(1, 0))
	require.NoError(t, err)
	assert.Equal(t, StateOpen, cell.State)
	assert.Equal(t, 10, cell.G)
	assert.Equal(t, 52, cell.H)
	assert.Equal(t, 62, cell.F())

	parent, ok, err := grid.Parent(pos(1, 1))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, pos(0, 0), parent)
	assert.Equal(t, 3, engine.FrontierSize())
}

func TestRelaxUpdatesFrontierEntryInPlace(t *testing.T) {
	grid := newTestGrid(t, 5, 5, pos(0, 0), pos(4, 4))
	engine := NewEngine()
	engine.Init(grid.Start(), grid.Target())

	engine.relax(grid, relaxProposal{FromNode: pos(0, 0), ToNode: pos(2, 2), GScore: 40, HScore: 28})
	engine.relax(grid, relaxProposal{FromNode: pos(1, 1), ToNode: pos(2, 2), GScore: 28, HScore: 28})
	engine.relax(grid, relaxProposal{FromNode: pos(1, 2), ToNode: pos(2, 2), GScore: 30, HScore: 28})

	assert.Equal(t, 2, engine.FrontierSize())
	item, ok := engine.open.Get(pos(2, 2))
	require.True(t, ok)
	assert.Equal(t, 28, item.GScore)

	cell, err := grid.Cell(pos(2, 2))
	require.NoError(t, err)
	assert.Equal(t, StateOpen, cell.State)
	assert.Equal(t, 28, cell.G)
	assert.Equal(t, 28, cell.H)
	parent, ok, err := grid.Parent(pos(2, 2))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, pos(1, 1), parent)
}

func TestExpandedCellsHaveOptimalG(t *testing.T) {
	grid := newTestGrid(t, 7, 3, pos(0, 1), pos(6, 1))
	engine := NewEngine()
	engine.Init(grid.Start(), grid.Target())

	_, err := runToEnd(t, engine, grid, 100)
	require.NoError(t, err)

	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			p := pos(x, y)
			if !engine.Visited(p) {
				continue
			}
			cell, _ := grid.Cell(p)
			assert.Equal(t, Octile(grid.Start(), p), cell.G, "%s", p)
		}
	}
}

func TestStepIsIdempotentAfterSolve(t *testing.T) {
	grid := newTestGrid(t, 5, 5, pos(0, 0), pos(4, 0), wallColumn(2, 5, 4)...)
	engine := NewEngine()
	engine.Init(grid.Start(), grid.Target())

	path, err := runToEnd(t, engine, grid, 100)
	require.NoError(t, err)
	before := grid.Snapshot()
	steps := engine.StepCount()

	for i := 0; i < 3; i++ {
		var current Position
		again, err := engine.Step(grid, &current)
		require.NoError(t, err)
		assert.Same(t, path, again)
		assert.Equal(t, pos(4, 0), current)
	}
	assert.Equal(t, before, grid.Snapshot())
	assert.Equal(t, steps, engine.StepCount())
}

func TestStepIsDeterministic(t *testing.T) {
	run := func() (*Path, *View) {
		walls := append(wallColumn(4, 9, 0), wallColumn(6, 9, 8)...)
		grid := newTestGrid(t, 9, 9, pos(0, 4), pos(8, 4), walls...)
		engine := NewEngine()
		engine.Init(grid.Start(), grid.Target())
		path, err := runToEnd(t, engine, grid, 500)
		require.NoError(t, err)
		return path, grid.Snapshot()
	}

	firstPath, firstView := run()
	for i := 0; i < 5; i++ {
		path, view := run()
		assert.Equal(t, firstPath, path)
		assert.Equal(t, firstView, view)
	}
}

func TestStepOptimalOnOpenGrid(t *testing.T) {
	pairs := [][2]Position{
		{pos(0, 0), pos(9, 9)},
		{pos(0, 0), pos(9, 0)},
		{pos(3, 7), pos(8, 1)},
		{pos(9, 2), pos(0, 5)},
		{pos(4, 4), pos(5, 9)},
	}
	for _, pair := range pairs {
		grid := newTestGrid(t, 10, 10, pair[0], pair[1])
		engine := NewEngine()
		engine.Init(pair[0], pair[1])

		path, err := runToEnd(t, engine, grid, 200)
		require.NoError(t, err)
		assert.Equal(t, Octile(pair[0], pair[1]), path.Cost, "%s -> %s", pair[0], pair[1])
	}
}

func TestResetDiscardsProgress(t *testing.T) {
	grid := newTestGrid(t, 5, 5, pos(0, 0), pos(4, 4))
	engine := NewEngine()
	engine.Init(grid.Start(), grid.Target())
	firstRun := engine.RunID()

	for i := 0; i < 3; i++ {
		_, err := engine.Step(grid, nil)
		require.NoError(t, err)
	}
	require.Greater(t, engine.VisitedSize(), 0)

	require.NoError(t, grid.MoveStart(pos(0, 4)))
	grid.Reset()
	engine.SetStart(pos(0, 4))

	assert.NotEqual(t, firstRun, engine.RunID())
	assert.Zero(t, engine.StepCount())
	assert.Zero(t, engine.VisitedSize())
	assert.Equal(t, 1, engine.FrontierSize())
	assert.True(t, engine.InFrontier(pos(0, 4)))

	path, err := runToEnd(t, engine, grid, 100)
	require.NoError(t, err)
	assert.Equal(t, 40, path.Cost)

	engine.SetTarget(pos(0, 0))
	start, target := engine.Endpoints()
	assert.Equal(t, pos(0, 4), start)
	assert.Equal(t, pos(0, 0), target)
	assert.Equal(t, PhaseReady, engine.Phase())
}

func TestSnapshotReportsSets(t *testing.T) {
	grid := newTestGrid(t, 5, 5, pos(0, 0), pos(4, 4))
	engine := NewEngine()
	engine.Init(grid.Start(), grid.Target())

	_, err := engine.Step(grid, nil)
	require.NoError(t, err)

	snap := engine.Snapshot()
	assert.Equal(t, []Position{pos(0, 0)}, snap.Closed)
	assert.Equal(t, []Position{pos(1, 0), pos(0, 1), pos(1, 1)}, snap.Open)
	assert.Equal(t, 1, snap.StepIndex)
	assert.Equal(t, "ready", snap.Phase)
	assert.False(t, snap.Done)

	_, err = runToEnd(t, engine, grid, 100)
	require.NoError(t, err)
	snap = engine.Snapshot()
	assert.True(t, snap.Done)
	assert.True(t, snap.Found)
	assert.Equal(t, 5, snap.Path.Len())
}

func TestEngineLogsOutcome(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelInfo, Output: &buf})
	grid := newTestGrid(t, 3, 3, pos(0, 0), pos(2, 2))
	engine := NewEngine(WithLogger(logger))
	engine.Init(grid.Start(), grid.Target())

	_, err := runToEnd(t, engine, grid, 20)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "search reset")
	assert.Contains(t, out, "search solved")
	assert.Contains(t, out, "run_id="+engine.RunID())
}

func TestBrokenParentChainFailsRun(t *testing.T) {
	grid := newTestGrid(t, 5, 1, pos(0, 0), pos(4, 0))
	engine := NewEngine()
	engine.Init(grid.Start(), grid.Target())

	for i := 0; i < 4; i++ {
		_, err := engine.Step(grid, nil)
		require.NoError(t, err)
	}
	// Sever the chain behind the target's parent before it is dequeued.
	grid.cells[grid.indexOf(pos(2, 0))].parent = noParent

	_, err := engine.Step(grid, nil)
	require.ErrorIs(t, err, ErrBrokenChain)
	assert.Equal(t, PhaseFailed, engine.Phase())

	_, err = engine.Step(grid, nil)
	assert.ErrorIs(t, err, ErrBrokenChain)
}

func TestStepRejectsEndpointOnWall(t *testing.T) {
	grid := newTestGrid(t, 5, 5, pos(0, 0), pos(4, 4), pos(2, 2))
	engine := NewEngine()
	engine.Init(grid.Start(), grid.Target())
	engine.SetStart(pos(2, 2))

	_, err := engine.Step(grid, nil)
	require.ErrorIs(t, err, ErrInvalidReconfiguration)
	assert.Equal(t, PhaseFailed, engine.Phase())
	assert.Zero(t, engine.StepCount())
	assert.False(t, engine.Visited(pos(2, 2)))
	assert.Zero(t, engine.FrontierSize())
	state, err := grid.State(pos(2, 2))
	require.NoError(t, err)
	assert.Equal(t, StateWall, state)
	requireConsistent(t, engine, grid)

	_, err = engine.Step(grid, nil)
	assert.ErrorIs(t, err, ErrInvalidReconfiguration)

	engine.SetStart(pos(0, 0))
	path, err := runToEnd(t, engine, grid, 100)
	require.NoError(t, err)
	assert.False(t, path.Contains(pos(2, 2)))

	grid.Reset()
	engine.SetTarget(pos(2, 2))
	_, err = engine.Step(grid, nil)
	require.ErrorIs(t, err, ErrInvalidReconfiguration)
	assert.Equal(t, PhaseFailed, engine.Phase())
	assert.Zero(t, engine.VisitedSize())
}
