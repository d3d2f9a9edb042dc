package astar

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func pos(x, y int) Position { return Position{X: x, Y: y} }

func newTestGrid(t *testing.T, width, height int, start, target Position, walls ...Position) *Grid {
	t.Helper()
	grid, err := NewGrid(width, height, start, target)
	require.NoError(t, err)
	for _, w := range walls {
		require.NoError(t, grid.SetWall(w))
	}
	return grid
}

// wallColumn walls x for every y except the gap.
func wallColumn(x, height, gap int) []Position {
	var walls []Position
	for y := 0; y < height; y++ {
		if y != gap {
			walls = append(walls, pos(x, y))
		}
	}
	return walls
}

// runToEnd steps until a path or an error, failing after limit steps.
func runToEnd(t *testing.T, engine *Engine, grid *Grid, limit int) (*Path, error) {
	t.Helper()
	for i := 0; i < limit; i++ {
		path, err := engine.Step(grid, nil)
		if err != nil || path != nil {
			return path, err
		}
	}
	t.Fatalf("search did not finish within %d steps", limit)
	return nil, nil
}

// requireConsistent checks that grid states agree with frontier/visited
// membership, endpoints excepted.
func requireConsistent(t *testing.T, engine *Engine, grid *Grid) {
	t.Helper()
	for y := 0; y < grid.Height(); y++ {
		for x := 0; x < grid.Width(); x++ {
			p := pos(x, y)
			cell, err := grid.Cell(p)
			require.NoError(t, err)
			open, visited := engine.InFrontier(p), engine.Visited(p)
			require.False(t, open && visited, "%s both open and visited", p)

			switch cell.State {
			case StateStart, StateTarget, StatePath:
				continue
			case StateWall:
				require.False(t, open || visited, "wall %s entered the search", p)
			default:
				require.Equal(t, open, cell.State == StateOpen, "%s state %s open=%v", p, cell.State, open)
				require.Equal(t, visited, cell.State == StateClosed, "%s state %s visited=%v", p, cell.State, visited)
			}
		}
	}
}
