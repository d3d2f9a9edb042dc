package astar

import (
	"errors"
	"fmt"

	"github.com/pdrpinto/astar/v2/internal"
)

// ErrBrokenChain is returned when parent links do not lead back to the start.
// It indicates the grid was mutated or swapped during a run.
var ErrBrokenChain = errors.New("broken parent chain")

// Path is a found route, ordered start to target inclusive.
type Path struct {
	Positions []Position `json:"positions"`
	Cost      int        `json:"cost"`
}

// Len is the number of cells on the path.
func (p *Path) Len() int {
	if p == nil {
		return 0
	}
	return len(p.Positions)
}

// Contains reports whether pos lies on the path.
func (p *Path) Contains(pos Position) bool {
	if p == nil {
		return false
	}
	for _, q := range p.Positions {
		if q == pos {
			return true
		}
	}
	return false
}

// reconstructPath follows arena parent links from goal back to start and
// marks every cell between them as StatePath. Endpoints keep their state.
func reconstructPath(grid *Grid, goal *frontierItem, start Position) (*Path, error) {
	parentOf := func(index int) (int, bool) {
		p := grid.cells[index].parent
		return p, p != noParent
	}
	indices, ok := internal.ReconstructPath(parentOf, grid.indexOf(goal.Pos), grid.indexOf(start), len(grid.cells))
	if !ok {
		return nil, fmt.Errorf("from %s to %s: %w", goal.Pos, start, ErrBrokenChain)
	}

	path := &Path{Positions: make([]Position, 0, len(indices)), Cost: goal.GScore}
	for _, index := range indices {
		cell := &grid.cells[index]
		if !cell.State.IsEndpoint() {
			cell.State = StatePath
		}
		path.Positions = append(path.Positions, cell.Pos)
	}
	return path, nil
}
