package astar

// relaxProposal is the candidate update for one neighbour of the expanded cell.
type relaxProposal struct {
	FromNode Position
	ToNode   Position
	GScore   int
	HScore   int
}

// expand proposes relaxations for the up-to-8 neighbours of current that are
// inside the grid, not walls and not yet visited. Neighbours are enumerated
// with dx in the outer loop and dy in the inner loop.
func (e *Engine) expand(grid *Grid, current *frontierItem) []relaxProposal {
	proposals := make([]relaxProposal, 0, 8)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			next := Position{X: current.Pos.X + dx, Y: current.Pos.Y + dy}
			if !grid.InBounds(next) {
				continue
			}
			if grid.cells[grid.indexOf(next)].State == StateWall {
				continue
			}
			if _, visited := e.closed[next]; visited {
				continue
			}
			proposals = append(proposals, relaxProposal{
				FromNode: current.Pos,
				ToNode:   next,
				GScore:   current.GScore + Octile(current.Pos, next),
				HScore:   Octile(next, e.target),
			})
		}
	}
	return proposals
}

// relax applies a proposal: a new position joins the frontier, a known one is
// updated in place only when the proposal beats its own recorded g. The grid
// cell is then brought in line with the frontier entry either way.
func (e *Engine) relax(grid *Grid, proposal relaxProposal) {
	cell := &grid.cells[grid.indexOf(proposal.ToNode)]
	item, inFrontier := e.open.Get(proposal.ToNode)
	switch {
	case !inFrontier:
		item = e.open.Push(proposal.ToNode, proposal.GScore, proposal.HScore)
		cell.parent = grid.indexOf(proposal.FromNode)
	case proposal.GScore < item.GScore:
		e.open.Update(item, proposal.GScore, proposal.HScore)
		cell.parent = grid.indexOf(proposal.FromNode)
	}
	cell.G, cell.H = item.GScore, item.HScore
	if !cell.State.IsEndpoint() {
		cell.State = StateOpen
	}
}
