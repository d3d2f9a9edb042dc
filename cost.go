package astar

const (
	// StraightCost is the cost of one orthogonal move.
	StraightCost = 10
	// DiagonalCost is the cost of one diagonal move.
	DiagonalCost = 14
)

// Octile returns the integer octile distance between two positions:
// 14 per diagonal step and 10 per remaining straight step.
// It is both the move cost between neighbours and the heuristic to the target.
func Octile(from Position, to Position) int {
	dx := abs(from.X - to.X)
	dy := abs(from.Y - to.Y)
	if dx > dy {
		return DiagonalCost*dy + StraightCost*(dx-dy)
	}
	return DiagonalCost*dx + StraightCost*(dy-dx)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
