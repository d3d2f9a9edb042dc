package astar

import "fmt"

// Position is an immutable grid coordinate.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String renders the position as (x,y).
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// CellState is the display/search state of a single cell.
type CellState uint8

const (
	StateNone CellState = iota
	StateStart
	StateTarget
	StateOpen
	StateClosed
	StatePath
	StateWall
)

var cellStateNames = [...]string{
	StateNone:   "none",
	StateStart:  "start",
	StateTarget: "target",
	StateOpen:   "open",
	StateClosed: "closed",
	StatePath:   "path",
	StateWall:   "wall",
}

func (s CellState) String() string {
	if int(s) < len(cellStateNames) {
		return cellStateNames[s]
	}
	return fmt.Sprintf("CellState(%d)", uint8(s))
}

// MarshalText lets snapshots carry states as readable names.
func (s CellState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// IsEndpoint reports whether the state marks the start or the target.
// Endpoints keep their identity while the search passes through them.
func (s CellState) IsEndpoint() bool {
	return s == StateStart || s == StateTarget
}

const noParent = -1

// Cell is the search metadata stored for one grid position.
type Cell struct {
	Pos   Position  `json:"pos"`
	State CellState `json:"state"`
	G     int       `json:"g"`
	H     int       `json:"h"`

	// parent is an index into the owning grid's arena, noParent when absent.
	parent int
}

// F is the priority used for expansion, always derived from G and H.
func (c Cell) F() int {
	return c.G + c.H
}

// HasParent reports whether the cell was reached from another cell.
func (c Cell) HasParent() bool {
	return c.parent != noParent
}
