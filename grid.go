package astar

import "fmt"

// Grid is a dense, row-major arena of cells. Parent links between cells are
// arena indices, so reconstructing a path never copies cells.
//
// A Grid is owned by whoever drives the Engine. It must not be mutated while
// Step is running; renderers read it through Snapshot.
type Grid struct {
	width  int
	height int
	cells  []Cell
	start  Position
	target Position
}

// NewGrid creates a width×height grid with the start and target marked and
// every other cell in StateNone. Start and target may coincide, in which case
// the cell is marked as the start.
func NewGrid(width, height int, start, target Position) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid dimensions %dx%d: %w", width, height, ErrIndexOutOfBounds)
	}
	g := &Grid{width: width, height: height, cells: make([]Cell, width*height)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			g.cells[y*width+x] = Cell{Pos: Position{X: x, Y: y}, parent: noParent}
		}
	}
	if !g.InBounds(start) {
		return nil, g.outOfBounds("start", start)
	}
	if !g.InBounds(target) {
		return nil, g.outOfBounds("target", target)
	}
	g.start, g.target = start, target
	g.cells[g.indexOf(target)].State = StateTarget
	g.cells[g.indexOf(start)].State = StateStart
	return g, nil
}

// Width is the extent along X.
func (g *Grid) Width() int { return g.width }

// Height is the extent along Y.
func (g *Grid) Height() int { return g.height }

// Start returns the position currently marked as the start.
func (g *Grid) Start() Position { return g.start }

// Target returns the position currently marked as the target.
func (g *Grid) Target() Position { return g.target }

// InBounds reports whether pos addresses a cell of the grid.
func (g *Grid) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < g.width && pos.Y >= 0 && pos.Y < g.height
}

// Cell returns a copy of the cell at pos.
func (g *Grid) Cell(pos Position) (Cell, error) {
	i, err := g.index(pos)
	if err != nil {
		return Cell{}, err
	}
	return g.cells[i], nil
}

// State returns the state of the cell at pos.
func (g *Grid) State(pos Position) (CellState, error) {
	i, err := g.index(pos)
	if err != nil {
		return StateNone, err
	}
	return g.cells[i].State, nil
}

// Parent returns the position the cell at pos was reached from.
func (g *Grid) Parent(pos Position) (Position, bool, error) {
	i, err := g.index(pos)
	if err != nil {
		return Position{}, false, err
	}
	p := g.cells[i].parent
	if p == noParent {
		return Position{}, false, nil
	}
	return g.cells[p].Pos, true, nil
}

// SetWall turns the cell at pos into a wall. Endpoints cannot be walled over.
func (g *Grid) SetWall(pos Position) error {
	c, err := g.mutable(pos)
	if err != nil {
		return err
	}
	if c.State.IsEndpoint() {
		return fmt.Errorf("wall at %s would replace the %s: %w", pos, c.State, ErrInvalidReconfiguration)
	}
	c.State = StateWall
	return nil
}

// ClearWall returns a wall cell to StateNone. Non-wall cells are left untouched.
func (g *Grid) ClearWall(pos Position) error {
	c, err := g.mutable(pos)
	if err != nil {
		return err
	}
	if c.State == StateWall {
		c.State = StateNone
	}
	return nil
}

// ToggleWall flips the cell at pos between wall and empty and reports whether
// it is a wall afterwards.
func (g *Grid) ToggleWall(pos Position) (bool, error) {
	state, err := g.State(pos)
	if err != nil {
		return false, err
	}
	if state == StateWall {
		return false, g.ClearWall(pos)
	}
	return true, g.SetWall(pos)
}

// MoveStart relocates the start marker. The previous start cell becomes empty.
// Moving onto a wall replaces the wall; moving onto the target is rejected.
func (g *Grid) MoveStart(pos Position) error {
	return g.moveEndpoint(&g.start, g.target, StateStart, pos)
}

// MoveTarget relocates the target marker. The previous target cell becomes empty.
func (g *Grid) MoveTarget(pos Position) error {
	return g.moveEndpoint(&g.target, g.start, StateTarget, pos)
}

func (g *Grid) moveEndpoint(endpoint *Position, other Position, state CellState, pos Position) error {
	c, err := g.mutable(pos)
	if err != nil {
		return err
	}
	if pos == *endpoint {
		return nil
	}
	otherState := StateTarget
	if state == StateTarget {
		otherState = StateStart
	}
	if pos == other {
		return fmt.Errorf("%s onto %s at %s: %w", state, otherState, pos, ErrInvalidReconfiguration)
	}
	old := &g.cells[g.indexOf(*endpoint)]
	if *endpoint == other {
		old.State = otherState
	} else {
		old.State = StateNone
	}
	*endpoint = pos
	*c = Cell{Pos: pos, State: state, parent: noParent}
	return nil
}

// Reset clears search marks (open, closed, path) and all g/h/parent values,
// keeping walls and endpoints, so the same layout can be searched again.
func (g *Grid) Reset() {
	for i := range g.cells {
		c := &g.cells[i]
		switch c.State {
		case StateOpen, StateClosed, StatePath:
			c.State = StateNone
		}
		c.G, c.H, c.parent = 0, 0, noParent
	}
	g.cells[g.indexOf(g.target)].State = StateTarget
	g.cells[g.indexOf(g.start)].State = StateStart
}

// Snapshot returns an immutable copy of the grid for rendering.
func (g *Grid) Snapshot() *View {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	return &View{width: g.width, height: g.height, cells: cells, start: g.start, target: g.target}
}

func (g *Grid) index(pos Position) (int, error) {
	if !g.InBounds(pos) {
		return 0, g.outOfBounds("position", pos)
	}
	return g.indexOf(pos), nil
}

func (g *Grid) indexOf(pos Position) int {
	return pos.Y*g.width + pos.X
}

func (g *Grid) mutable(pos Position) (*Cell, error) {
	i, err := g.index(pos)
	if err != nil {
		return nil, err
	}
	return &g.cells[i], nil
}

func (g *Grid) outOfBounds(what string, pos Position) error {
	return fmt.Errorf("%s %s outside %dx%d grid: %w", what, pos, g.width, g.height, ErrIndexOutOfBounds)
}

// View is a read-only copy of a Grid taken between steps.
type View struct {
	width  int
	height int
	cells  []Cell
	start  Position
	target Position
}

// Width is the extent along X.
func (v *View) Width() int { return v.width }

// Height is the extent along Y.
func (v *View) Height() int { return v.height }

// Start returns the start position at the time of the snapshot.
func (v *View) Start() Position { return v.start }

// Target returns the target position at the time of the snapshot.
func (v *View) Target() Position { return v.target }

// Cell returns the cell at pos; ok is false when pos is outside the view.
func (v *View) Cell(pos Position) (Cell, bool) {
	if pos.X < 0 || pos.X >= v.width || pos.Y < 0 || pos.Y >= v.height {
		return Cell{}, false
	}
	return v.cells[pos.Y*v.width+pos.X], true
}

// Count returns how many cells are in the given state.
func (v *View) Count(state CellState) int {
	n := 0
	for _, c := range v.cells {
		if c.State == state {
			n++
		}
	}
	return n
}
