package astar

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/pdrpinto/astar/v2/logging"
)

// Phase is the engine's position in the stepwise search protocol.
type Phase uint8

const (
	// PhaseUninitialized means the start or the target is still unknown.
	PhaseUninitialized Phase = iota
	// PhaseReady means Step will perform another expansion.
	PhaseReady
	// PhaseSolved means the target was reached; Step returns the cached path.
	PhaseSolved
	// PhaseExhausted means the frontier ran dry; Step returns ErrNoPathFound.
	PhaseExhausted
	// PhaseFailed means an inconsistency was detected; Step keeps returning it
	// until the engine is reseeded.
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseUninitialized:
		return "uninitialized"
	case PhaseReady:
		return "ready"
	case PhaseSolved:
		return "solved"
	case PhaseExhausted:
		return "exhausted"
	case PhaseFailed:
		return "failed"
	default:
		return fmt.Sprintf("Phase(%d)", uint8(p))
	}
}

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot struct {
	RunID     string     `json:"runId"`
	Phase     string     `json:"phase"`
	Current   Position   `json:"current"`
	Open      []Position `json:"open,omitempty"`
	Closed    []Position `json:"closed,omitempty"`
	Done      bool       `json:"done"`
	Found     bool       `json:"found"`
	Path      *Path      `json:"path,omitempty"`
	StepIndex int        `json:"step"`
}

// Engine is an incremental A* search. Each call to Step performs exactly one
// expansion, keeping the open and closed sets between calls so a driver can
// animate the search frame by frame.
//
// An Engine is not safe for concurrent use; see SyncEngine.
type Engine struct {
	options Options
	logger  logging.Logger

	start     Position
	target    Position
	hasStart  bool
	hasTarget bool

	open   *frontier
	closed map[Position]struct{}

	phase     Phase
	runID     string
	stepCount int
	current   Position
	path      *Path
	failure   error
}

// NewEngine creates an uninitialized engine.
func NewEngine(options ...Option) *Engine {
	engineOptions := Options{Logger: logging.NoOpLogger{}}
	for _, option := range options {
		option(&engineOptions)
	}
	if engineOptions.Logger == nil {
		engineOptions.Logger = logging.NoOpLogger{}
	}
	return &Engine{
		options: engineOptions,
		logger:  engineOptions.Logger,
		open:    newFrontier(),
		closed:  make(map[Position]struct{}),
	}
}

// Init (re)starts a run from start towards target. The grid passed to the
// following Steps must be fresh or Reset.
func (e *Engine) Init(start, target Position) {
	e.start, e.target = start, target
	e.hasStart, e.hasTarget = true, true
	e.reseed("init")
}

// SetStart changes the start and discards all progress.
func (e *Engine) SetStart(start Position) {
	e.start, e.hasStart = start, true
	e.reseed("start moved")
}

// SetTarget changes the target and discards all progress.
func (e *Engine) SetTarget(target Position) {
	e.target, e.hasTarget = target, true
	e.reseed("target moved")
}

// reseed clears both sets and seeds the frontier with the start.
func (e *Engine) reseed(reason string) {
	e.open = newFrontier()
	e.closed = make(map[Position]struct{})
	e.stepCount = 0
	e.path = nil
	e.failure = nil
	e.runID = uuid.NewString()
	e.logger = logging.With(e.options.Logger, "run_id", e.runID)

	if !e.hasStart || !e.hasTarget {
		e.phase = PhaseUninitialized
		e.logger.Debug("search waiting for endpoints", "reason", reason, "has_start", e.hasStart, "has_target", e.hasTarget)
		return
	}
	e.open.Push(e.start, 0, Octile(e.start, e.target))
	e.current = e.start
	e.phase = PhaseReady
	e.logger.Info("search reset", "reason", reason, "start", e.start.String(), "target", e.target.String())
}

// Step advances the search by one expansion. It writes the expanded position
// into current (when non-nil) and returns the path once the target has been
// expanded; a nil path with a nil error means the search continues.
//
// The grid must be the one the run started on, fresh or Reset, and must not
// be modified between steps of the same run. Once solved, Step returns the
// same path without touching the grid.
func (e *Engine) Step(grid *Grid, current *Position) (*Path, error) {
	switch e.phase {
	case PhaseUninitialized:
		return nil, ErrNotInitialized
	case PhaseSolved:
		if current != nil {
			*current = e.current
		}
		return e.path, nil
	case PhaseExhausted:
		return nil, fmt.Errorf("target %s: %w", e.target, ErrNoPathFound)
	case PhaseFailed:
		return nil, e.failure
	}

	if !grid.InBounds(e.start) {
		return nil, grid.outOfBounds("start", e.start)
	}
	if !grid.InBounds(e.target) {
		return nil, grid.outOfBounds("target", e.target)
	}
	for _, endpoint := range []struct {
		name string
		pos  Position
	}{{"start", e.start}, {"target", e.target}} {
		if grid.cells[grid.indexOf(endpoint.pos)].State == StateWall {
			// The seeded start must not stay queued on a wall.
			e.open = newFrontier()
			return nil, e.fail(fmt.Errorf("%s %s is a wall: %w", endpoint.name, endpoint.pos, ErrInvalidReconfiguration))
		}
	}
	if e.open.Len() == 0 {
		e.phase = PhaseExhausted
		e.options.Metrics.observeExhausted()
		e.logger.Info("search exhausted", "steps", e.stepCount, "visited", len(e.closed))
		return nil, fmt.Errorf("target %s: %w", e.target, ErrNoPathFound)
	}
	if best := e.open.queue[0]; !grid.InBounds(best.Pos) {
		return nil, grid.outOfBounds("frontier entry", best.Pos)
	}

	begin := time.Now()
	e.stepCount++
	item := e.open.PopBest()
	e.closed[item.Pos] = struct{}{}
	e.current = item.Pos
	if current != nil {
		*current = item.Pos
	}

	cell := &grid.cells[grid.indexOf(item.Pos)]
	cell.G, cell.H = item.GScore, item.HScore
	if !cell.State.IsEndpoint() {
		cell.State = StateClosed
	}

	if item.Pos == e.target {
		path, err := reconstructPath(grid, item, e.start)
		if err != nil {
			return nil, e.fail(err)
		}
		e.path = path
		e.phase = PhaseSolved
		e.options.Metrics.observeStep(time.Since(begin), e.open.Len(), len(e.closed))
		e.options.Metrics.observeSolved(path.Len())
		e.logger.Info("search solved", "steps", e.stepCount, "cost", path.Cost, "length", path.Len())
		return path, nil
	}

	for _, proposal := range e.expand(grid, item) {
		e.relax(grid, proposal)
	}

	e.options.Metrics.observeStep(time.Since(begin), e.open.Len(), len(e.closed))
	e.logger.Debug("expanded", "step", e.stepCount, "current", item.Pos.String(),
		"f", item.FCost(), "frontier", e.open.Len(), "visited", len(e.closed))
	return nil, nil
}

// fail parks the run in PhaseFailed; Step returns err until the next reseed.
func (e *Engine) fail(err error) error {
	e.phase, e.failure = PhaseFailed, err
	e.logger.Error("search failed", "error", err)
	return err
}

// Phase reports where the engine is in the search protocol.
func (e *Engine) Phase() Phase { return e.phase }

// RunID identifies the current run; it changes on every reseed.
func (e *Engine) RunID() string { return e.runID }

// StepCount is the number of expansions performed in the current run.
func (e *Engine) StepCount() int { return e.stepCount }

// Endpoints returns the configured start and target.
func (e *Engine) Endpoints() (start, target Position) { return e.start, e.target }

// InFrontier reports whether pos is waiting in the open set.
func (e *Engine) InFrontier(pos Position) bool {
	_, ok := e.open.Get(pos)
	return ok
}

// Visited reports whether pos has been expanded in the current run.
func (e *Engine) Visited(pos Position) bool {
	_, ok := e.closed[pos]
	return ok
}

// FrontierSize is the number of open positions.
func (e *Engine) FrontierSize() int { return e.open.Len() }

// VisitedSize is the number of expanded positions.
func (e *Engine) VisitedSize() int { return len(e.closed) }

// Snapshot copies the open and closed sets for display. Positions are sorted
// row by row so the snapshot is stable.
func (e *Engine) Snapshot() StepSnapshot {
	closed := make([]Position, 0, len(e.closed))
	for pos := range e.closed {
		closed = append(closed, pos)
	}
	open := e.open.Positions()
	slices.SortFunc(open, comparePositions)
	slices.SortFunc(closed, comparePositions)

	return StepSnapshot{
		RunID:     e.runID,
		Phase:     e.phase.String(),
		Current:   e.current,
		Open:      open,
		Closed:    closed,
		Done:      e.phase >= PhaseSolved,
		Found:     e.phase == PhaseSolved,
		Path:      e.path,
		StepIndex: e.stepCount,
	}
}

func comparePositions(a, b Position) int {
	if c := cmp.Compare(a.Y, b.Y); c != 0 {
		return c
	}
	return cmp.Compare(a.X, b.X)
}
