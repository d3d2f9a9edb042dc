package astar

import (
	"fmt"
	"sync"
)

// StepResult is what one SyncEngine.Step produced.
type StepResult struct {
	Current Position
	Path    *Path
	Err     error
}

// SyncEngine owns an Engine and its Grid behind a single mutex so that drivers
// running on several goroutines (an HTTP server, a UI thread plus a ticker)
// never mutate the grid concurrently with a step. Readers get View copies.
//
// Layout edits (walls, endpoints) restart the run, since changing the grid
// under a live search would break the open/closed bookkeeping.
type SyncEngine struct {
	mu     sync.Mutex
	engine *Engine
	grid   *Grid
}

// NewSyncEngine takes ownership of grid and initializes engine from the
// grid's start and target.
func NewSyncEngine(engine *Engine, grid *Grid) *SyncEngine {
	engine.Init(grid.Start(), grid.Target())
	return &SyncEngine{engine: engine, grid: grid}
}

// Step performs one expansion.
func (s *SyncEngine) Step() StepResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result StepResult
	result.Path, result.Err = s.engine.Step(s.grid, &result.Current)
	return result
}

// View returns a copy of the grid taken between steps.
func (s *SyncEngine) View() *View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Snapshot()
}

// Snapshot returns the engine's open/closed state.
func (s *SyncEngine) Snapshot() StepSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// State returns a grid copy and the engine snapshot taken under one lock, so
// the two always describe the same step.
func (s *SyncEngine) State() (*View, StepSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.grid.Snapshot(), s.engine.Snapshot()
}

// Phase reports the engine phase.
func (s *SyncEngine) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Phase()
}

// Reset clears search marks from the grid and restarts the run.
func (s *SyncEngine) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restart()
}

// ToggleWall flips a wall and restarts the run.
func (s *SyncEngine) ToggleWall(pos Position) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wall, err := s.grid.ToggleWall(pos)
	if err != nil {
		return false, err
	}
	s.restart()
	return wall, nil
}

// MoveStart relocates the start and restarts the run.
func (s *SyncEngine) MoveStart(pos Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.grid.MoveStart(pos); err != nil {
		return err
	}
	s.grid.Reset()
	s.engine.SetStart(pos)
	return nil
}

// MoveTarget relocates the target and restarts the run.
func (s *SyncEngine) MoveTarget(pos Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.grid.MoveTarget(pos); err != nil {
		return err
	}
	s.grid.Reset()
	s.engine.SetTarget(pos)
	return nil
}

// Replace swaps in a new grid, e.g. after the layout was reloaded.
func (s *SyncEngine) Replace(grid *Grid) error {
	if grid == nil {
		return fmt.Errorf("replace with nil grid: %w", ErrInvalidReconfiguration)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.grid = grid
	s.restart()
	return nil
}

func (s *SyncEngine) restart() {
	s.grid.Reset()
	s.engine.Init(s.grid.Start(), s.grid.Target())
}
