package astar

import "errors"

var (
	// ErrNotInitialized is returned by Step when no start or target has been set.
	ErrNotInitialized = errors.New("engine not initialized")

	// ErrNoPathFound is returned once the frontier is exhausted without reaching the target.
	ErrNoPathFound = errors.New("no path found")

	// ErrIndexOutOfBounds is returned when a position lies outside the grid.
	ErrIndexOutOfBounds = errors.New("index out of bounds")

	// ErrInvalidReconfiguration is returned when a wall would overwrite the start or target,
	// or when one endpoint is moved onto the other.
	ErrInvalidReconfiguration = errors.New("invalid reconfiguration")
)
