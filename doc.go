// Package astar provides an incremental A* pathfinding engine over a dense,
// mutable 2D grid.
//
// Unlike a search that runs to completion, the Engine performs exactly one
// expansion per call to Step and keeps its open and closed sets between calls,
// so an external driver (a ticker, an event loop, a key press) can animate the
// search frame by frame while the Grid always reflects the engine's state.
//
// It exposes three entry points:
//
//   - Engine: Init, SetStart, SetTarget and Step, the stepwise protocol.
//   - Solve / FindPath: drive an engine to completion and get a Result.
//   - SyncEngine: the same protocol behind a mutex for multi-goroutine drivers.
//
// Moves are 8-connected. Costs use the integer octile model: 10 per straight
// step and 14 per diagonal step, which is also the heuristic.
package astar
