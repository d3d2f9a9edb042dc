// Package logging provides the small logging interface used across the
// module, with an adapter over log/slog and a no-op implementation.
//
// Usage:
//
//	logger := logging.New(logging.Config{Level: logging.LevelDebug, Format: "text"})
//	engine := astar.NewEngine(astar.WithLogger(logger))
//
// Callers that already own a *slog.Logger can wrap it with NewSlogAdapter.
package logging
