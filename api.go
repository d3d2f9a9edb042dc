package astar

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pdrpinto/astar/v2/logging"
)

// ErrStepLimit is returned by Solve when WithMaxSteps is exceeded.
var ErrStepLimit = errors.New("step limit reached")

var tracer = otel.Tracer("github.com/pdrpinto/astar/v2")

// Result contains the outcome of a run-to-completion search
type Result struct {
	Path          *Path
	TotalCost     int
	ExpandedNodes int
	Found         bool
}

// Options defines parameters for the engine.
type Options struct {
	Logger   logging.Logger
	Metrics  *Metrics
	MaxSteps int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLogger sets the logger the engine reports resets, steps and outcomes to.
func WithLogger(logger logging.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithMetrics makes the engine record Prometheus metrics.
func WithMetrics(metrics *Metrics) Option {
	return func(options *Options) { options.Metrics = metrics }
}

// WithMaxSteps bounds how many expansions Solve may perform. Zero means unbounded.
func WithMaxSteps(maxSteps int) Option {
	return func(options *Options) { options.MaxSteps = maxSteps }
}

// Solve drives engine.Step until a path is found, the frontier is exhausted,
// the step limit is hit or contextObject is cancelled. Cancellation is checked
// between steps; a single step always runs to completion.
func Solve(contextObject context.Context, engine *Engine, grid *Grid) (Result, error) {
	contextObject, span := tracer.Start(contextObject, "astar.Solve", trace.WithAttributes(
		attribute.String("astar.run_id", engine.RunID()),
		attribute.Int("astar.grid.width", grid.Width()),
		attribute.Int("astar.grid.height", grid.Height()),
	))
	defer span.End()

	result, err := solve(contextObject, engine, grid)
	span.SetAttributes(
		attribute.Int("astar.expanded", result.ExpandedNodes),
		attribute.Bool("astar.found", result.Found),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return result, err
}

func solve(contextObject context.Context, engine *Engine, grid *Grid) (Result, error) {
	maxSteps := engine.options.MaxSteps
	for {
		select {
		case <-contextObject.Done():
			return Result{ExpandedNodes: engine.StepCount()}, contextObject.Err()
		default:
		}
		if maxSteps > 0 && engine.StepCount() >= maxSteps && engine.Phase() == PhaseReady {
			return Result{ExpandedNodes: engine.StepCount()}, fmt.Errorf("%d expansions: %w", maxSteps, ErrStepLimit)
		}

		path, err := engine.Step(grid, nil)
		if err != nil {
			return Result{ExpandedNodes: engine.StepCount()}, err
		}
		if path != nil {
			return Result{
				Path:          path,
				TotalCost:     path.Cost,
				ExpandedNodes: engine.StepCount(),
				Found:         true,
			}, nil
		}
	}
}

// FindPath searches grid from its start to its target in one call. Marks
// left by an earlier search are cleared first.
func FindPath(contextObject context.Context, grid *Grid, options ...Option) (Result, error) {
	grid.Reset()
	engine := NewEngine(options...)
	engine.Init(grid.Start(), grid.Target())
	return Solve(contextObject, engine, grid)
}
