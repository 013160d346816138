package pathfinding

import (
	"context"
	"crowdpath/core"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Result contains the outcome of a search.
type Result struct {
	Path       core.Path
	State      State
	Expansions int // Nodes moved to the closed set
	Discovered int // Distinct cells ever placed in the frontier
}

// Found reports whether the search reached the goal.
func (r Result) Found() bool {
	return r.State == Succeeded
}

// Options configures an AStarPathFinder.
type Options struct {
	Costs          PathCost
	Usage          *UsageCounter
	Logger         *slog.Logger
	MeterProvider  metric.MeterProvider
	TracerProvider trace.TracerProvider
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithPathCost sets the cost model.
func WithPathCost(costs PathCost) Option {
	return func(o *Options) { o.Costs = costs }
}

// WithUsageCounter shares a caller-owned usage counter across every search
// made by the finder, so congestion from earlier runs raises the cost of
// later ones. Without it each search starts from a clean counter.
func WithUsageCounter(usage *UsageCounter) Option {
	return func(o *Options) { o.Usage = usage }
}

// WithLogger sets the logger used for per-search debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}

// WithMeterProvider sets the OpenTelemetry meter provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(o *Options) { o.MeterProvider = mp }
}

// WithTracerProvider sets the OpenTelemetry tracer provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *Options) { o.TracerProvider = tp }
}

// AStarPathFinder implements congestion-aware A* pathfinding on a grid.
type AStarPathFinder struct {
	costs     PathCost
	usage     *UsageCounter
	logger    *slog.Logger
	telemetry *searchTelemetry
}

// NewAStarPathFinder creates a new A* path finder.
func NewAStarPathFinder(options ...Option) *AStarPathFinder {
	opts := Options{Costs: DefaultPathCost}
	for _, option := range options {
		option(&opts)
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return &AStarPathFinder{
		costs:     opts.Costs,
		usage:     opts.Usage,
		logger:    opts.Logger,
		telemetry: newSearchTelemetry(opts.MeterProvider, opts.TracerProvider),
	}
}

// Usage returns the shared usage counter, or nil when every search uses a
// fresh one.
func (a *AStarPathFinder) Usage() *UsageCounter {
	return a.usage
}

type searchRequest struct {
	start, goal core.Point
}

// newContext builds the per-run state, binding it to the shared counter or a
// fresh one.
func (a *AStarPathFinder) newContext(grid GridMap, start, goal core.Point) (*SearchContext, error) {
	if err := a.costs.Validate(); err != nil {
		return nil, err
	}
	usage := a.usage
	if usage == nil {
		usage = NewUsageCounter()
	}
	return newSearchContext(grid, NewCostModel(a.costs, usage), start, goal)
}

// FindPath searches for a path from start to goal.
//
// An error is returned only when start or goal is out of bounds or blocked,
// or when the finder was configured with an invalid PathCost.
// When the goal is unreachable the result has State Exhausted and an empty
// path. The context carries telemetry only; the search runs to completion
// without blocking.
func (a *AStarPathFinder) FindPath(ctx context.Context, grid GridMap, start, goal core.Point) (Result, error) {
	req := searchRequest{start: start, goal: goal}
	ctx, span := a.telemetry.start(ctx, req)

	sc, err := a.newContext(grid, start, goal)
	if err != nil {
		a.logger.DebugContext(ctx, "search rejected", "start", start, "goal", goal, "error", err)
		a.telemetry.finish(ctx, span, Result{}, err)
		return Result{}, err
	}

	sc.run()
	result := Result{
		Path:       sc.path(),
		State:      sc.State(),
		Expansions: sc.Expansions(),
		Discovered: sc.Discovered(),
	}

	a.logger.DebugContext(ctx, "search finished",
		"start", start,
		"goal", goal,
		"state", result.State.String(),
		"expansions", result.Expansions,
		"discovered", result.Discovered,
		"length", result.Path.Length(),
		"cost", result.Path.Cost,
	)
	a.telemetry.finish(ctx, span, result, nil)
	return result, nil
}
