package pathfinding

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "crowdpath/pathfinding"

// searchTelemetry records spans and metrics for FindPath calls.
// Providers default to the otel globals, which are no-ops until installed.
type searchTelemetry struct {
	tracer     trace.Tracer
	searches   metric.Int64Counter
	expansions metric.Int64Histogram
	pathCost   metric.Int64Histogram
}

func newSearchTelemetry(mp metric.MeterProvider, tp trace.TracerProvider) *searchTelemetry {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	meter := mp.Meter(instrumentationName)

	t := &searchTelemetry{tracer: tp.Tracer(instrumentationName)}

	var err error
	t.searches, err = meter.Int64Counter(
		"pathfinding_searches_total",
		metric.WithDescription("Total number of searches by terminal state"),
	)
	if err != nil {
		t.searches = noop.Int64Counter{}
	}

	t.expansions, err = meter.Int64Histogram(
		"pathfinding_expansions",
		metric.WithDescription("Number of nodes expanded per search"),
	)
	if err != nil {
		t.expansions = noop.Int64Histogram{}
	}

	t.pathCost, err = meter.Int64Histogram(
		"pathfinding_path_cost",
		metric.WithDescription("Accumulated cost of found paths"),
	)
	if err != nil {
		t.pathCost = noop.Int64Histogram{}
	}

	return t
}

// start opens the span for one search.
func (t *searchTelemetry) start(ctx context.Context, req searchRequest) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "pathfinding.FindPath",
		trace.WithAttributes(
			attribute.Int("start.x", req.start.X),
			attribute.Int("start.y", req.start.Y),
			attribute.Int("goal.x", req.goal.X),
			attribute.Int("goal.y", req.goal.Y),
		),
	)
}

// finish records the outcome and ends the span.
func (t *searchTelemetry) finish(ctx context.Context, span trace.Span, result Result, err error) {
	defer span.End()

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		t.searches.Add(ctx, 1, metric.WithAttributes(attribute.String("state", "rejected")))
		return
	}

	state := attribute.String("state", result.State.String())
	span.SetAttributes(
		state,
		attribute.Int("expansions", result.Expansions),
		attribute.Int("path.length", result.Path.Length()),
		attribute.Int("path.cost", result.Path.Cost),
	)
	t.searches.Add(ctx, 1, metric.WithAttributes(state))
	t.expansions.Record(ctx, int64(result.Expansions))
	if result.Found() {
		t.pathCost.Record(ctx, int64(result.Path.Cost))
	}
}
