package telemetry

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/pdrpinto/bestfirst"
)

const tracerName = "bestfirst"

type runIDKey struct{}

// Observer implements bestfirst.Observer. Every run gets a random run id that
// is attached to its span and log records.
//
// Thread Safety: Safe for concurrent use; each run keeps its state in the context.
type Observer struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics *Metrics
	tracing bool
}

var _ bestfirst.Observer = (*Observer)(nil)

// ObserverOption configures an Observer.
type ObserverOption func(*Observer)

// WithTracerProvider sets the provider used instead of the global one.
func WithTracerProvider(provider trace.TracerProvider) ObserverOption {
	return func(o *Observer) { o.tracer = provider.Tracer(tracerName) }
}

// WithTracing enables a span per search.
func WithTracing(enabled bool) ObserverOption {
	return func(o *Observer) { o.tracing = enabled }
}

// NewObserver creates an observer. logger may be nil for slog.Default and
// metrics may be nil to skip metrics.
func NewObserver(logger *slog.Logger, metrics *Metrics, options ...ObserverOption) *Observer {
	if logger == nil {
		logger = slog.Default()
	}
	o := &Observer{
		tracer:  otel.Tracer(tracerName),
		logger:  logger,
		metrics: metrics,
	}
	for _, option := range options {
		option(o)
	}
	return o
}

// RunID returns the run id stored by SearchStarted, or "".
func RunID(ctx context.Context) string {
	runID, _ := ctx.Value(runIDKey{}).(string)
	return runID
}

// SearchStarted assigns a run id and, when tracing, starts the run span.
func (o *Observer) SearchStarted(ctx context.Context) context.Context {
	runID := uuid.NewString()
	ctx = context.WithValue(ctx, runIDKey{}, runID)
	if o.tracing {
		ctx, _ = o.tracer.Start(ctx, "bestfirst.search",
			trace.WithAttributes(attribute.String("bestfirst.run_id", runID)),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
	}
	o.logger.DebugContext(ctx, "search started", slog.String("run_id", runID))
	return ctx
}

// SearchFinished records metrics, ends the run span and logs the outcome.
func (o *Observer) SearchFinished(ctx context.Context, stats bestfirst.Stats) {
	if o.metrics != nil {
		o.metrics.Observe(stats)
	}

	if o.tracing {
		span := trace.SpanFromContext(ctx)
		span.SetAttributes(
			attribute.Bool("bestfirst.found", stats.Found),
			attribute.Int("bestfirst.expansions", stats.Expansions),
			attribute.Int("bestfirst.generated", stats.Generated),
			attribute.Int("bestfirst.visited", stats.Visited),
			attribute.Int("bestfirst.plan_length", stats.PlanLength),
		)
		span.SetStatus(codes.Ok, "")
		span.End()
	}

	o.logger.DebugContext(ctx, "search finished",
		slog.String("run_id", RunID(ctx)),
		slog.Bool("found", stats.Found),
		slog.Int("expansions", stats.Expansions),
		slog.Int("visited", stats.Visited),
		slog.Duration("elapsed", stats.Elapsed),
	)
}

// InstallStdoutTracing installs a global tracer provider that writes spans to w.
// The returned function flushes and shuts the provider down.
func InstallStdoutTracing(w io.Writer) (func(context.Context) error, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	provider := sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter))
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}
