package scicalc

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// MetricsRecorder records engine metrics. Use NewMetricsRecorder for
// OpenTelemetry metrics or NoopMetrics when disabled.
type MetricsRecorder interface {
	// RecordEvaluation records one call to Evaluate, its duration, and its
	// error if it failed.
	RecordEvaluation(ctx context.Context, duration time.Duration, err error)
}

type otelMetrics struct {
	evaluations metric.Int64Counter
	errors      metric.Int64Counter
	latency     metric.Float64Histogram
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics(otel.Meter("scicalc"))
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics(meter metric.Meter) (*otelMetrics, error) {
	evaluations, err := meter.Int64Counter("scicalc.evaluations",
		metric.WithDescription("Number of expressions evaluated"),
	)
	if err != nil {
		return nil, err
	}
	errs, err := meter.Int64Counter("scicalc.errors",
		metric.WithDescription("Number of failed evaluations by kind"),
	)
	if err != nil {
		return nil, err
	}
	latency, err := meter.Float64Histogram("scicalc.evaluation.latency_us",
		metric.WithDescription("Evaluation latency in microseconds"),
		metric.WithUnit("us"),
	)
	if err != nil {
		return nil, err
	}
	return &otelMetrics{evaluations: evaluations, errors: errs, latency: latency}, nil
}

// NewMetricsRecorder returns a MetricsRecorder using the global OpenTelemetry
// meter provider. If the instruments cannot be created, the result is a
// no-op recorder.
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

func (m *otelMetrics) RecordEvaluation(ctx context.Context, duration time.Duration, err error) {
	ok := attribute.Bool("success", err == nil)
	m.evaluations.Add(ctx, 1, metric.WithAttributes(ok))
	m.latency.Record(ctx, float64(duration.Microseconds()), metric.WithAttributes(ok))
	if err != nil {
		m.errors.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", errorKind(err))))
	}
}

// NoopMetrics is a MetricsRecorder that does nothing.
type NoopMetrics struct{}

var _ MetricsRecorder = NoopMetrics{}

// RecordEvaluation does nothing.
func (NoopMetrics) RecordEvaluation(context.Context, time.Duration, error) {}

// errorKind names the class of an evaluation error for logs and metrics.
func errorKind(err error) string {
	var ee *EvalError
	switch {
	case errors.As(err, new(*SyntaxError)):
		return "syntax"
	case errors.As(err, &ee):
		return ee.Kind.String()
	default:
		return "other"
	}
}

// startSpan starts the span for one evaluation.
func startSpan(ctx context.Context, tracer trace.Tracer, session string, input string, mode AngleMode) (context.Context, trace.Span) {
	return tracer.Start(ctx, "scicalc.evaluate",
		trace.WithAttributes(
			attribute.String("session.id", session),
			attribute.Int("input.length", len(input)),
			attribute.String("angle", mode.String()),
		),
		trace.WithSpanKind(trace.SpanKindInternal),
	)
}

// endSpan completes a span, recording err if it is non-nil.
func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(attribute.String("error.kind", errorKind(err)))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
