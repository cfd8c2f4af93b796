package observability

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"orders/internal/core/application/usecases"
	"orders/internal/pkg/errs"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

const tracerName = "orders/internal/adapters/observability"

type decorator struct {
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics handlerMetrics
}

type Option func(*decorator)

func WithLogger(logger *slog.Logger) Option {
	return func(d *decorator) {
		d.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(d *decorator) {
		d.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(d *decorator) {
		d.metrics = newHandlerMetrics(m)
	}
}

// Decorate wraps a use case handler so that every call runs in a span named after
// operation, is logged, and is counted by outcome. Errors pass through unchanged.
func Decorate[C any, R any](operation string, inner usecases.Handler[C, R], opts ...Option) usecases.Handler[C, R] {
	d := &decorator{
		tracer: nooptrace.NewTracerProvider().Tracer(tracerName),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	if d.tracer == nil {
		d.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}

	return usecases.HandlerFunc[C, R](func(ctx context.Context, in C) (R, error) {
		ctx, span := d.tracer.Start(ctx, operation)
		defer span.End()

		result, err := inner.Handle(ctx, in)
		kind := Outcome(err)
		d.metrics.record(ctx, operation, kind)
		span.SetAttributes(attribute.String("outcome", kind))

		if err != nil {
			d.handleError(ctx, span, err, operation, kind)
			return result, err
		}

		d.logger.LogAttrs(ctx, slog.LevelInfo, "handled", slog.String("operation", operation))
		return result, nil
	})
}

// handleError logs expected business failures at info and everything else at error.
// Only unexpected failures mark the span as failed.
func (d *decorator) handleError(ctx context.Context, span trace.Span, err error, operation, kind string) {
	attrs := []slog.Attr{
		slog.String("operation", operation),
		slog.String("outcome", kind),
		slog.String("error", err.Error()),
	}

	if kind == OutcomeStorage || kind == OutcomeError {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		d.logger.LogAttrs(ctx, slog.LevelError, "handler failed", attrs...)
		return
	}
	d.logger.LogAttrs(ctx, slog.LevelInfo, "handler rejected request", attrs...)
}

const (
	OutcomeOK                = "ok"
	OutcomeValidation        = "validation"
	OutcomeNotFound          = "not_found"
	OutcomeDenied            = "denied"
	OutcomeInvalidTransition = "invalid_transition"
	OutcomeConflict          = "conflict"
	OutcomeStorage           = "storage"
	OutcomeError             = "error"
)

// Outcome classifies err by its errs kind.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, errs.ErrStorageUnavailable):
		return OutcomeStorage
	case errors.Is(err, errs.ErrConcurrencyConflict):
		return OutcomeConflict
	case errors.Is(err, errs.ErrInvalidStatusTransition):
		return OutcomeInvalidTransition
	case errors.Is(err, errs.ErrAccessDenied):
		return OutcomeDenied
	case errors.Is(err, errs.ErrObjectNotFound):
		return OutcomeNotFound
	case errs.IsValidation(err):
		return OutcomeValidation
	default:
		return OutcomeError
	}
}

type handlerMetrics struct {
	calls metric.Int64Counter
}

func newHandlerMetrics(m metric.Meter) handlerMetrics {
	if m == nil {
		return handlerMetrics{}
	}
	calls, _ := m.Int64Counter("orders.handler.calls", metric.WithDescription("Use case handler invocations by outcome"))
	return handlerMetrics{calls: calls}
}

func (m handlerMetrics) record(ctx context.Context, operation, outcome string) {
	if m.calls != nil {
		m.calls.Add(ctx, 1, metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("outcome", outcome),
		))
	}
}
