package observability_test

import (
	"context"
	"errors"
	"testing"

	"orders/internal/adapters/observability"
	"orders/internal/core/application/usecases"
	"orders/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func echoHandler(err error) usecases.Handler[string, string] {
	return usecases.HandlerFunc[string, string](func(_ context.Context, in string) (string, error) {
		return in, err
	})
}

func TestDecorate_RecordsSpanAndOutcome(t *testing.T) {
	testCases := []struct {
		name       string
		err        error
		outcome    string
		spanStatus codes.Code
	}{
		{"success", nil, observability.OutcomeOK, codes.Unset},
		{"conflict", errs.NewConcurrencyConflictError("order", "1"), observability.OutcomeConflict, codes.Unset},
		{"storage", errs.NewStorageUnavailableError("get order"), observability.OutcomeStorage, codes.Error},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := tracetest.NewSpanRecorder()
			provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

			handler := observability.Decorate("orders.cancel", echoHandler(tc.err),
				observability.WithTracer(provider.Tracer("test")))

			out, err := handler.Handle(context.Background(), "in")

			assert.Equal(t, "in", out)
			assert.Equal(t, tc.err, err)

			spans := recorder.Ended()
			require.Len(t, spans, 1)
			assert.Equal(t, "orders.cancel", spans[0].Name())
			assert.Contains(t, spans[0].Attributes(), attribute.String("outcome", tc.outcome))
			assert.Equal(t, tc.spanStatus, spans[0].Status().Code)
		})
	}
}

func TestDecorate_CountsCallsByOutcome(t *testing.T) {
	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	handler := observability.Decorate("orders.pay", echoHandler(nil),
		observability.WithMeter(provider.Meter("test")))
	_, _ = handler.Handle(ctx, "a")
	_, _ = handler.Handle(ctx, "b")

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)

	sum, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(2), sum.DataPoints[0].Value)
}

func TestOutcome(t *testing.T) {
	testCases := []struct {
		err  error
		want string
	}{
		{nil, observability.OutcomeOK},
		{errs.NewValueIsRequiredError("paymentMethod"), observability.OutcomeValidation},
		{errors.Join(errs.NewValueIsRequiredError("a"), errs.NewValueIsInvalidError("b")), observability.OutcomeValidation},
		{errs.NewObjectNotFoundError("order", "1"), observability.OutcomeNotFound},
		{errs.NewAccessDeniedError("cancel order", "u"), observability.OutcomeDenied},
		{errs.NewStatusTransitionError("Paid", "pay", "order is already paid"), observability.OutcomeInvalidTransition},
		{errs.NewConcurrencyConflictError("order", "1"), observability.OutcomeConflict},
		{errs.NewStorageUnavailableError("list orders"), observability.OutcomeStorage},
		{errors.New("boom"), observability.OutcomeError},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, observability.Outcome(tc.err))
	}
}
