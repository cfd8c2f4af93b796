package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

type fakeOutbox struct {
	relayed  atomic.Int32
	relayErr error
	pending  int64
}

func (f *fakeOutbox) RelayPending(context.Context) (int, error) {
	f.relayed.Add(1)
	if f.relayErr != nil {
		return 0, f.relayErr
	}
	return 1, nil
}

func (f *fakeOutbox) Pending(context.Context) (int64, error) {
	return f.pending, nil
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger() (*slog.Logger, *syncBuffer) {
	buf := &syncBuffer{}
	return slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})), buf
}

func TestOutboxRelayJob_RunsOnSchedule(t *testing.T) {
	logger, _ := newTestLogger()
	outbox := &fakeOutbox{}
	job := NewOutboxRelayJob(outbox, "", logger)

	require.NoError(t, job.Start())
	assert.Eventually(t, func() bool { return outbox.relayed.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	job.Stop()
}

func TestOutboxRelayJob_LogsFailures(t *testing.T) {
	logger, logs := newTestLogger()
	outbox := &fakeOutbox{relayErr: errors.New("broker unreachable")}
	job := NewOutboxRelayJob(outbox, DefaultRelaySchedule, logger)

	job.run()

	assert.Contains(t, logs.String(), "Outbox relay job failed")
	assert.Contains(t, logs.String(), "broker unreachable")
	assert.Contains(t, logs.String(), `"component":"outbox_relay_job"`)
}

func TestOutboxRelayJob_InvalidSchedule(t *testing.T) {
	logger, _ := newTestLogger()

	err := NewOutboxRelayJob(&fakeOutbox{}, "every now and then", logger).Start()

	assert.Error(t, err)
}

func TestOutboxBacklogJob_RecordsPending(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	logger, logs := newTestLogger()
	job := NewOutboxBacklogJob(&fakeOutbox{pending: 42}, meter, 10, logger)

	job.run()

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(t.Context(), &rm))
	require.Len(t, rm.ScopeMetrics, 1)
	require.Len(t, rm.ScopeMetrics[0].Metrics, 1)
	gauge, ok := rm.ScopeMetrics[0].Metrics[0].Data.(metricdata.Gauge[int64])
	require.True(t, ok)
	require.Len(t, gauge.DataPoints, 1)
	assert.Equal(t, int64(42), gauge.DataPoints[0].Value)
	assert.Contains(t, logs.String(), "Outbox backlog is growing")
}

func TestJobManager_StartAll(t *testing.T) {
	logger, _ := newTestLogger()
	outbox := &fakeOutbox{}

	manager := NewJobManager(outbox, outbox, DefaultRelaySchedule, nil, logger)
	require.NoError(t, manager.StartAll())
	manager.StopAll()

	broken := NewJobManager(outbox, outbox, "not a schedule", nil, logger)
	err := broken.StartAll()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outbox relay job")
}
