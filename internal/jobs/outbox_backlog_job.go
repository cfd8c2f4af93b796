package jobs

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const backlogSchedule = "0 * * * * *"

// OutboxBacklog counts outbox messages not yet published.
type OutboxBacklog interface {
	Pending(ctx context.Context) (int64, error)
}

// OutboxBacklogJob records the outbox backlog as the orders.outbox.pending gauge and
// warns when it grows past warnAbove.
type OutboxBacklogJob struct {
	backlog   OutboxBacklog
	gauge     metric.Int64Gauge
	warnAbove int64
	cron      *cron.Cron
	logger    *slog.Logger
}

func NewOutboxBacklogJob(backlog OutboxBacklog, meter metric.Meter, warnAbove int64, logger *slog.Logger) *OutboxBacklogJob {
	if meter == nil {
		meter = noop.NewMeterProvider().Meter("orders/jobs")
	}
	gauge, err := meter.Int64Gauge("orders.outbox.pending",
		metric.WithDescription("Outbox messages waiting to be published"))
	if err != nil {
		gauge, _ = noop.NewMeterProvider().Meter("orders/jobs").Int64Gauge("orders.outbox.pending")
	}
	return &OutboxBacklogJob{
		backlog:   backlog,
		gauge:     gauge,
		warnAbove: warnAbove,
		cron:      newCron(),
		logger:    logger.With("component", "outbox_backlog_job"),
	}
}

func (j *OutboxBacklogJob) Start() error {
	if _, err := j.cron.AddFunc(backlogSchedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox backlog job started (running every minute)")
	return nil
}

func (j *OutboxBacklogJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox backlog job stopped")
}

func (j *OutboxBacklogJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), relayRunTimeout)
	defer cancel()

	pending, err := j.backlog.Pending(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox backlog job failed", "error", err)
		return
	}

	j.gauge.Record(ctx, pending)
	if j.warnAbove > 0 && pending > j.warnAbove {
		j.logger.WarnContext(ctx, "Outbox backlog is growing", "pending", pending)
	}
}
