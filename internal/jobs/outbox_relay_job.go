package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

const (
	DefaultRelaySchedule = "* * * * * *"
	relayRunTimeout      = 30 * time.Second
)

// OutboxRelay publishes one batch of pending outbox messages.
type OutboxRelay interface {
	RelayPending(ctx context.Context) (int, error)
}

// OutboxRelayJob runs the relay on a cron schedule.
type OutboxRelayJob struct {
	relay    OutboxRelay
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewOutboxRelayJob creates the job. An empty schedule means DefaultRelaySchedule.
func NewOutboxRelayJob(relay OutboxRelay, schedule string, logger *slog.Logger) *OutboxRelayJob {
	if schedule == "" {
		schedule = DefaultRelaySchedule
	}
	return &OutboxRelayJob{
		relay:    relay,
		schedule: schedule,
		cron:     newCron(),
		logger:   logger.With("component", "outbox_relay_job"),
	}
}

func (j *OutboxRelayJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, j.run); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started", "schedule", j.schedule)
	return nil
}

// Stop waits for a running relay to finish.
func (j *OutboxRelayJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

func (j *OutboxRelayJob) run() {
	ctx, cancel := context.WithTimeout(context.Background(), relayRunTimeout)
	defer cancel()

	sent, err := j.relay.RelayPending(ctx)
	if err != nil {
		j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		return
	}
	if sent > 0 {
		j.logger.DebugContext(ctx, "Outbox messages relayed", "count", sent)
	}
}

func newCron() *cron.Cron {
	return cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
}
