package jobs

import (
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/metric"
)

// backlogWarnThreshold is the pending count above which the backlog job warns.
const backlogWarnThreshold = 1000

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	outboxRelayJob   *OutboxRelayJob
	outboxBacklogJob *OutboxBacklogJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	relay OutboxRelay,
	backlog OutboxBacklog,
	relaySchedule string,
	meter metric.Meter,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		outboxRelayJob:   NewOutboxRelayJob(relay, relaySchedule, logger),
		outboxBacklogJob: NewOutboxBacklogJob(backlog, meter, backlogWarnThreshold, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.outboxRelayJob.Start(); err != nil {
		return fmt.Errorf("failed to start outbox relay job: %w", err)
	}

	if err := jm.outboxBacklogJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.outboxRelayJob.Stop()
		return fmt.Errorf("failed to start outbox backlog job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.outboxBacklogJob.Stop()
	jm.outboxRelayJob.Stop()
}
