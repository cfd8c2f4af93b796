// Package jobs provides scheduled background tasks for the order service.
//
// Jobs are built on github.com/robfig/cron/v3 with second-level schedules. A run that
// is still in progress when its next tick fires is skipped, so a slow broker never
// piles up overlapping relays.
//
// # Available Jobs
//
// 1. OutboxRelayJob - publishes pending outbox messages (every second by default)
// 2. OutboxBacklogJob - records how many outbox messages are still unpublished (every minute)
//
// # Usage
//
//	jobManager := jobs.NewJobManager(relay, relay, jobs.DefaultRelaySchedule, meter, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// Neither job touches order rows; they only read and mark outbox messages.
package jobs
