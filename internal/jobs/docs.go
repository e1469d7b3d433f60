// Package jobs provides scheduled background tasks for the ordering service.
//
// Jobs are cron-based (github.com/robfig/cron/v3, seconds resolution).
//
// # Available Jobs
//
// OutboxRelayJob publishes committed domain events from the outbox table to
// RabbitMQ. It runs every second by default; overlapping ticks are skipped.
//
// # Usage
//
//	relay, err := jobs.NewOutboxRelayJob(relayHandler, cfg.OutboxRelaySchedule, cfg.OutboxBatchSize, logger)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	jobManager := jobs.NewJobManager(relay)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed publish ends the tick and is logged. Messages published before
// the failure are already marked; the rest are retried on the next tick.
package jobs
