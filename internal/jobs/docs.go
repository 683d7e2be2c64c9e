// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the service.
//
// # Available Jobs
//
// 1. OutboxRelayJob - Runs every second to publish pending outbox records to the broker
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(relayHandler, outboxRepo, relayMetrics, batchSize, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The relay uses the cron expression "* * * * * *", running every second.
// Records whose backoff window has not elapsed are left for a later tick, so
// a short interval keeps delivery latency low without hammering the broker.
//
// # Error Handling
//
// A failed tick is logged and the next tick retries from the database state.
// Dead-lettered records are logged at error level and surface on the dead
// letter gauge for operator attention.
package jobs
