// Package jobs provides scheduled background tasks for the dispatch system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order dispatch.
//
// # Available Jobs
//
// 1. StaleCourierJob - Forces couriers offline when their last heartbeat is
// older than the heartbeat TTL, so stale sessions stop receiving offers.
// 2. RebroadcastJob - Re-publishes still-unclaimed eligible orders through the
// broadcast channel, compensating for dropped best-effort notices.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(staleCourierJob, rebroadcastJob)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Both jobs take a cron expression with a seconds field; the defaults are
// "*/30 * * * * *" for the stale courier sweep and "*/15 * * * * *" for the
// re-broadcast.
//
// # Error Handling
//
// - The sweep job ignores the expected no-stale-couriers outcome
// - The rebroadcast job logs feed read failures and publishes best-effort
// - Failed job starts will stop any already running jobs
package jobs
