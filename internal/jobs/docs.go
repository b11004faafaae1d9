// Package jobs provides scheduled background tasks for the storefront.
//
// Jobs are cron-based (github.com/robfig/cron/v3, with a seconds field) and call
// application command handlers:
//
//  1. NewCartAbandonmentJob - flags ACTIVE carts idle longer than the session lifetime as ABANDONED
//  2. NewConversionRelayJob - delivers PENDING conversion events from the outbox to Meta
//  3. NewFeedGenerationJob - republishes the catalogue CSV to the blob store
//
// # Usage
//
//	jobManager := jobs.NewJobManager(jobs.DefaultSchedules, abandon, jobs.DefaultAbandonAfter,
//		relay, jobs.RelayLimits{BatchSize: 100, MaxAttempts: 5}, feed, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Handler errors are logged and the next tick retries. Executions of one job never
// overlap, and a panic is recovered and logged by cron. Failed job starts stop any
// already running jobs.
package jobs
