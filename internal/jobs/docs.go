// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order lifecycle management.
//
// # Available Jobs
//
// 1. CommunicationRelayJob - Runs every minute to re-publish status change
// notifications that were never delivered and record the communication event
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(pendingHandler, recordHandler, publisher, logger)
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
// The relay job uses the cron expression "0 * * * * *" which means it runs at
// the start of every minute. A minute of lag is acceptable because the primary
// notification path publishes synchronously after each status change commits.
//
// # Error Handling
//
// - A failure on one order is logged and does not block the rest of the batch
// - The communication event is recorded only after a successful publish, so
// unpublished changes stay in the pending set for the next run
package jobs
