// Package jobs provides scheduled background tasks for the campus delivery system.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order dispatch.
//
// # Available Jobs
//
// 1. AssignmentRetryJob - Sweeps the pending_delivery backlog every five
// seconds and replays the assignment attempt for each queued order.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(backlogHandler, assignHandler, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The retry job treats a fully busy agent pool as an expected outcome and
// stops the sweep early: if the oldest order cannot be assigned, none of the
// younger ones can either.
package jobs
