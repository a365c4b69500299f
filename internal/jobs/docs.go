// Package jobs provides scheduled background tasks for the marketplace.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for order dispatch.
//
// # Available Jobs
//
// 1. AutoAssignJob - Periodically sweeps accepted, unassigned orders and
// dispatches them to available couriers in backlog order.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager, err := jobs.NewJobManager(autoAssignHandler, "*/30 * * * * *", logger)
//	if err != nil {
//		log.Fatal("Failed to create jobs:", err)
//	}
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The sweep schedule is a six-field cron expression with seconds resolution,
// taken from configuration. Each tick runs the same sweep an admin can
// trigger on demand over the API.
//
// # Error Handling
//
// An empty backlog or exhausted courier pool is a normal sweep outcome and
// is not treated as a failure; only construction and execution errors are
// logged.
package jobs
