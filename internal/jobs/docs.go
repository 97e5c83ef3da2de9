// Package jobs provides scheduled background tasks for the kitchen service.
//
// Jobs are cron-based, built on github.com/robfig/cron/v3, and managed
// through JobManager:
//
//	jobManager := jobs.NewJobManager(evaluateHandler, restaurantsHandler, notifier, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Available Jobs
//
// ThrottleSweepJob runs every 30 seconds and re-evaluates the held queue of
// every restaurant that still has held orders. The HTTP layer already
// evaluates after each mutation; the sweep exists for the quiet case, where
// no request would otherwise trigger max-hold timeouts or load-recovery
// releases.
package jobs
