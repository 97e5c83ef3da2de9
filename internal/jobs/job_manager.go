package jobs

import (
	"fmt"
	"log/slog"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/application/usecases/queries"
	"kitchen/internal/core/ports"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	throttleSweepJob *ThrottleSweepJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	evaluateHandler commands.EvaluateReleaseCommandHandler,
	restaurantsHandler queries.GetThrottledRestaurantsQueryHandler,
	notifier ports.OrderNotifier,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		throttleSweepJob: NewThrottleSweepJob(evaluateHandler, restaurantsHandler, notifier, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.throttleSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start throttle sweep job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.throttleSweepJob.Stop()
}
