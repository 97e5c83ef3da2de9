package jobs

import (
	"context"
	"log/slog"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/application/usecases/queries"
	"kitchen/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// ThrottleSweepJob periodically re-evaluates every restaurant that still
// has held orders. Mutations already trigger evaluations inline; the sweep
// is the backstop that catches max-hold timeouts and load recovery on
// restaurants with no traffic.
type ThrottleSweepJob struct {
	evaluateHandler    commands.EvaluateReleaseCommandHandler
	restaurantsHandler queries.GetThrottledRestaurantsQueryHandler
	notifier           ports.OrderNotifier
	cron               *cron.Cron
	logger             *slog.Logger
}

// NewThrottleSweepJob creates the sweep job.
func NewThrottleSweepJob(
	evaluateHandler commands.EvaluateReleaseCommandHandler,
	restaurantsHandler queries.GetThrottledRestaurantsQueryHandler,
	notifier ports.OrderNotifier,
	logger *slog.Logger,
) *ThrottleSweepJob {
	return &ThrottleSweepJob{
		evaluateHandler:    evaluateHandler,
		restaurantsHandler: restaurantsHandler,
		notifier:           notifier,
		cron:               cron.New(cron.WithSeconds()),
		logger:             logger.With("component", "throttle_sweep_job"),
	}
}

// Start begins the sweep, running every 30 seconds.
func (j *ThrottleSweepJob) Start() error {
	_, err := j.cron.AddFunc("*/30 * * * * *", func() {
		j.sweep(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Throttle sweep job started (running every 30 seconds)")
	return nil
}

// Stop stops the sweep job.
func (j *ThrottleSweepJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Throttle sweep job stopped")
}

func (j *ThrottleSweepJob) sweep(ctx context.Context) {
	restaurants, err := j.restaurantsHandler.Handle(ctx, queries.NewGetThrottledRestaurantsQuery())
	if err != nil {
		j.logger.ErrorContext(ctx, "Throttle sweep failed to list restaurants", "error", err)
		return
	}

	for _, restaurant := range restaurants {
		cmd, cmdErr := commands.NewEvaluateReleaseCommand(restaurant.RestaurantID)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Throttle sweep failed to build command",
				"restaurantId", restaurant.RestaurantID.String(), "error", cmdErr)
			continue
		}

		released, evalErr := j.evaluateHandler.Handle(ctx, cmd)
		if evalErr != nil {
			j.logger.ErrorContext(ctx, "Throttle sweep evaluation failed",
				"restaurantId", restaurant.RestaurantID.String(), "error", evalErr)
			continue
		}
		if len(released) == 0 {
			continue
		}

		j.logger.InfoContext(ctx, "Throttle sweep released orders",
			"restaurantId", restaurant.RestaurantID.String(), "count", len(released))

		if j.notifier != nil {
			if notifyErr := j.notifier.NotifyOrdersChanged(ctx, restaurant.RestaurantID, released); notifyErr != nil {
				j.logger.ErrorContext(ctx, "Throttle sweep notification failed",
					"restaurantId", restaurant.RestaurantID.String(), "error", notifyErr)
			}
		}
	}
}
