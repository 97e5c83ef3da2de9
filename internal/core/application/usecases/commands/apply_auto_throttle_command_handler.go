package commands

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/domain/model/throttling"
	"kitchen/internal/pkg/metrics"
)

// ApplyAutoThrottleCommandHandler is the admission-control entry point for
// new orders. It samples the kitchen load and holds the order when a
// trigger ceiling is reached. Load sampling and the hold are one
// transaction, so the decision never acts on a stale snapshot.
type ApplyAutoThrottleCommandHandler struct {
	uowFactory UoWFactory
}

// NewApplyAutoThrottleCommandHandler creates the auto-throttle handler.
func NewApplyAutoThrottleCommandHandler(uowFactory UoWFactory) ApplyAutoThrottleCommandHandler {
	return ApplyAutoThrottleCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns true when the order ended up held. It is a no-op when
// throttling is disabled, the order is rush (and rush orders are exempt),
// the load is under both ceilings, or the order is missing or not eligible
// for a hold.
func (h *ApplyAutoThrottleCommandHandler) Handle(ctx context.Context, cmd ApplyAutoThrottleCommand) (bool, error) {
	if err := cmd.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	settings, err := resolveSettings(ctx, uow, cmd.RestaurantID())
	if err != nil {
		return false, err
	}
	if !settings.Enabled() {
		return false, uow.Commit(ctx)
	}

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	if aggregate.IsRush() && !settings.AllowRushThrottle() {
		return false, uow.Commit(ctx)
	}

	now := time.Now()
	load, err := sampleLoad(ctx, orderRepo, cmd.RestaurantID(), now)
	if err != nil {
		return false, err
	}

	reason, triggered := throttling.TriggerReason(load, settings)
	if !triggered {
		return false, uow.Commit(ctx)
	}

	if !aggregate.Hold(reason, order.ThrottleSourceAuto, now) {
		return false, uow.Commit(ctx)
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	metrics.OrdersHeld.WithLabelValues(reason.String()).Inc()
	return true, nil
}
