package commands

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/pkg/metrics"
)

// HoldOrderCommandHandler parks an order by operator request. It skips the
// load checks but respects the same guards as the engine: a missing,
// terminal, or already-held-or-released order is a false no-op, never an
// error — the caller surfaces "not found or not eligible" without leaking
// which.
type HoldOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewHoldOrderCommandHandler creates a handler for manual holds.
func NewHoldOrderCommandHandler(uowFactory UoWFactory) HoldOrderCommandHandler {
	return HoldOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle holds the order with reason MANUAL_HOLD. Returns true when the
// order changed state.
func (h *HoldOrderCommandHandler) Handle(ctx context.Context, cmd HoldOrderCommand) (bool, error) {
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

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, err
	}

	if !aggregate.RestaurantID().IsEqual(cmd.RestaurantID()) {
		return false, nil
	}

	if !aggregate.Hold(order.ThrottleReasonManualHold, order.ThrottleSourceManual, time.Now()) {
		return false, nil
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	metrics.OrdersHeld.WithLabelValues(order.ThrottleReasonManualHold.String()).Inc()
	return true, nil
}
