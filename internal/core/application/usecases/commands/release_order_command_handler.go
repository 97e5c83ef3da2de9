package commands

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/pkg/metrics"
)

// ReleaseOrderCommandHandler releases a held order by operator request,
// bypassing the load evaluation. Releasing an order that is not held is a
// false no-op, which makes the operation idempotent.
type ReleaseOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewReleaseOrderCommandHandler creates a handler for manual releases.
func NewReleaseOrderCommandHandler(uowFactory UoWFactory) ReleaseOrderCommandHandler {
	return ReleaseOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle releases the order with reason MANUAL_RELEASE and source MANUAL.
// Returns true when the order changed state.
func (h *ReleaseOrderCommandHandler) Handle(ctx context.Context, cmd ReleaseOrderCommand) (bool, error) {
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

	if !aggregate.Release(order.ReleaseReasonManualRelease, order.ThrottleSourceManual, time.Now()) {
		return false, nil
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	metrics.OrdersReleased.WithLabelValues(order.ReleaseReasonManualRelease.String()).Inc()
	return true, nil
}
