package commands

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/pkg/metrics"
)

// UpdateOrderStatusCommandHandler applies one transition of the order
// status machine. The order update and its history record are written in
// one transaction; a partial application is never observable.
//
// A cancelled transition frees kitchen capacity, so the caller should run
// the evaluate-and-release pass afterwards.
type UpdateOrderStatusCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateOrderStatusCommandHandler creates a handler for status changes.
func NewUpdateOrderStatusCommandHandler(uowFactory UoWFactory) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle validates the transition against the machine and persists the new
// status together with exactly one history row. Rejections come back as
// typed domain errors: errs.ObjectNotFoundError, order.InvalidTransitionError
// (its message enumerates the valid next statuses), or
// order.ErrCancelledByIsRequired.
func (h *UpdateOrderStatusCommandHandler) Handle(ctx context.Context, cmd UpdateOrderStatusCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	record, err := aggregate.ChangeStatus(cmd.NewStatus(), order.StatusChangeOptions{
		ChangedBy:          cmd.ChangedBy(),
		Note:               cmd.Note(),
		CancellationReason: cmd.CancellationReason(),
		CancelledBy:        cmd.CancelledBy(),
	}, time.Now())
	if err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return nil, err
	}

	if err = uow.HistoryRepository().Append(ctx, record); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	metrics.StatusTransitions.WithLabelValues(record.From.String(), record.To.String()).Inc()
	return aggregate, nil
}
