package commands

import (
	"context"
	"time"
)

// MarkItemsReadyResult reports the ripple effects of completing items.
type MarkItemsReadyResult struct {
	// OrderReady is true when the completion finished the whole order and
	// it auto-transitioned to ready.
	OrderReady bool
}

// MarkItemsReadyCommandHandler completes items and lets the aggregate
// ripple the change upward: a finished course becomes READY on its own,
// and a finished order transitions to ready through the status machine,
// producing a history record like any other transition.
type MarkItemsReadyCommandHandler struct {
	uowFactory UoWFactory
}

// NewMarkItemsReadyCommandHandler creates a handler for item completion.
func NewMarkItemsReadyCommandHandler(uowFactory UoWFactory) MarkItemsReadyCommandHandler {
	return MarkItemsReadyCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle completes the items and persists the aggregate (and, when the
// order became ready, the history record) in one transaction.
func (h *MarkItemsReadyCommandHandler) Handle(ctx context.Context, cmd MarkItemsReadyCommand) (MarkItemsReadyResult, error) {
	if err := cmd.Validate(); err != nil {
		return MarkItemsReadyResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return MarkItemsReadyResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return MarkItemsReadyResult{}, err
	}

	record, err := aggregate.MarkItemsReady(cmd.ItemIDs(), cmd.ChangedBy(), time.Now())
	if err != nil {
		return MarkItemsReadyResult{}, err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return MarkItemsReadyResult{}, err
	}

	if record != nil {
		if err = uow.HistoryRepository().Append(ctx, record); err != nil {
			return MarkItemsReadyResult{}, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return MarkItemsReadyResult{}, err
	}

	return MarkItemsReadyResult{OrderReady: record != nil}, nil
}
