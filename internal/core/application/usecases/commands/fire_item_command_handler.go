package commands

import (
	"context"
	"time"
)

// FireItemCommandHandler pushes a single item onto the display on the fly,
// regardless of its course state.
type FireItemCommandHandler struct {
	uowFactory UoWFactory
}

// NewFireItemCommandHandler creates a handler for single-item firing.
func NewFireItemCommandHandler(uowFactory UoWFactory) FireItemCommandHandler {
	return FireItemCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle fires the item and persists the change. Returns
// errs.ObjectNotFoundError when the order or item does not exist.
func (h *FireItemCommandHandler) Handle(ctx context.Context, cmd FireItemCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.FireItem(cmd.ItemID(), time.Now()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
