package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

var ErrMarkItemsReadyCommandIsNotConstructed = errors.New(
	"MarkItemsReadyCommand must be created via NewMarkItemsReadyCommand constructor",
)

// MarkItemsReadyCommand represents the kitchen completing one or more
// items of an order.
type MarkItemsReadyCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	itemIDs   []kernel.UUID
	changedBy string

	guard guard.ConstructorGuard
}

// NewMarkItemsReadyCommand creates a command to complete the given items.
func NewMarkItemsReadyCommand(orderID kernel.UUID, itemIDs []kernel.UUID, changedBy string) (MarkItemsReadyCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkItemsReadyCommand{}, err
	}
	if len(itemIDs) == 0 {
		return MarkItemsReadyCommand{}, errs.NewValueIsRequiredError("itemIds")
	}
	for _, id := range itemIDs {
		if err := id.Validate(); err != nil {
			return MarkItemsReadyCommand{}, err
		}
	}

	return MarkItemsReadyCommand{
		orderID:   orderID,
		itemIDs:   itemIDs,
		changedBy: changedBy,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkItemsReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkItemsReadyCommandIsNotConstructed)
}

// OrderID returns the target order.
func (c MarkItemsReadyCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemIDs returns the items to complete.
func (c MarkItemsReadyCommand) ItemIDs() []kernel.UUID {
	return c.itemIDs
}

// ChangedBy returns the actor, used when the completion ripples into an
// order-level ready transition.
func (c MarkItemsReadyCommand) ChangedBy() string {
	return c.changedBy
}
