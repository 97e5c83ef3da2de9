package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrFireItemCommandIsNotConstructed = errors.New(
	"FireItemCommand must be created via NewFireItemCommand constructor",
)

// FireItemCommand represents an on-the-fly override for one item,
// bypassing its course pacing.
type FireItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	itemID  kernel.UUID

	guard guard.ConstructorGuard
}

// NewFireItemCommand creates a command to fire a single item.
func NewFireItemCommand(orderID, itemID kernel.UUID) (FireItemCommand, error) {
	cmd := FireItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		itemID.Validate(),
	); err != nil {
		return FireItemCommand{}, err
	}

	cmd.orderID = orderID
	cmd.itemID = itemID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FireItemCommand) Validate() error {
	return c.guard.Validate(ErrFireItemCommandIsNotConstructed)
}

// OrderID returns the target order.
func (c FireItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ItemID returns the item to fire.
func (c FireItemCommand) ItemID() kernel.UUID {
	return c.itemID
}
