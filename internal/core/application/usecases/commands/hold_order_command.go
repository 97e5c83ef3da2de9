package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrHoldOrderCommandIsNotConstructed = errors.New(
	"HoldOrderCommand must be created via NewHoldOrderCommand constructor",
)

// HoldOrderCommand represents an operator manually parking an order off
// the kitchen display, bypassing load checks.
type HoldOrderCommand struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID
	orderID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewHoldOrderCommand creates a manual hold command.
func NewHoldOrderCommand(restaurantID, orderID kernel.UUID) (HoldOrderCommand, error) {
	cmd := HoldOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		restaurantID.Validate(),
		orderID.Validate(),
	); err != nil {
		return HoldOrderCommand{}, err
	}

	cmd.restaurantID = restaurantID
	cmd.orderID = orderID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c HoldOrderCommand) Validate() error {
	return c.guard.Validate(ErrHoldOrderCommandIsNotConstructed)
}

// RestaurantID returns the restaurant the order must belong to.
func (c HoldOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// OrderID returns the order to hold.
func (c HoldOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
