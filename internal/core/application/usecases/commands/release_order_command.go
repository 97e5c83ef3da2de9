package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrReleaseOrderCommandIsNotConstructed = errors.New(
	"ReleaseOrderCommand must be created via NewReleaseOrderCommand constructor",
)

// ReleaseOrderCommand represents an operator manually letting a held order
// back into the kitchen.
type ReleaseOrderCommand struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID
	orderID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewReleaseOrderCommand creates a manual release command.
func NewReleaseOrderCommand(restaurantID, orderID kernel.UUID) (ReleaseOrderCommand, error) {
	cmd := ReleaseOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		restaurantID.Validate(),
		orderID.Validate(),
	); err != nil {
		return ReleaseOrderCommand{}, err
	}

	cmd.restaurantID = restaurantID
	cmd.orderID = orderID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseOrderCommand) Validate() error {
	return c.guard.Validate(ErrReleaseOrderCommandIsNotConstructed)
}

// RestaurantID returns the restaurant the order must belong to.
func (c ReleaseOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// OrderID returns the order to release.
func (c ReleaseOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}
