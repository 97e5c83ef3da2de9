package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrApplyAutoThrottleCommandIsNotConstructed = errors.New(
	"ApplyAutoThrottleCommand must be created via NewApplyAutoThrottleCommand constructor",
)

// ApplyAutoThrottleCommand asks the engine to decide, right after an order
// was created, whether the kitchen is overloaded enough to hold it.
type ApplyAutoThrottleCommand struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID
	orderID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewApplyAutoThrottleCommand creates an admission-control command for a
// freshly created order.
func NewApplyAutoThrottleCommand(restaurantID, orderID kernel.UUID) (ApplyAutoThrottleCommand, error) {
	cmd := ApplyAutoThrottleCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		restaurantID.Validate(),
		orderID.Validate(),
	); err != nil {
		return ApplyAutoThrottleCommand{}, err
	}

	cmd.restaurantID = restaurantID
	cmd.orderID = orderID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ApplyAutoThrottleCommand) Validate() error {
	return c.guard.Validate(ErrApplyAutoThrottleCommandIsNotConstructed)
}

// RestaurantID returns the restaurant whose load is sampled.
func (c ApplyAutoThrottleCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// OrderID returns the candidate order.
func (c ApplyAutoThrottleCommand) OrderID() kernel.UUID {
	return c.orderID
}
