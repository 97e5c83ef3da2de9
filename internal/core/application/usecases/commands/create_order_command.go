package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
	"kitchen/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrItemSpecsAreRequired = errs.NewValueIsRequiredError("items")
)

// ItemSpec describes one item of a new order. CourseID groups items into a
// course sequenced by CourseSortOrder; leave it nil for items that go
// straight to the kitchen.
type ItemSpec struct {
	ID              kernel.UUID
	Name            string
	CourseID        *kernel.UUID
	CourseSortOrder int
}

// CreateOrderCommand represents a request to register a new kitchen order
// with its items and course structure.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID      kernel.UUID
	restaurantID kernel.UUID
	items        []ItemSpec
	isRush       bool

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates that both ids are valid and at least one item is given; item
// contents are validated by the domain constructors in the handler.
func NewCreateOrderCommand(orderID, restaurantID kernel.UUID, items []ItemSpec, isRush bool) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		isRush: isRush,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setRestaurantID(restaurantID),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the identifier for the new order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// RestaurantID returns the owning restaurant.
func (c CreateOrderCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}

// Items returns the item specifications.
func (c CreateOrderCommand) Items() []ItemSpec {
	return c.items
}

// IsRush reports whether the order is flagged as rush.
func (c CreateOrderCommand) IsRush() bool {
	return c.isRush
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setRestaurantID(restaurantID kernel.UUID) error {
	if err := restaurantID.Validate(); err != nil {
		return err
	}
	c.restaurantID = restaurantID
	return nil
}

func (c *CreateOrderCommand) setItems(items []ItemSpec) error {
	if len(items) == 0 {
		return ErrItemSpecsAreRequired
	}
	c.items = items
	return nil
}
