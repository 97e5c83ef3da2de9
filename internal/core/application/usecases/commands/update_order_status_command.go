package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand represents a request to move an order to a new
// lifecycle status. Cancellation reason and actor are only used when the
// target status is cancelled.
type UpdateOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID            kernel.UUID
	newStatus          order.Status
	changedBy          string
	note               string
	cancellationReason string
	cancelledBy        string

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand creates a status-change command. The actor
// requirement for cancellations is enforced by the aggregate, not here,
// so the rejection carries the domain's own error.
func NewUpdateOrderStatusCommand(
	orderID kernel.UUID,
	newStatus order.Status,
	changedBy, note, cancellationReason, cancelledBy string,
) (UpdateOrderStatusCommand, error) {
	cmd := UpdateOrderStatusCommand{
		changedBy:          changedBy,
		note:               note,
		cancellationReason: cancellationReason,
		cancelledBy:        cancelledBy,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setNewStatus(newStatus),
	); err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}

// OrderID returns the target order.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// NewStatus returns the requested status.
func (c UpdateOrderStatusCommand) NewStatus() order.Status {
	return c.newStatus
}

// ChangedBy returns the actor requesting the transition.
func (c UpdateOrderStatusCommand) ChangedBy() string {
	return c.changedBy
}

// Note returns the optional free-text note for the history record.
func (c UpdateOrderStatusCommand) Note() string {
	return c.note
}

// CancellationReason returns the stated reason for a cancellation.
func (c UpdateOrderStatusCommand) CancellationReason() string {
	return c.cancellationReason
}

// CancelledBy returns the actor for a cancellation.
func (c UpdateOrderStatusCommand) CancelledBy() string {
	return c.cancelledBy
}

func (c *UpdateOrderStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *UpdateOrderStatusCommand) setNewStatus(newStatus order.Status) error {
	if err := newStatus.Validate(); err != nil {
		return err
	}
	c.newStatus = newStatus
	return nil
}
