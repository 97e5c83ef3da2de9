package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrFireCourseCommandIsNotConstructed = errors.New(
	"FireCourseCommand must be created via NewFireCourseCommand constructor",
)

// FireCourseCommand represents a manual request to send a whole course to
// the kitchen ahead of (or instead of) its pacing.
type FireCourseCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	courseID kernel.UUID

	guard guard.ConstructorGuard
}

// NewFireCourseCommand creates a command to fire one course of an order.
func NewFireCourseCommand(orderID, courseID kernel.UUID) (FireCourseCommand, error) {
	cmd := FireCourseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		courseID.Validate(),
	); err != nil {
		return FireCourseCommand{}, err
	}

	cmd.orderID = orderID
	cmd.courseID = courseID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c FireCourseCommand) Validate() error {
	return c.guard.Validate(ErrFireCourseCommandIsNotConstructed)
}

// OrderID returns the target order.
func (c FireCourseCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourseID returns the course to fire.
func (c FireCourseCommand) CourseID() kernel.UUID {
	return c.courseID
}
