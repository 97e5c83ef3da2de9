package commands

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrEvaluateReleaseCommandIsNotConstructed = errors.New(
	"EvaluateReleaseCommand must be created via NewEvaluateReleaseCommand constructor",
)

// EvaluateReleaseCommand asks the throttling engine to re-examine a
// restaurant's held queue and let eligible orders through.
type EvaluateReleaseCommand struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewEvaluateReleaseCommand creates an evaluation command for the
// restaurant's held queue.
func NewEvaluateReleaseCommand(restaurantID kernel.UUID) (EvaluateReleaseCommand, error) {
	cmd := EvaluateReleaseCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := restaurantID.Validate(); err != nil {
		return EvaluateReleaseCommand{}, err
	}

	cmd.restaurantID = restaurantID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c EvaluateReleaseCommand) Validate() error {
	return c.guard.Validate(ErrEvaluateReleaseCommandIsNotConstructed)
}

// RestaurantID returns the restaurant whose held queue is evaluated.
func (c EvaluateReleaseCommand) RestaurantID() kernel.UUID {
	return c.restaurantID
}
