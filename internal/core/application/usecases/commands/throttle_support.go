package commands

import (
	"context"
	"errors"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/throttling"
	"kitchen/internal/core/ports"
	"kitchen/internal/pkg/errs"
)

// resolveSettings reads the restaurant's raw settings blob inside the
// current transaction and coerces it into clamped Settings. Malformed or
// missing configuration never fails the caller.
func resolveSettings(ctx context.Context, uow UoW, restaurantID kernel.UUID) (throttling.Settings, error) {
	blob, err := uow.SettingsRepository().GetValues(ctx, restaurantID)
	if err != nil {
		return throttling.Settings{}, err
	}
	return throttling.NewSettingsFromBlob(blob), nil
}

// sampleLoad counts the restaurant's kitchen queue inside the current
// transaction, so the snapshot and the decision consuming it see the same
// rows.
func sampleLoad(ctx context.Context, repo ports.OrderRepository, restaurantID kernel.UUID, now time.Time) (throttling.Load, error) {
	active, err := repo.CountActive(ctx, restaurantID)
	if err != nil {
		return throttling.Load{}, err
	}

	overdue, err := repo.CountOverdue(ctx, restaurantID, now.Add(-throttling.OverdueAge))
	if err != nil {
		return throttling.Load{}, err
	}

	held, err := repo.CountHeld(ctx, restaurantID)
	if err != nil {
		return throttling.Load{}, err
	}

	return throttling.Load{
		ActiveOrders:  active,
		OverdueOrders: overdue,
		HeldOrders:    held,
	}, nil
}

// isNotFound distinguishes "nothing to hold/release" from real store
// failures for the boolean-result operations.
func isNotFound(err error) bool {
	return errors.Is(err, errs.ErrObjectNotFound)
}
