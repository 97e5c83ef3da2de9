// Package ports defines the contracts between the kitchen core and its
// infrastructure: persistence for orders, history, and settings, the unit
// of work that binds them into one transaction, and the notifier the
// application layer uses to push changes to connected displays.
package ports

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// An aggregate always travels with its items: Get loads them, Add and
// Update write order and item rows in the ambient transaction so holds and
// releases are never partially visible.
type OrderRepository interface {
	// Add persists a new order aggregate with all of its items.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate and every one
	// of its items.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate with its items by id.
	// Returns errs.ObjectNotFoundError when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetHeld retrieves every currently held order of a restaurant,
	// oldest hold first, with items loaded.
	GetHeld(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error)

	// CountActive counts non-held orders in pending, confirmed, or
	// preparing status for a restaurant.
	CountActive(ctx context.Context, restaurantID kernel.UUID) (int, error)

	// CountOverdue counts the subset of active orders created before the
	// given cutoff instant.
	CountOverdue(ctx context.Context, restaurantID kernel.UUID, createdBefore time.Time) (int, error)

	// CountHeld counts orders currently parked by the throttle.
	CountHeld(ctx context.Context, restaurantID kernel.UUID) (int, error)
}
