package ports

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"
)

// OrderNotifier pushes real-time order-changed notifications to connected
// kitchen displays. The core engine never calls this itself: the owning
// application layer notifies after a successful mutation or a non-empty
// release pass, outside the transaction.
type OrderNotifier interface {
	// NotifyOrdersChanged announces that the given orders changed state.
	NotifyOrdersChanged(ctx context.Context, restaurantID kernel.UUID, orderIDs []kernel.UUID) error
}
