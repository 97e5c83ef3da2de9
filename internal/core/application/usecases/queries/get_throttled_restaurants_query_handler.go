package queries

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetThrottledRestaurantsQueryHandler finds restaurants whose held queues
// are non-empty.
type GetThrottledRestaurantsQueryHandler struct {
	db *gorm.DB
}

// NewGetThrottledRestaurantsQueryHandler creates a handler for throttled
// restaurant queries.
func NewGetThrottledRestaurantsQueryHandler(db *gorm.DB) GetThrottledRestaurantsQueryHandler {
	return GetThrottledRestaurantsQueryHandler{db: db}
}

// Handle returns every restaurant with at least one held, non-terminal
// order. Restaurants are listed once regardless of how many orders they
// have parked.
func (h GetThrottledRestaurantsQueryHandler) Handle(
	ctx context.Context,
	query GetThrottledRestaurantsQuery,
) ([]GetThrottledRestaurantsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT DISTINCT restaurant_id
		FROM orders
		WHERE throttle_state = ? AND status NOT IN (?, ?)
		ORDER BY restaurant_id
	`,
		order.ThrottleHeld.String(),
		order.StatusCompleted.String(), order.StatusCancelled.String(),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	restaurants := make([]GetThrottledRestaurantsQueryResponse, 0)
	for rows.Next() {
		var id uuid.UUID
		if err = rows.Scan(&id); err != nil {
			return nil, err
		}

		restaurantID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		restaurants = append(restaurants, GetThrottledRestaurantsQueryResponse{RestaurantID: restaurantID})
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return restaurants, nil
}
