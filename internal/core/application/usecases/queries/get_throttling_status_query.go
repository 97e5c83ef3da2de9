package queries

import (
	"errors"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrGetThrottlingStatusQueryIsNotConstructed = errors.New(
	"GetThrottlingStatusQuery must be created via NewGetThrottlingStatusQuery constructor",
)

// GetThrottlingStatusQuery retrieves a restaurant's throttling dashboard:
// whether the engine is on, whether it would hold the next order, and the
// live load counts against the configured ceilings.
type GetThrottlingStatusQuery struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetThrottlingStatusQuery creates a throttling status query.
func NewGetThrottlingStatusQuery(restaurantID kernel.UUID) (GetThrottlingStatusQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetThrottlingStatusQuery{}, err
	}

	return GetThrottlingStatusQuery{
		restaurantID: restaurantID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetThrottlingStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetThrottlingStatusQueryIsNotConstructed)
}

// RestaurantID returns the restaurant being inspected.
func (q GetThrottlingStatusQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// GetThrottlingStatusQueryResponse is the live throttling snapshot: the
// effective (clamped) settings, the load sample, and whether that load would
// hold the next incoming order.
type GetThrottlingStatusQueryResponse struct {
	Enabled       bool
	Triggering    bool
	TriggerReason string

	ActiveOrders  int
	OverdueOrders int
	HeldOrders    int

	MaxActiveOrders      int
	MaxOverdueOrders     int
	ReleaseActiveOrders  int
	ReleaseOverdueOrders int
	MaxHoldMinutes       int
	AllowRushThrottle    bool

	EvaluatedAt time.Time
}
