package queries

import (
	"errors"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrGetStatusHistoryQueryIsNotConstructed = errors.New(
	"GetStatusHistoryQuery must be created via NewGetStatusHistoryQuery constructor",
)

// GetStatusHistoryQuery retrieves the append-only transition log of one
// order, oldest change first.
type GetStatusHistoryQuery struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID
	orderID      kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetStatusHistoryQuery creates a status history query.
func NewGetStatusHistoryQuery(restaurantID, orderID kernel.UUID) (GetStatusHistoryQuery, error) {
	if err := errors.Join(
		restaurantID.Validate(),
		orderID.Validate(),
	); err != nil {
		return GetStatusHistoryQuery{}, err
	}

	return GetStatusHistoryQuery{
		restaurantID: restaurantID,
		orderID:      orderID,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetStatusHistoryQuery) Validate() error {
	return q.guard.Validate(ErrGetStatusHistoryQueryIsNotConstructed)
}

// RestaurantID returns the restaurant the order must belong to.
func (q GetStatusHistoryQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// OrderID returns the order whose history is requested.
func (q GetStatusHistoryQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetStatusHistoryQueryResponse is one recorded transition.
type GetStatusHistoryQueryResponse struct {
	From      string
	To        string
	ChangedBy string
	Note      string
	CreatedAt time.Time
}
