package queries

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/guard"
)

var ErrGetThrottledRestaurantsQueryIsNotConstructed = errors.New(
	"GetThrottledRestaurantsQuery must be created via NewGetThrottledRestaurantsQuery constructor",
)

// GetThrottledRestaurantsQuery lists restaurants that currently have held
// orders. The sweep job uses it to know whose queues still need periodic
// evaluation.
type GetThrottledRestaurantsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetThrottledRestaurantsQuery creates a query for restaurants with held
// orders.
func NewGetThrottledRestaurantsQuery() GetThrottledRestaurantsQuery {
	return GetThrottledRestaurantsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetThrottledRestaurantsQuery) Validate() error {
	return q.guard.Validate(ErrGetThrottledRestaurantsQueryIsNotConstructed)
}

// GetThrottledRestaurantsQueryResponse identifies one restaurant with at
// least one held order.
type GetThrottledRestaurantsQueryResponse struct {
	RestaurantID kernel.UUID
}
