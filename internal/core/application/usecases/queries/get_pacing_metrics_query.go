package queries

import (
	"errors"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/services"
	"kitchen/internal/pkg/guard"
)

var ErrGetPacingMetricsQueryIsNotConstructed = errors.New(
	"GetPacingMetricsQuery must be created via NewGetPacingMetricsQuery constructor",
)

// GetPacingMetricsQuery computes a course-pacing recommendation from the
// restaurant's historical fire-to-complete durations. A zero lookback means
// the default window; out-of-range values are clamped, not rejected.
type GetPacingMetricsQuery struct { //nolint:recvcheck //using for validation
	restaurantID kernel.UUID
	lookbackDays int

	guard guard.ConstructorGuard
}

// NewGetPacingMetricsQuery creates a pacing metrics query.
func NewGetPacingMetricsQuery(restaurantID kernel.UUID, lookbackDays int) (GetPacingMetricsQuery, error) {
	if err := restaurantID.Validate(); err != nil {
		return GetPacingMetricsQuery{}, err
	}

	return GetPacingMetricsQuery{
		restaurantID: restaurantID,
		lookbackDays: services.ClampLookbackDays(lookbackDays),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetPacingMetricsQuery) Validate() error {
	return q.guard.Validate(ErrGetPacingMetricsQueryIsNotConstructed)
}

// RestaurantID returns the restaurant being analyzed.
func (q GetPacingMetricsQuery) RestaurantID() kernel.UUID {
	return q.restaurantID
}

// LookbackDays returns the effective (already clamped) analysis window.
func (q GetPacingMetricsQuery) LookbackDays() int {
	return q.lookbackDays
}

// GetPacingMetricsQueryResponse carries the pacing recommendation together
// with the window it was computed over.
type GetPacingMetricsQueryResponse struct {
	LookbackDays int
	Metrics      services.PacingMetrics
}
