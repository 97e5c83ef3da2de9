package queries

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/services"

	"gorm.io/gorm"
)

// PacingCache is the read-through cache in front of the pacing aggregation.
// A miss is (zero value, false, nil); cache failures are reported but the
// handler treats them as misses so analytics never depend on cache health.
type PacingCache interface {
	Get(ctx context.Context, restaurantID kernel.UUID, lookbackDays int) (services.PacingMetrics, bool, error)
	Set(ctx context.Context, restaurantID kernel.UUID, lookbackDays int, metrics services.PacingMetrics) error
}

// GetPacingMetricsQueryHandler aggregates item fire-to-complete durations
// and feeds them to the pacing estimator, caching the result per
// restaurant and window.
type GetPacingMetricsQueryHandler struct {
	db        *gorm.DB
	cache     PacingCache
	estimator services.PacingEstimator
}

// NewGetPacingMetricsQueryHandler creates a handler for pacing metrics
// queries. The cache may be nil, in which case every call aggregates.
func NewGetPacingMetricsQueryHandler(db *gorm.DB, cache PacingCache) GetPacingMetricsQueryHandler {
	return GetPacingMetricsQueryHandler{
		db:        db,
		cache:     cache,
		estimator: services.NewPacingEstimator(),
	}
}

// Handle returns the pacing recommendation for the restaurant. With no
// usable history the estimator's fixed low-confidence default comes back,
// never an error.
func (h GetPacingMetricsQueryHandler) Handle(
	ctx context.Context,
	query GetPacingMetricsQuery,
) (GetPacingMetricsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPacingMetricsQueryResponse{}, err
	}

	if h.cache != nil {
		metrics, hit, err := h.cache.Get(ctx, query.RestaurantID(), query.LookbackDays())
		if err == nil && hit {
			return GetPacingMetricsQueryResponse{
				LookbackDays: query.LookbackDays(),
				Metrics:      metrics,
			}, nil
		}
	}

	now := time.Now()
	durations, err := h.collectDurations(ctx, query, now)
	if err != nil {
		return GetPacingMetricsQueryResponse{}, err
	}

	metrics := h.estimator.Estimate(durations, now)

	if h.cache != nil {
		_ = h.cache.Set(ctx, query.RestaurantID(), query.LookbackDays(), metrics)
	}

	return GetPacingMetricsQueryResponse{
		LookbackDays: query.LookbackDays(),
		Metrics:      metrics,
	}, nil
}

// collectDurations pulls whole-second fire-to-complete durations for items
// fired and completed inside the lookback window. Only items that were
// actually fired contribute; the estimator discards implausible values
// itself.
func (h GetPacingMetricsQueryHandler) collectDurations(
	ctx context.Context,
	query GetPacingMetricsQuery,
	now time.Time,
) ([]int64, error) {
	windowStart := now.AddDate(0, 0, -query.LookbackDays())

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT CAST(EXTRACT(EPOCH FROM (i.completed_at - i.course_fired_at)) AS BIGINT)
		FROM order_items i
		JOIN orders o ON o.id = i.order_id
		WHERE o.restaurant_id = ?
			AND i.course_fired_at IS NOT NULL
			AND i.completed_at IS NOT NULL
			AND i.course_fired_at >= ?
			AND i.completed_at >= ?
	`, query.RestaurantID().Bytes(), windowStart, windowStart).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	durations := make([]int64, 0)
	for rows.Next() {
		var seconds int64
		if err = rows.Scan(&seconds); err != nil {
			return nil, err
		}
		durations = append(durations, seconds)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return durations, nil
}
