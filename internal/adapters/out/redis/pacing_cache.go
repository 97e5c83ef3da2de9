// Package redis caches pacing aggregation results. The aggregation scans a
// lookback window of completed items, so dashboards polling it share one
// computed result per restaurant and window.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/services"

	"github.com/redis/go-redis/v9"
)

const defaultTTL = 5 * time.Minute

// PacingCache implements the read-through cache used by the pacing metrics
// query handler.
type PacingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPacingCache creates a cache over the given client. A non-positive ttl
// falls back to the default.
func NewPacingCache(client *redis.Client, ttl time.Duration) *PacingCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &PacingCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached metrics for the restaurant and window. A missing
// key is (zero value, false, nil).
func (c *PacingCache) Get(ctx context.Context, restaurantID kernel.UUID, lookbackDays int) (services.PacingMetrics, bool, error) {
	raw, err := c.client.Get(ctx, cacheKey(restaurantID, lookbackDays)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return services.PacingMetrics{}, false, nil
		}
		return services.PacingMetrics{}, false, err
	}

	var metrics services.PacingMetrics
	if err = json.Unmarshal(raw, &metrics); err != nil {
		return services.PacingMetrics{}, false, err
	}

	return metrics, true, nil
}

// Set stores the metrics with the cache TTL.
func (c *PacingCache) Set(ctx context.Context, restaurantID kernel.UUID, lookbackDays int, metrics services.PacingMetrics) error {
	raw, err := json.Marshal(metrics)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, cacheKey(restaurantID, lookbackDays), raw, c.ttl).Err()
}

func cacheKey(restaurantID kernel.UUID, lookbackDays int) string {
	return fmt.Sprintf("pacing:%s:%d", restaurantID, lookbackDays)
}
