package queries

import (
	"context"
	"time"

	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/domain/model/throttling"

	"gorm.io/gorm"
)

// GetThrottlingStatusQueryHandler reads the throttling snapshot straight
// from the database. The counts use the same definitions as the engine's
// transactional load sample, so the dashboard and the admission decision
// agree up to concurrent writes.
type GetThrottlingStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetThrottlingStatusQueryHandler creates a handler for throttling
// status queries.
func NewGetThrottlingStatusQueryHandler(db *gorm.DB) GetThrottlingStatusQueryHandler {
	return GetThrottlingStatusQueryHandler{db: db}
}

// Handle returns the restaurant's throttling snapshot. A restaurant with no
// stored settings reports the defaults with the engine disabled.
func (h GetThrottlingStatusQueryHandler) Handle(
	ctx context.Context,
	query GetThrottlingStatusQuery,
) (GetThrottlingStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetThrottlingStatusQueryResponse{}, err
	}

	settings, err := h.loadSettings(ctx, query)
	if err != nil {
		return GetThrottlingStatusQueryResponse{}, err
	}

	now := time.Now()
	load, err := h.sampleLoad(ctx, query, now)
	if err != nil {
		return GetThrottlingStatusQueryResponse{}, err
	}

	resp := GetThrottlingStatusQueryResponse{
		Enabled:              settings.Enabled(),
		ActiveOrders:         load.ActiveOrders,
		OverdueOrders:        load.OverdueOrders,
		HeldOrders:           load.HeldOrders,
		MaxActiveOrders:      settings.MaxActiveOrders(),
		MaxOverdueOrders:     settings.MaxOverdueOrders(),
		ReleaseActiveOrders:  settings.ReleaseActiveOrders(),
		ReleaseOverdueOrders: settings.ReleaseOverdueOrders(),
		MaxHoldMinutes:       settings.MaxHoldMinutes(),
		AllowRushThrottle:    settings.AllowRushThrottle(),
		EvaluatedAt:          now,
	}

	if settings.Enabled() {
		if reason, triggered := throttling.TriggerReason(load, settings); triggered {
			resp.Triggering = true
			resp.TriggerReason = reason.String()
		}
	}

	return resp, nil
}

func (h GetThrottlingStatusQueryHandler) loadSettings(
	ctx context.Context,
	query GetThrottlingStatusQuery,
) (throttling.Settings, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT key, value
		FROM restaurant_settings
		WHERE restaurant_id = ?
	`, query.RestaurantID().Bytes()).Rows()
	if err != nil {
		return throttling.Settings{}, err
	}
	defer rows.Close()

	blob := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err = rows.Scan(&key, &value); err != nil {
			return throttling.Settings{}, err
		}
		blob[key] = value
	}
	if err = rows.Err(); err != nil {
		return throttling.Settings{}, err
	}

	return throttling.NewSettingsFromBlob(blob), nil
}

func (h GetThrottlingStatusQueryHandler) sampleLoad(
	ctx context.Context,
	query GetThrottlingStatusQuery,
	now time.Time,
) (throttling.Load, error) {
	var load throttling.Load

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*) FILTER (
				WHERE status IN (?, ?, ?) AND throttle_state != ?
			) AS active,
			COUNT(*) FILTER (
				WHERE status IN (?, ?, ?) AND throttle_state != ? AND created_at < ?
			) AS overdue,
			COUNT(*) FILTER (
				WHERE throttle_state = ? AND status NOT IN (?, ?)
			) AS held
		FROM orders
		WHERE restaurant_id = ?
	`,
		order.StatusPending.String(), order.StatusConfirmed.String(), order.StatusPreparing.String(),
		order.ThrottleHeld.String(),
		order.StatusPending.String(), order.StatusConfirmed.String(), order.StatusPreparing.String(),
		order.ThrottleHeld.String(), now.Add(-throttling.OverdueAge),
		order.ThrottleHeld.String(),
		order.StatusCompleted.String(), order.StatusCancelled.String(),
		query.RestaurantID().Bytes(),
	).Row()

	if err := row.Scan(&load.ActiveOrders, &load.OverdueOrders, &load.HeldOrders); err != nil {
		return throttling.Load{}, err
	}

	return load, nil
}
