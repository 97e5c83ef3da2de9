package ports

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"
)

// SettingsRepository reads a restaurant's raw settings blob. The core never
// writes settings; values are coerced and clamped by
// throttling.NewSettingsFromBlob on every read rather than trusted raw.
type SettingsRepository interface {
	// GetValues returns the restaurant's settings as an opaque key/value
	// map. A restaurant with no stored settings yields an empty map, not
	// an error.
	GetValues(ctx context.Context, restaurantID kernel.UUID) (map[string]string, error)
}
