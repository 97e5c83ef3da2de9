package settingsrepo

import (
	"context"

	"kitchen/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormSettingsRepository implements ports.SettingsRepository using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GORM settings repository.
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// GetValues returns the restaurant's settings as a key/value map. A
// restaurant with no rows yields an empty map.
func (r *GormSettingsRepository) GetValues(ctx context.Context, restaurantID kernel.UUID) (map[string]string, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []SettingDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "restaurant_id = ?", restaurantID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	values := make(map[string]string, len(dtos))
	for _, dto := range dtos {
		values[dto.Key] = dto.Value
	}

	return values, nil
}
