// Package settingsrepo reads the per-restaurant key/value settings blob.
package settingsrepo

import (
	"github.com/google/uuid"
)

// SettingDTO is one key/value row of a restaurant's settings blob. The core
// only reads these; an external admin surface owns the writes.
type SettingDTO struct {
	RestaurantID uuid.UUID `gorm:"type:uuid;primaryKey"`
	Key          string    `gorm:"primaryKey"`
	Value        string
}

// TableName overrides GORM's default naming to use "restaurant_settings".
func (SettingDTO) TableName() string {
	return "restaurant_settings"
}
