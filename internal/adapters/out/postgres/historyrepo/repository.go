package historyrepo

import (
	"context"

	"kitchen/internal/core/domain/model/order"

	"gorm.io/gorm"
)

// GormHistoryRepository implements ports.HistoryRepository using GORM.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GORM history repository.
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Append inserts one transition record.
func (r *GormHistoryRepository) Append(ctx context.Context, change *order.StatusChange) error {
	dto := fromDomain(change)
	return r.db.WithContext(ctx).Create(&dto).Error
}
