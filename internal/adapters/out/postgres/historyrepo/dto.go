// Package historyrepo persists the append-only status transition log.
package historyrepo

import (
	"time"

	"kitchen/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// StatusChangeDTO is the database row for one recorded transition. Rows are
// insert-only; nothing in the system updates or deletes them.
type StatusChangeDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	FromStatus string    `gorm:"type:varchar(16)"`
	ToStatus   string    `gorm:"type:varchar(16)"`
	ChangedBy  string
	Note       string
	CreatedAt  time.Time
}

// TableName overrides GORM's default naming to use "status_changes".
func (StatusChangeDTO) TableName() string {
	return "status_changes"
}

func fromDomain(change *order.StatusChange) StatusChangeDTO {
	return StatusChangeDTO{
		ID:         change.ID.Bytes(),
		OrderID:    change.OrderID.Bytes(),
		FromStatus: change.From.String(),
		ToStatus:   change.To.String(),
		ChangedBy:  change.ChangedBy,
		Note:       change.Note,
		CreatedAt:  change.CreatedAt,
	}
}
