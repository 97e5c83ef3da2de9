package order

import (
	"time"

	"kitchen/internal/core/domain/model/kernel"
)

// StatusChange is the immutable record appended for every accepted status
// transition. It is written in the same transaction as the order update and
// is never mutated afterwards.
type StatusChange struct {
	ID        kernel.UUID
	OrderID   kernel.UUID
	From      Status
	To        Status
	ChangedBy string
	Note      string
	CreatedAt time.Time
}

// newStatusChange builds the history record for an accepted transition.
// Only the aggregate creates these, so construction stays unexported.
func newStatusChange(orderID kernel.UUID, from, to Status, changedBy, note string, now time.Time) *StatusChange {
	return &StatusChange{
		ID:        kernel.NewUUID(),
		OrderID:   orderID,
		From:      from,
		To:        to,
		ChangedBy: changedBy,
		Note:      note,
		CreatedAt: now,
	}
}
