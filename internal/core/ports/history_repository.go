package ports

import (
	"context"

	"kitchen/internal/core/domain/model/order"
)

// HistoryRepository is the append-only store for status transitions.
// Records are inserted in the same transaction as the order update that
// produced them and are never modified afterwards; reading happens through
// the query side.
type HistoryRepository interface {
	// Append inserts one status-history record.
	Append(ctx context.Context, record *order.StatusChange) error
}
