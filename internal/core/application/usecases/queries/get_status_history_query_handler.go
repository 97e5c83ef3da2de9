package queries

import (
	"context"

	"kitchen/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetStatusHistoryQueryHandler reads an order's transition log from the
// database.
type GetStatusHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetStatusHistoryQueryHandler creates a handler for status history
// queries.
func NewGetStatusHistoryQueryHandler(db *gorm.DB) GetStatusHistoryQueryHandler {
	return GetStatusHistoryQueryHandler{db: db}
}

// Handle returns the order's transitions oldest-first. Returns
// errs.ObjectNotFoundError when the order does not exist in the restaurant;
// an existing order with no recorded transitions yields an empty slice.
func (h GetStatusHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetStatusHistoryQuery,
) ([]GetStatusHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var exists bool
	err := h.db.WithContext(ctx).Raw(`
		SELECT EXISTS (
			SELECT 1 FROM orders WHERE id = ? AND restaurant_id = ?
		)
	`, query.OrderID().Bytes(), query.RestaurantID().Bytes()).Row().Scan(&exists)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, errs.NewObjectNotFoundError("orderGuid", query.OrderID())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT from_status, to_status, changed_by, note, created_at
		FROM status_changes
		WHERE order_id = ?
		ORDER BY created_at, id
	`, query.OrderID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	changes := make([]GetStatusHistoryQueryResponse, 0)
	for rows.Next() {
		var change GetStatusHistoryQueryResponse
		err = rows.Scan(
			&change.From,
			&change.To,
			&change.ChangedBy,
			&change.Note,
			&change.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		changes = append(changes, change)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return changes, nil
}
