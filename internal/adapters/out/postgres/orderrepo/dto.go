// Package orderrepo persists order aggregates with their items. It maps the
// domain aggregate to the orders and order_items tables and reconstructs it
// through the domain restore constructors.
package orderrepo

import (
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is the database row for an order aggregate. Lifecycle and
// throttle enums are stored as their canonical strings so the raw-SQL query
// handlers and the dashboard read the same representation the domain prints.
type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	RestaurantID uuid.UUID `gorm:"type:uuid;index"`
	Status       string    `gorm:"type:varchar(16);index"`
	IsRush       bool

	CreatedAt          time.Time
	ConfirmedAt        *time.Time
	PreparingAt        *time.Time
	ReadyAt            *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string
	CancelledBy        string

	ThrottleState         string `gorm:"type:varchar(16);index"`
	ThrottleReason        string `gorm:"type:varchar(32)"`
	ThrottleHeldAt        *time.Time
	ThrottleReleasedAt    *time.Time
	ThrottleReleaseReason string `gorm:"type:varchar(32)"`
	ThrottleSource        string `gorm:"type:varchar(16)"`

	Items []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO is the database row for one order item.
type ItemDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID           uuid.UUID `gorm:"type:uuid;index"`
	Name              string
	Status            string     `gorm:"type:varchar(16)"`
	FulfillmentStatus string     `gorm:"type:varchar(16)"`
	CourseID          *uuid.UUID `gorm:"type:uuid"`
	CourseSortOrder   int
	CourseFireStatus  string `gorm:"type:varchar(16)"`
	CourseFiredAt     *time.Time
	CourseReadyAt     *time.Time
	SentToKitchenAt   *time.Time
	CompletedAt       *time.Time
}

// TableName overrides GORM's default naming to use "order_items".
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order aggregate and its items to database rows.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := make([]ItemDTO, 0, len(aggregate.Items()))
	for _, item := range aggregate.Items() {
		items = append(items, itemFromDomain(aggregate.ID().Bytes(), item))
	}

	return OrderDTO{
		ID:           aggregate.ID().Bytes(),
		RestaurantID: aggregate.RestaurantID().Bytes(),
		Status:       aggregate.Status().String(),
		IsRush:       aggregate.IsRush(),

		CreatedAt:          aggregate.CreatedAt(),
		ConfirmedAt:        aggregate.ConfirmedAt(),
		PreparingAt:        aggregate.PreparingAt(),
		ReadyAt:            aggregate.ReadyAt(),
		CompletedAt:        aggregate.CompletedAt(),
		CancelledAt:        aggregate.CancelledAt(),
		CancellationReason: aggregate.CancellationReason(),
		CancelledBy:        aggregate.CancelledBy(),

		ThrottleState:         aggregate.ThrottleState().String(),
		ThrottleReason:        aggregate.ThrottleReason().String(),
		ThrottleHeldAt:        aggregate.ThrottleHeldAt(),
		ThrottleReleasedAt:    aggregate.ThrottleReleasedAt(),
		ThrottleReleaseReason: aggregate.ThrottleReleaseReason().String(),
		ThrottleSource:        aggregate.ThrottleSource().String(),

		Items: items,
	}
}

func itemFromDomain(orderID uuid.UUID, item *order.Item) ItemDTO {
	var courseID *uuid.UUID
	if id := item.CourseID(); id != nil {
		raw := id.Bytes()
		courseID = &raw
	}

	return ItemDTO{
		ID:                item.ID().Bytes(),
		OrderID:           orderID,
		Name:              item.Name(),
		Status:            item.Status().String(),
		FulfillmentStatus: item.Fulfillment().String(),
		CourseID:          courseID,
		CourseSortOrder:   item.CourseSortOrder(),
		CourseFireStatus:  item.CourseFire().String(),
		CourseFiredAt:     item.CourseFiredAt(),
		CourseReadyAt:     item.CourseReadyAt(),
		SentToKitchenAt:   item.SentToKitchenAt(),
		CompletedAt:       item.CompletedAt(),
	}
}

// toDomain reconstructs the aggregate from its rows via RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	restaurantID, err := kernel.UUIDFromBytes(dto.RestaurantID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(order.RestoreOrderParams{
		ID:           id,
		RestaurantID: restaurantID,

		Status:             status,
		IsRush:             dto.IsRush,
		CreatedAt:          dto.CreatedAt,
		ConfirmedAt:        dto.ConfirmedAt,
		PreparingAt:        dto.PreparingAt,
		ReadyAt:            dto.ReadyAt,
		CompletedAt:        dto.CompletedAt,
		CancelledAt:        dto.CancelledAt,
		CancellationReason: dto.CancellationReason,
		CancelledBy:        dto.CancelledBy,

		ThrottleState:         order.ThrottleStateFromString(dto.ThrottleState),
		ThrottleReason:        order.ThrottleReasonFromString(dto.ThrottleReason),
		ThrottleHeldAt:        dto.ThrottleHeldAt,
		ThrottleReleasedAt:    dto.ThrottleReleasedAt,
		ThrottleReleaseReason: order.ReleaseReasonFromString(dto.ThrottleReleaseReason),
		ThrottleSource:        order.ThrottleSourceFromString(dto.ThrottleSource),

		Items: items,
	})
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var courseID *kernel.UUID
	if dto.CourseID != nil {
		cID, courseErr := kernel.UUIDFromBytes((*dto.CourseID)[:])
		if courseErr != nil {
			return nil, courseErr
		}
		courseID = &cID
	}

	return order.RestoreItem(
		id,
		dto.Name,
		order.ItemStatusFromString(dto.Status),
		order.FulfillmentStatusFromString(dto.FulfillmentStatus),
		courseID,
		dto.CourseSortOrder,
		order.CourseFireStatusFromString(dto.CourseFireStatus),
		dto.CourseFiredAt,
		dto.CourseReadyAt,
		dto.SentToKitchenAt,
		dto.CompletedAt,
	)
}
