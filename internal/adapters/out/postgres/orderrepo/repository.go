package orderrepo

import (
	"context"
	"errors"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/pkg/errs"

	"gorm.io/gorm"
)

// activeStatuses are the lifecycle states that occupy kitchen capacity.
var activeStatuses = []string{
	order.StatusPending.String(),
	order.StatusConfirmed.String(),
	order.StatusPreparing.String(),
}

var terminalStatuses = []string{
	order.StatusCompleted.String(),
	order.StatusCancelled.String(),
}

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order with all of its items.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order and every item row. A full save is used so
// that fields cleared by the domain (timestamps nulled on a hold) are
// written back as NULL.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	err := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(&dto).Error
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order with its items by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderGuid", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetHeld retrieves the restaurant's held, non-terminal orders, oldest hold
// first.
func (r *GormOrderRepository) GetHeld(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error) {
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("restaurant_id = ? AND throttle_state = ? AND status NOT IN ?",
			restaurantID.Bytes(), order.ThrottleHeld.String(), terminalStatuses).
		Order("throttle_held_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, domainErr := toDomain(dto)
		if domainErr != nil {
			return nil, domainErr
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// CountActive counts non-held orders in pending, confirmed, or preparing
// status.
func (r *GormOrderRepository) CountActive(ctx context.Context, restaurantID kernel.UUID) (int, error) {
	if err := restaurantID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("restaurant_id = ? AND status IN ? AND throttle_state != ?",
			restaurantID.Bytes(), activeStatuses, order.ThrottleHeld.String()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// CountOverdue counts active orders created before the cutoff.
func (r *GormOrderRepository) CountOverdue(ctx context.Context, restaurantID kernel.UUID, createdBefore time.Time) (int, error) {
	if err := restaurantID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("restaurant_id = ? AND status IN ? AND throttle_state != ? AND created_at < ?",
			restaurantID.Bytes(), activeStatuses, order.ThrottleHeld.String(), createdBefore).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// CountHeld counts held, non-terminal orders.
func (r *GormOrderRepository) CountHeld(ctx context.Context, restaurantID kernel.UUID) (int, error) {
	if err := restaurantID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("restaurant_id = ? AND throttle_state = ? AND status NOT IN ?",
			restaurantID.Bytes(), order.ThrottleHeld.String(), terminalStatuses).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}
