package order

import (
	"errors"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")

	// ErrCancelledByIsRequired rejects a cancellation without an actor.
	ErrCancelledByIsRequired = errs.NewValueIsRequiredError("cancelledBy")

	// ErrItemsAreRequired rejects an order with no items.
	ErrItemsAreRequired = errs.NewValueIsRequiredError("order items")
)

// Order is the aggregate root for a kitchen ticket. It owns its items and
// is the only place where status transitions, course firing, and the
// throttle lifecycle are applied, so every multi-row change leaves the
// aggregate in one consistent piece.
//
// Invariants:
//   - Status transitions follow the table in Status.
//   - ThrottleState moves NONE -> HELD -> RELEASED, one way, and is frozen
//     once the order is completed or cancelled.
//   - throttleState = HELD implies throttleHeldAt is set and
//     throttleReleasedAt is nil.
//   - Items without a course never carry course-fire state.
type Order struct {
	id           kernel.UUID
	restaurantID kernel.UUID

	status             Status
	isRush             bool
	createdAt          time.Time
	confirmedAt        *time.Time
	preparingAt        *time.Time
	readyAt            *time.Time
	completedAt        *time.Time
	cancelledAt        *time.Time
	cancellationReason string
	cancelledBy        string

	throttleState         ThrottleState
	throttleReason        ThrottleReason
	throttleHeldAt        *time.Time
	throttleReleasedAt    *time.Time
	throttleReleaseReason ReleaseReason
	throttleSource        ThrottleSource

	items []*Item

	isConstructed bool
}

// NewOrder creates an order in pending status and fires the opening wave of
// items: every course-less item goes straight to the display, and the
// course with the minimum sort order fires immediately. Every other course
// starts HOLD/PENDING and waits for an explicit or paced fire.
func NewOrder(id, restaurantID kernel.UUID, items []*Item, isRush bool, now time.Time) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := restaurantID.Validate(); err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrItemsAreRequired
	}

	o := &Order{
		id:            id,
		restaurantID:  restaurantID,
		status:        StatusPending,
		isRush:        isRush,
		createdAt:     now,
		items:         items,
		isConstructed: true,
	}

	o.fireOpeningWave(now)
	return o, nil
}

// RestoreOrderParams carries the persisted state of an order for
// reconstruction by the repository layer.
type RestoreOrderParams struct {
	ID           kernel.UUID
	RestaurantID kernel.UUID

	Status             Status
	IsRush             bool
	CreatedAt          time.Time
	ConfirmedAt        *time.Time
	PreparingAt        *time.Time
	ReadyAt            *time.Time
	CompletedAt        *time.Time
	CancelledAt        *time.Time
	CancellationReason string
	CancelledBy        string

	ThrottleState         ThrottleState
	ThrottleReason        ThrottleReason
	ThrottleHeldAt        *time.Time
	ThrottleReleasedAt    *time.Time
	ThrottleReleaseReason ReleaseReason
	ThrottleSource        ThrottleSource

	Items []*Item
}

// RestoreOrder rebuilds an aggregate from persistence. Unlike NewOrder it
// does not fire anything; the stored item states are taken as-is.
func RestoreOrder(p RestoreOrderParams) (*Order, error) {
	if err := p.ID.Validate(); err != nil {
		return nil, err
	}
	if err := p.RestaurantID.Validate(); err != nil {
		return nil, err
	}
	if err := p.Status.Validate(); err != nil {
		return nil, err
	}

	return &Order{
		id:                    p.ID,
		restaurantID:          p.RestaurantID,
		status:                p.Status,
		isRush:                p.IsRush,
		createdAt:             p.CreatedAt,
		confirmedAt:           p.ConfirmedAt,
		preparingAt:           p.PreparingAt,
		readyAt:               p.ReadyAt,
		completedAt:           p.CompletedAt,
		cancelledAt:           p.CancelledAt,
		cancellationReason:    p.CancellationReason,
		cancelledBy:           p.CancelledBy,
		throttleState:         p.ThrottleState,
		throttleReason:        p.ThrottleReason,
		throttleHeldAt:        p.ThrottleHeldAt,
		throttleReleasedAt:    p.ThrottleReleasedAt,
		throttleReleaseReason: p.ThrottleReleaseReason,
		throttleSource:        p.ThrottleSource,
		items:                 p.Items,
		isConstructed:         true,
	}, nil
}

// Validate ensures the Order was built through a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// RestaurantID returns the owning restaurant.
func (o *Order) RestaurantID() kernel.UUID { return o.restaurantID }

// Status returns the current lifecycle status.
func (o *Order) Status() Status { return o.status }

// IsRush reports whether the order was flagged as a rush order.
func (o *Order) IsRush() bool { return o.isRush }

// CreatedAt returns when the order was placed.
func (o *Order) CreatedAt() time.Time { return o.createdAt }

// ConfirmedAt returns the confirmed timestamp, nil if never confirmed.
func (o *Order) ConfirmedAt() *time.Time { return o.confirmedAt }

// PreparingAt returns the preparing timestamp, nil if never started.
func (o *Order) PreparingAt() *time.Time { return o.preparingAt }

// ReadyAt returns the ready timestamp, nil if never ready.
func (o *Order) ReadyAt() *time.Time { return o.readyAt }

// CompletedAt returns the completed timestamp, nil if not completed.
func (o *Order) CompletedAt() *time.Time { return o.completedAt }

// CancelledAt returns the cancelled timestamp, nil if not cancelled.
func (o *Order) CancelledAt() *time.Time { return o.cancelledAt }

// CancellationReason returns the stored cancellation reason, empty unless cancelled.
func (o *Order) CancellationReason() string { return o.cancellationReason }

// CancelledBy returns the actor that cancelled the order, empty unless cancelled.
func (o *Order) CancelledBy() string { return o.cancelledBy }

// ThrottleState returns the admission-control lifecycle tag.
func (o *Order) ThrottleState() ThrottleState { return o.throttleState }

// ThrottleReason returns why the order was held.
func (o *Order) ThrottleReason() ThrottleReason { return o.throttleReason }

// ThrottleHeldAt returns when the order was held, nil if never.
func (o *Order) ThrottleHeldAt() *time.Time { return o.throttleHeldAt }

// ThrottleReleasedAt returns when the order was released, nil if never.
func (o *Order) ThrottleReleasedAt() *time.Time { return o.throttleReleasedAt }

// ThrottleReleaseReason returns why the order was released.
func (o *Order) ThrottleReleaseReason() ReleaseReason { return o.throttleReleaseReason }

// ThrottleSource returns whether the engine or an operator drove the hold/release.
func (o *Order) ThrottleSource() ThrottleSource { return o.throttleSource }

// Items returns the order's items. The slice is shared with the aggregate;
// callers must not mutate it.
func (o *Order) Items() []*Item { return o.items }

// IsHeld reports whether the order is currently parked by the throttle.
func (o *Order) IsHeld() bool { return o.throttleState == ThrottleHeld }

// StatusChangeOptions carries the actor metadata for a status transition.
// CancellationReason and CancelledBy are only read when transitioning to
// cancelled.
type StatusChangeOptions struct {
	ChangedBy          string
	Note               string
	CancellationReason string
	CancelledBy        string
}

// ChangeStatus applies one transition of the status machine. On success it
// stamps the matching per-status timestamp, stores reason/actor for
// cancellations, and returns the history record the caller must persist in
// the same transaction.
func (o *Order) ChangeStatus(to Status, opts StatusChangeOptions, now time.Time) (*StatusChange, error) {
	if err := to.Validate(); err != nil {
		return nil, err
	}
	if !o.status.CanTransitionTo(to) {
		return nil, NewInvalidTransitionError(o.status, to)
	}
	if to == StatusCancelled && opts.CancelledBy == "" {
		return nil, ErrCancelledByIsRequired
	}

	from := o.status
	o.status = to
	o.stampStatus(to, now)

	if to == StatusCancelled {
		o.cancellationReason = opts.CancellationReason
		o.cancelledBy = opts.CancelledBy
	}

	return newStatusChange(o.id, from, to, opts.ChangedBy, opts.Note, now), nil
}

// FireCourse moves every item of the course onto the display now. Items of
// the course already live keep their original timestamps.
func (o *Order) FireCourse(courseID kernel.UUID, now time.Time) error {
	if err := courseID.Validate(); err != nil {
		return err
	}

	fired := false
	for _, item := range o.items {
		if item.courseID != nil && item.courseID.IsEqual(courseID) {
			item.fire(now)
			fired = true
		}
	}

	if !fired {
		return errs.NewObjectNotFoundError("courseGuid", courseID.String())
	}
	return nil
}

// FireItem overrides pacing for one item regardless of its course state.
// If the item belongs to an unfired course, only the item's own
// courseFiredAt is stamped; the course and its sibling items stay pending.
func (o *Order) FireItem(itemID kernel.UUID, now time.Time) error {
	item := o.findItem(itemID)
	if item == nil {
		return errs.NewObjectNotFoundError("orderItemId", itemID.String())
	}

	item.fireOnTheFly(now)
	return nil
}

// MarkItemsReady completes the given items. When the last item of a course
// completes, the whole course becomes READY. When the last item of the
// order completes and the ready edge is legal from the current status, the
// order transitions to ready and the resulting history record is returned;
// otherwise the record is nil.
func (o *Order) MarkItemsReady(itemIDs []kernel.UUID, changedBy string, now time.Time) (*StatusChange, error) {
	if len(itemIDs) == 0 {
		return nil, errs.NewValueIsRequiredError("itemIds")
	}

	for _, id := range itemIDs {
		item := o.findItem(id)
		if item == nil {
			return nil, errs.NewObjectNotFoundError("orderItemId", id.String())
		}
		item.complete(now)
	}

	o.refreshCourseReadiness(now)

	if !o.allItemsCompleted() || !o.status.CanTransitionTo(StatusReady) {
		return nil, nil
	}

	return o.ChangeStatus(StatusReady, StatusChangeOptions{ChangedBy: changedBy}, now)
}

// Hold parks the order off the kitchen display. Returns false without any
// state change when the order is terminal or has already been through a
// hold (HELD or RELEASED) — an order is never held twice in one lifecycle.
//
// Holding resets every item to its pre-kitchen state so the ticket is
// effectively un-sent from the display.
func (o *Order) Hold(reason ThrottleReason, source ThrottleSource, now time.Time) bool {
	if o.status.IsTerminal() || o.throttleState != ThrottleNone {
		return false
	}

	t := now
	o.throttleState = ThrottleHeld
	o.throttleReason = reason
	o.throttleSource = source
	o.throttleHeldAt = &t
	o.throttleReleasedAt = nil
	o.throttleReleaseReason = ReleaseReasonNone

	for _, item := range o.items {
		item.resetToHeld()
	}

	return true
}

// Release lets a held order back into the kitchen. Returns false without
// any state change when the order is terminal or not currently held.
//
// Release restores exactly the state the order would have had if it had
// never been held: the first course and all course-less items fire now,
// every later course stays HOLD/PENDING.
func (o *Order) Release(reason ReleaseReason, source ThrottleSource, now time.Time) bool {
	if o.status.IsTerminal() || o.throttleState != ThrottleHeld {
		return false
	}

	t := now
	o.throttleState = ThrottleReleased
	o.throttleReleasedAt = &t
	o.throttleReleaseReason = reason
	o.throttleSource = source

	o.fireOpeningWave(now)
	return true
}

// fireOpeningWave fires everything that goes live the moment an order
// enters the kitchen: all course-less items plus the course with the
// minimum sort order. Used both at creation and on release.
func (o *Order) fireOpeningWave(now time.Time) {
	first := o.firstCourseID()
	for _, item := range o.items {
		if !item.HasCourse() {
			item.fire(now)
			continue
		}
		if first != nil && item.courseID.IsEqual(*first) {
			item.fire(now)
		}
	}
}

// firstCourseID returns the course with the minimum sort order among the
// order's course items, nil when the order has no courses.
func (o *Order) firstCourseID() *kernel.UUID {
	var first *kernel.UUID
	best := 0
	for _, item := range o.items {
		if !item.HasCourse() {
			continue
		}
		if first == nil || item.courseSortOrder < best {
			id := *item.courseID
			first = &id
			best = item.courseSortOrder
		}
	}
	return first
}

// refreshCourseReadiness promotes every fully-completed course to READY.
func (o *Order) refreshCourseReadiness(now time.Time) {
	done := make(map[kernel.UUID]bool)
	for _, item := range o.items {
		if !item.HasCourse() {
			continue
		}
		courseID := *item.courseID
		complete, seen := done[courseID]
		if !seen {
			complete = true
		}
		done[courseID] = complete && item.IsCompleted()
	}

	for _, item := range o.items {
		if item.HasCourse() && done[*item.courseID] {
			item.markCourseReady(now)
		}
	}
}

func (o *Order) allItemsCompleted() bool {
	for _, item := range o.items {
		if !item.IsCompleted() {
			return false
		}
	}
	return true
}

func (o *Order) findItem(id kernel.UUID) *Item {
	for _, item := range o.items {
		if item.id.IsEqual(id) {
			return item
		}
	}
	return nil
}

func (o *Order) stampStatus(to Status, now time.Time) {
	t := now
	switch to {
	case StatusConfirmed:
		o.confirmedAt = &t
	case StatusPreparing:
		o.preparingAt = &t
	case StatusReady:
		o.readyAt = &t
	case StatusCompleted:
		o.completedAt = &t
	case StatusCancelled:
		o.cancelledAt = &t
	case StatusPending, StatusUnknown:
	}
}
