package order

import (
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/pkg/errs"
)

// ItemStatus is the preparation state of a single order item.
type ItemStatus int

const (
	// ItemStatusPending: not completed yet.
	ItemStatusPending ItemStatus = iota

	// ItemStatusPreparing: a cook has picked the item up.
	ItemStatusPreparing

	// ItemStatusCompleted: the item is out of the kitchen.
	ItemStatusCompleted
)

func (s ItemStatus) String() string {
	switch s {
	case ItemStatusPreparing:
		return "preparing"
	case ItemStatusCompleted:
		return "completed"
	default:
		return "pending"
	}
}

// ItemStatusFromString parses a stored item status, defaulting to pending.
func ItemStatusFromString(s string) ItemStatus {
	switch s {
	case "preparing":
		return ItemStatusPreparing
	case "completed":
		return ItemStatusCompleted
	default:
		return ItemStatusPending
	}
}

// FulfillmentStatus controls whether the kitchen display shows an item.
type FulfillmentStatus int

const (
	// FulfillmentSent: the item is live on the display.
	FulfillmentSent FulfillmentStatus = iota

	// FulfillmentHold: the item is waiting, either for its course to fire
	// or because the whole order is throttled.
	FulfillmentHold

	// FulfillmentOnTheFly: an operator pushed the single item past its
	// course pacing.
	FulfillmentOnTheFly
)

func (s FulfillmentStatus) String() string {
	switch s {
	case FulfillmentHold:
		return "HOLD"
	case FulfillmentOnTheFly:
		return "ON_THE_FLY"
	default:
		return "SENT"
	}
}

// FulfillmentStatusFromString parses a stored fulfillment status,
// defaulting to SENT.
func FulfillmentStatusFromString(s string) FulfillmentStatus {
	switch s {
	case "HOLD":
		return FulfillmentHold
	case "ON_THE_FLY":
		return FulfillmentOnTheFly
	default:
		return FulfillmentSent
	}
}

// CourseFireStatus is the per-course readiness tag carried by every item of
// a course. Items without a course never leave CourseFireNone.
type CourseFireStatus int

const (
	// CourseFireNone: the item does not belong to a course.
	CourseFireNone CourseFireStatus = iota

	// CourseFirePending: the course has not been fired yet.
	CourseFirePending

	// CourseFireFired: the course is live in the kitchen.
	CourseFireFired

	// CourseFireReady: every item of the course is completed.
	CourseFireReady
)

func (s CourseFireStatus) String() string {
	switch s {
	case CourseFirePending:
		return "PENDING"
	case CourseFireFired:
		return "FIRED"
	case CourseFireReady:
		return "READY"
	default:
		return ""
	}
}

// CourseFireStatusFromString parses a stored course fire status. The empty
// string maps to the course-less zero value.
func CourseFireStatusFromString(s string) CourseFireStatus {
	switch s {
	case "PENDING":
		return CourseFirePending
	case "FIRED":
		return CourseFireFired
	case "READY":
		return CourseFireReady
	default:
		return CourseFireNone
	}
}

// Item is an entity owned by exactly one Order. Items sharing a courseGuid
// form a course sequenced by courseSortOrder; course-less items are governed
// only by their fulfillment status.
//
// Items are mutated exclusively through their owning Order so that firing,
// holding, and completing always happen as part of one aggregate change.
type Item struct {
	id              kernel.UUID
	name            string
	status          ItemStatus
	fulfillment     FulfillmentStatus
	courseID        *kernel.UUID
	courseSortOrder int
	courseFire      CourseFireStatus
	courseFiredAt   *time.Time
	courseReadyAt   *time.Time
	sentToKitchenAt *time.Time
	completedAt     *time.Time
}

// NewItem creates a not-yet-sent item. Items start HOLD/PENDING; the owning
// Order decides at construction time which ones fire immediately.
// courseID may be nil for items that are not part of any course;
// courseSortOrder is ignored for those.
func NewItem(id kernel.UUID, name string, courseID *kernel.UUID, courseSortOrder int) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("item name")
	}

	item := &Item{
		id:          id,
		name:        name,
		status:      ItemStatusPending,
		fulfillment: FulfillmentHold,
	}

	if courseID != nil {
		if err := courseID.Validate(); err != nil {
			return nil, err
		}
		cID := *courseID
		item.courseID = &cID
		item.courseSortOrder = courseSortOrder
		item.courseFire = CourseFirePending
	}

	return item, nil
}

// RestoreItem reconstructs an item from persistence without re-running the
// creation-time firing logic.
func RestoreItem(
	id kernel.UUID,
	name string,
	status ItemStatus,
	fulfillment FulfillmentStatus,
	courseID *kernel.UUID,
	courseSortOrder int,
	courseFire CourseFireStatus,
	courseFiredAt, courseReadyAt, sentToKitchenAt, completedAt *time.Time,
) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, errs.NewValueIsRequiredError("item name")
	}

	return &Item{
		id:              id,
		name:            name,
		status:          status,
		fulfillment:     fulfillment,
		courseID:        courseID,
		courseSortOrder: courseSortOrder,
		courseFire:      courseFire,
		courseFiredAt:   courseFiredAt,
		courseReadyAt:   courseReadyAt,
		sentToKitchenAt: sentToKitchenAt,
		completedAt:     completedAt,
	}, nil
}

// ID returns the item's unique identifier.
func (i *Item) ID() kernel.UUID { return i.id }

// Name returns the display name of the item.
func (i *Item) Name() string { return i.name }

// Status returns the preparation state.
func (i *Item) Status() ItemStatus { return i.status }

// Fulfillment returns the display state.
func (i *Item) Fulfillment() FulfillmentStatus { return i.fulfillment }

// CourseID returns the course this item belongs to, nil for course-less items.
func (i *Item) CourseID() *kernel.UUID { return i.courseID }

// CourseSortOrder returns the ordinal position of the item's course.
func (i *Item) CourseSortOrder() int { return i.courseSortOrder }

// CourseFire returns the course readiness tag.
func (i *Item) CourseFire() CourseFireStatus { return i.courseFire }

// CourseFiredAt returns when the item's course was fired, nil if never.
func (i *Item) CourseFiredAt() *time.Time { return i.courseFiredAt }

// CourseReadyAt returns when the item's course became ready, nil if never.
func (i *Item) CourseReadyAt() *time.Time { return i.courseReadyAt }

// SentToKitchenAt returns when the item went live, nil if never.
func (i *Item) SentToKitchenAt() *time.Time { return i.sentToKitchenAt }

// CompletedAt returns when the item was completed, nil if not yet.
func (i *Item) CompletedAt() *time.Time { return i.completedAt }

// HasCourse reports whether the item is part of a course.
func (i *Item) HasCourse() bool { return i.courseID != nil }

// IsCompleted reports whether the item is done.
func (i *Item) IsCompleted() bool { return i.status == ItemStatusCompleted }

// fire puts the item live on the display as part of its course (or as a
// course-less item). Timestamps already present are kept so re-firing a
// course does not rewrite history.
func (i *Item) fire(now time.Time) {
	i.fulfillment = FulfillmentSent
	if i.sentToKitchenAt == nil {
		t := now
		i.sentToKitchenAt = &t
	}
	if i.HasCourse() {
		i.courseFire = CourseFireFired
		if i.courseFiredAt == nil {
			t := now
			i.courseFiredAt = &t
		}
	}
}

// fireOnTheFly overrides pacing for this single item. The course fire
// status of sibling items is untouched; only this item's courseFiredAt is
// stamped, and only if unset.
func (i *Item) fireOnTheFly(now time.Time) {
	i.fulfillment = FulfillmentOnTheFly
	if i.sentToKitchenAt == nil {
		t := now
		i.sentToKitchenAt = &t
	}
	if i.HasCourse() && i.courseFiredAt == nil {
		t := now
		i.courseFiredAt = &t
	}
}

// resetToHeld un-sends the item from the display when its order is held.
// Course items additionally lose their fire state so a later release can
// replay the first-course firing from scratch.
func (i *Item) resetToHeld() {
	i.status = ItemStatusPending
	i.fulfillment = FulfillmentHold
	i.sentToKitchenAt = nil
	i.completedAt = nil
	if i.HasCourse() {
		i.courseFire = CourseFirePending
		i.courseFiredAt = nil
		i.courseReadyAt = nil
	}
}

// complete marks the item done.
func (i *Item) complete(now time.Time) {
	i.status = ItemStatusCompleted
	t := now
	i.completedAt = &t
}

// markCourseReady tags the item's course as fully completed.
func (i *Item) markCourseReady(now time.Time) {
	if !i.HasCourse() || i.courseFire == CourseFireReady {
		return
	}
	i.courseFire = CourseFireReady
	t := now
	i.courseReadyAt = &t
}
