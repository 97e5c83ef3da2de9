package order_test

import (
	"testing"
	"time"

	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNewItem(t *testing.T, name string, courseID *kernel.UUID, sortOrder int) *order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), name, courseID, sortOrder)
	require.NoError(t, err)
	return item
}

// twoCourseOrder builds an order with one course-less item, two items in the
// first course and one item in the second course.
func twoCourseOrder(t *testing.T, now time.Time) (*order.Order, kernel.UUID, kernel.UUID) {
	t.Helper()

	firstCourse := kernel.NewUUID()
	secondCourse := kernel.NewUUID()

	items := []*order.Item{
		mustNewItem(t, "Sparkling water", nil, 0),
		mustNewItem(t, "Soup", &firstCourse, 1),
		mustNewItem(t, "Bread", &firstCourse, 1),
		mustNewItem(t, "Steak", &secondCourse, 2),
	}

	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), items, false, now)
	require.NoError(t, err)
	return aggregate, firstCourse, secondCourse
}

func itemsOfCourse(o *order.Order, courseID kernel.UUID) []*order.Item {
	var out []*order.Item
	for _, item := range o.Items() {
		if item.CourseID() != nil && item.CourseID().IsEqual(courseID) {
			out = append(out, item)
		}
	}
	return out
}

func TestNewOrder_FiresOpeningWave(t *testing.T) {
	now := time.Now()
	aggregate, firstCourse, secondCourse := twoCourseOrder(t, now)

	assert.Equal(t, order.StatusPending, aggregate.Status())
	assert.Equal(t, order.ThrottleNone, aggregate.ThrottleState())

	courseless := aggregate.Items()[0]
	assert.Equal(t, order.FulfillmentSent, courseless.Fulfillment())
	assert.NotNil(t, courseless.SentToKitchenAt())
	assert.Equal(t, order.CourseFireNone, courseless.CourseFire())

	for _, item := range itemsOfCourse(aggregate, firstCourse) {
		assert.Equal(t, order.FulfillmentSent, item.Fulfillment())
		assert.Equal(t, order.CourseFireFired, item.CourseFire())
		assert.NotNil(t, item.CourseFiredAt())
	}

	for _, item := range itemsOfCourse(aggregate, secondCourse) {
		assert.Equal(t, order.FulfillmentHold, item.Fulfillment())
		assert.Equal(t, order.CourseFirePending, item.CourseFire())
		assert.Nil(t, item.CourseFiredAt())
		assert.Nil(t, item.SentToKitchenAt())
	}
}

func TestNewOrder_NoItems(t *testing.T) {
	_, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), nil, false, time.Now())
	require.ErrorIs(t, err, order.ErrItemsAreRequired)
}

func TestOrder_ChangeStatus_HappyPath(t *testing.T) {
	now := time.Now()
	aggregate, _, _ := twoCourseOrder(t, now)

	record, err := aggregate.ChangeStatus(order.StatusConfirmed,
		order.StatusChangeOptions{ChangedBy: "ops", Note: "phone confirmed"}, now)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, order.StatusPending, record.From)
	assert.Equal(t, order.StatusConfirmed, record.To)
	assert.Equal(t, "ops", record.ChangedBy)
	assert.Equal(t, "phone confirmed", record.Note)
	assert.Equal(t, order.StatusConfirmed, aggregate.Status())
	assert.NotNil(t, aggregate.ConfirmedAt())
}

func TestOrder_ChangeStatus_InvalidTransition(t *testing.T) {
	now := time.Now()
	aggregate, _, _ := twoCourseOrder(t, now)

	_, err := aggregate.ChangeStatus(order.StatusReady, order.StatusChangeOptions{}, now)
	require.ErrorIs(t, err, order.ErrInvalidTransition)

	var transitionErr *order.InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, order.StatusPending, transitionErr.From)
	assert.Equal(t, order.StatusReady, transitionErr.To)
	assert.Equal(t, order.StatusPending, aggregate.Status())
}

func TestOrder_ChangeStatus_CancelRequiresActor(t *testing.T) {
	now := time.Now()
	aggregate, _, _ := twoCourseOrder(t, now)

	_, err := aggregate.ChangeStatus(order.StatusCancelled, order.StatusChangeOptions{}, now)
	require.ErrorIs(t, err, order.ErrCancelledByIsRequired)

	record, err := aggregate.ChangeStatus(order.StatusCancelled,
		order.StatusChangeOptions{CancelledBy: "manager", CancellationReason: "guest left"}, now)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, order.StatusCancelled, aggregate.Status())
	assert.Equal(t, "manager", aggregate.CancelledBy())
	assert.Equal(t, "guest left", aggregate.CancellationReason())
	assert.NotNil(t, aggregate.CancelledAt())
}

func TestOrder_FireCourse(t *testing.T) {
	now := time.Now()
	aggregate, _, secondCourse := twoCourseOrder(t, now)

	later := now.Add(10 * time.Minute)
	require.NoError(t, aggregate.FireCourse(secondCourse, later))

	for _, item := range itemsOfCourse(aggregate, secondCourse) {
		assert.Equal(t, order.FulfillmentSent, item.Fulfillment())
		assert.Equal(t, order.CourseFireFired, item.CourseFire())
		require.NotNil(t, item.CourseFiredAt())
		assert.Equal(t, later, *item.CourseFiredAt())
	}
}

func TestOrder_FireCourse_KeepsExistingTimestamps(t *testing.T) {
	now := time.Now()
	aggregate, firstCourse, _ := twoCourseOrder(t, now)

	require.NoError(t, aggregate.FireCourse(firstCourse, now.Add(time.Hour)))

	for _, item := range itemsOfCourse(aggregate, firstCourse) {
		require.NotNil(t, item.CourseFiredAt())
		assert.Equal(t, now, *item.CourseFiredAt())
	}
}

func TestOrder_FireCourse_UnknownCourse(t *testing.T) {
	now := time.Now()
	aggregate, _, _ := twoCourseOrder(t, now)

	err := aggregate.FireCourse(kernel.NewUUID(), now)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestOrder_FireItem_OnTheFly(t *testing.T) {
	now := time.Now()
	aggregate, _, secondCourse := twoCourseOrder(t, now)

	target := itemsOfCourse(aggregate, secondCourse)[0]
	later := now.Add(5 * time.Minute)
	require.NoError(t, aggregate.FireItem(target.ID(), later))

	assert.Equal(t, order.FulfillmentOnTheFly, target.Fulfillment())
	require.NotNil(t, target.SentToKitchenAt())
	assert.Equal(t, later, *target.SentToKitchenAt())
	require.NotNil(t, target.CourseFiredAt())

	// the sibling course state is untouched by an on-the-fly fire
	assert.Equal(t, order.CourseFirePending, target.CourseFire())
}

func TestOrder_FireItem_UnknownItem(t *testing.T) {
	now := time.Now()
	aggregate, _, _ := twoCourseOrder(t, now)

	err := aggregate.FireItem(kernel.NewUUID(), now)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestOrder_MarkItemsReady_CourseRipple(t *testing.T) {
	now := time.Now()
	aggregate, firstCourse, _ := twoCourseOrder(t, now)

	courseItems := itemsOfCourse(aggregate, firstCourse)
	record, err := aggregate.MarkItemsReady(
		[]kernel.UUID{courseItems[0].ID()}, "cook", now)
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Equal(t, order.CourseFireFired, courseItems[0].CourseFire())

	record, err = aggregate.MarkItemsReady(
		[]kernel.UUID{courseItems[1].ID()}, "cook", now)
	require.NoError(t, err)
	assert.Nil(t, record)

	for _, item := range courseItems {
		assert.Equal(t, order.CourseFireReady, item.CourseFire())
		assert.NotNil(t, item.CourseReadyAt())
	}
}

func TestOrder_MarkItemsReady_LastItemMakesOrderReady(t *testing.T) {
	now := time.Now()
	aggregate, _, _ := twoCourseOrder(t, now)

	_, err := aggregate.ChangeStatus(order.StatusConfirmed, order.StatusChangeOptions{}, now)
	require.NoError(t, err)
	_, err = aggregate.ChangeStatus(order.StatusPreparing, order.StatusChangeOptions{}, now)
	require.NoError(t, err)

	var ids []kernel.UUID
	for _, item := range aggregate.Items() {
		ids = append(ids, item.ID())
	}

	record, err := aggregate.MarkItemsReady(ids, "cook", now)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, order.StatusPreparing, record.From)
	assert.Equal(t, order.StatusReady, record.To)
	assert.Equal(t, order.StatusReady, aggregate.Status())
	assert.NotNil(t, aggregate.ReadyAt())
}

func TestOrder_MarkItemsReady_NoRippleFromPending(t *testing.T) {
	now := time.Now()
	aggregate, _, _ := twoCourseOrder(t, now)

	var ids []kernel.UUID
	for _, item := range aggregate.Items() {
		ids = append(ids, item.ID())
	}

	// pending -> ready is not a legal edge, so the order stays pending even
	// though every item is done
	record, err := aggregate.MarkItemsReady(ids, "cook", now)
	require.NoError(t, err)
	assert.Nil(t, record)
	assert.Equal(t, order.StatusPending, aggregate.Status())
}

func TestOrder_MarkItemsReady_Validation(t *testing.T) {
	now := time.Now()
	aggregate, _, _ := twoCourseOrder(t, now)

	_, err := aggregate.MarkItemsReady(nil, "cook", now)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)

	_, err = aggregate.MarkItemsReady([]kernel.UUID{kernel.NewUUID()}, "cook", now)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestOrder_Hold_ResetsItems(t *testing.T) {
	now := time.Now()
	aggregate, firstCourse, _ := twoCourseOrder(t, now)

	held := aggregate.Hold(order.ThrottleReasonActiveOverload, order.ThrottleSourceAuto, now)
	require.True(t, held)

	assert.Equal(t, order.ThrottleHeld, aggregate.ThrottleState())
	assert.Equal(t, order.ThrottleReasonActiveOverload, aggregate.ThrottleReason())
	assert.Equal(t, order.ThrottleSourceAuto, aggregate.ThrottleSource())
	require.NotNil(t, aggregate.ThrottleHeldAt())
	assert.True(t, aggregate.IsHeld())

	for _, item := range aggregate.Items() {
		assert.Equal(t, order.ItemStatusPending, item.Status())
		assert.Equal(t, order.FulfillmentHold, item.Fulfillment())
		assert.Nil(t, item.SentToKitchenAt())
		assert.Nil(t, item.CompletedAt())
	}
	for _, item := range itemsOfCourse(aggregate, firstCourse) {
		assert.Equal(t, order.CourseFirePending, item.CourseFire())
		assert.Nil(t, item.CourseFiredAt())
	}
}

func TestOrder_Hold_NeverTwice(t *testing.T) {
	now := time.Now()
	aggregate, _, _ := twoCourseOrder(t, now)

	require.True(t, aggregate.Hold(order.ThrottleReasonManualHold, order.ThrottleSourceManual, now))
	assert.False(t, aggregate.Hold(order.ThrottleReasonManualHold, order.ThrottleSourceManual, now))

	require.True(t, aggregate.Release(order.ReleaseReasonManualRelease, order.ThrottleSourceManual, now))
	assert.False(t, aggregate.Hold(order.ThrottleReasonManualHold, order.ThrottleSourceManual, now),
		"a released order must not be held again")
}

func TestOrder_Hold_TerminalOrder(t *testing.T) {
	now := time.Now()
	aggregate, _, _ := twoCourseOrder(t, now)

	_, err := aggregate.ChangeStatus(order.StatusCancelled,
		order.StatusChangeOptions{CancelledBy: "manager"}, now)
	require.NoError(t, err)

	assert.False(t, aggregate.Hold(order.ThrottleReasonActiveOverload, order.ThrottleSourceAuto, now))
}

func TestOrder_Release_RestoresOpeningWave(t *testing.T) {
	now := time.Now()
	aggregate, firstCourse, secondCourse := twoCourseOrder(t, now)

	require.True(t, aggregate.Hold(order.ThrottleReasonOverdueOverload, order.ThrottleSourceAuto, now))

	releasedAt := now.Add(3 * time.Minute)
	released := aggregate.Release(order.ReleaseReasonLoadRecovered, order.ThrottleSourceAuto, releasedAt)
	require.True(t, released)

	assert.Equal(t, order.ThrottleReleased, aggregate.ThrottleState())
	assert.Equal(t, order.ReleaseReasonLoadRecovered, aggregate.ThrottleReleaseReason())
	assert.Equal(t, order.ThrottleSourceAuto, aggregate.ThrottleSource())
	require.NotNil(t, aggregate.ThrottleReleasedAt())
	assert.Equal(t, releasedAt, *aggregate.ThrottleReleasedAt())

	courseless := aggregate.Items()[0]
	assert.Equal(t, order.FulfillmentSent, courseless.Fulfillment())
	require.NotNil(t, courseless.SentToKitchenAt())
	assert.Equal(t, releasedAt, *courseless.SentToKitchenAt())

	for _, item := range itemsOfCourse(aggregate, firstCourse) {
		assert.Equal(t, order.CourseFireFired, item.CourseFire())
		require.NotNil(t, item.CourseFiredAt())
		assert.Equal(t, releasedAt, *item.CourseFiredAt())
	}
	for _, item := range itemsOfCourse(aggregate, secondCourse) {
		assert.Equal(t, order.CourseFirePending, item.CourseFire())
		assert.Equal(t, order.FulfillmentHold, item.Fulfillment())
	}
}

func TestOrder_Release_OnlyFromHeld(t *testing.T) {
	now := time.Now()
	aggregate, _, _ := twoCourseOrder(t, now)

	assert.False(t, aggregate.Release(order.ReleaseReasonManualRelease, order.ThrottleSourceManual, now))

	require.True(t, aggregate.Hold(order.ThrottleReasonManualHold, order.ThrottleSourceManual, now))
	require.True(t, aggregate.Release(order.ReleaseReasonManualRelease, order.ThrottleSourceManual, now))
	assert.False(t, aggregate.Release(order.ReleaseReasonManualRelease, order.ThrottleSourceManual, now))
}

func TestRestoreOrder_RoundTrip(t *testing.T) {
	now := time.Now()
	aggregate, _, _ := twoCourseOrder(t, now)
	require.True(t, aggregate.Hold(order.ThrottleReasonActiveOverload, order.ThrottleSourceAuto, now))

	restored, err := order.RestoreOrder(order.RestoreOrderParams{
		ID:             aggregate.ID(),
		RestaurantID:   aggregate.RestaurantID(),
		Status:         aggregate.Status(),
		IsRush:         aggregate.IsRush(),
		CreatedAt:      aggregate.CreatedAt(),
		ThrottleState:  aggregate.ThrottleState(),
		ThrottleReason: aggregate.ThrottleReason(),
		ThrottleHeldAt: aggregate.ThrottleHeldAt(),
		Items:          aggregate.Items(),
	})
	require.NoError(t, err)
	require.NoError(t, restored.Validate())

	assert.Equal(t, aggregate.ID(), restored.ID())
	assert.Equal(t, order.ThrottleHeld, restored.ThrottleState())
	assert.Len(t, restored.Items(), 4)
}

func TestOrder_Validate_NotConstructed(t *testing.T) {
	var aggregate order.Order
	require.ErrorIs(t, aggregate.Validate(), order.ErrOrderIsNotConstructed)
}
