package commands_test

import (
	"testing"
	"time"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReleaseOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	aggregate := newHeldTestOrder(t, restaurantID, time.Now().Add(-2*time.Minute))
	cmd, err := commands.NewReleaseOrderCommand(restaurantID, aggregate.ID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReleaseOrderCommandHandler(factory)
	released, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, released)
	assert.Equal(t, order.ThrottleReleased, aggregate.ThrottleState())
	assert.Equal(t, order.ReleaseReasonManualRelease, aggregate.ThrottleReleaseReason())
	assert.Equal(t, order.ThrottleSourceManual, aggregate.ThrottleSource())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestReleaseOrderCommandHandler_Handle_NotHeld(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	aggregate := newTestOrder(t, restaurantID)
	cmd, err := commands.NewReleaseOrderCommand(restaurantID, aggregate.ID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReleaseOrderCommandHandler(factory)
	released, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, released)
	assert.Equal(t, order.ThrottleNone, aggregate.ThrottleState())
}

func TestReleaseOrderCommandHandler_Handle_WrongRestaurant(t *testing.T) {
	ctx := t.Context()
	aggregate := newHeldTestOrder(t, kernel.NewUUID(), time.Now())
	cmd, err := commands.NewReleaseOrderCommand(kernel.NewUUID(), aggregate.ID())
	require.NoError(t, err)

	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewReleaseOrderCommandHandler(factory)
	released, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, released)
	assert.True(t, aggregate.IsHeld())
}
