package commands_test

import (
	"testing"
	"time"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestApplyAutoThrottleCommandHandler_Handle_Disabled(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	cmd, err := commands.NewApplyAutoThrottleCommand(restaurantID, kernel.NewUUID())
	require.NoError(t, err)

	settings := new(MockSettingsRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SettingsRepository").Return(settings).Once(),
		settings.On("GetValues", mock.Anything, restaurantID).Return(map[string]string{}, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyAutoThrottleCommandHandler(factory)
	held, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, held)

	settings.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestApplyAutoThrottleCommandHandler_Handle_OrderNotFound(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	orderID := kernel.NewUUID()
	cmd, err := commands.NewApplyAutoThrottleCommand(restaurantID, orderID)
	require.NoError(t, err)

	settings := new(MockSettingsRepository)
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SettingsRepository").Return(settings).Once(),
		settings.On("GetValues", mock.Anything, restaurantID).Return(enabledSettingsBlob(), nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).
			Return(nil, errs.NewObjectNotFoundError("orderGuid", orderID.String())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyAutoThrottleCommandHandler(factory)
	held, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, held)
}

func TestApplyAutoThrottleCommandHandler_Handle_RushExempt(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()

	item, err := order.NewItem(kernel.NewUUID(), "Soup", nil, 0)
	require.NoError(t, err)
	aggregate, err := order.NewOrder(kernel.NewUUID(), restaurantID, []*order.Item{item}, true, time.Now())
	require.NoError(t, err)

	cmd, err := commands.NewApplyAutoThrottleCommand(restaurantID, aggregate.ID())
	require.NoError(t, err)

	settings := new(MockSettingsRepository)
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SettingsRepository").Return(settings).Once(),
		settings.On("GetValues", mock.Anything, restaurantID).Return(enabledSettingsBlob(), nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyAutoThrottleCommandHandler(factory)
	held, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, held)
	assert.False(t, aggregate.IsHeld())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestApplyAutoThrottleCommandHandler_Handle_UnderCeilings(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	aggregate := newTestOrder(t, restaurantID)
	cmd, err := commands.NewApplyAutoThrottleCommand(restaurantID, aggregate.ID())
	require.NoError(t, err)

	settings := new(MockSettingsRepository)
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SettingsRepository").Return(settings).Once(),
		settings.On("GetValues", mock.Anything, restaurantID).Return(enabledSettingsBlob(), nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("CountActive", mock.Anything, restaurantID).Return(5, nil).Once(),
		repo.On("CountOverdue", mock.Anything, restaurantID, mock.AnythingOfType("time.Time")).Return(0, nil).Once(),
		repo.On("CountHeld", mock.Anything, restaurantID).Return(0, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyAutoThrottleCommandHandler(factory)
	held, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, held)
	assert.False(t, aggregate.IsHeld())
}

func TestApplyAutoThrottleCommandHandler_Handle_ActiveOverload(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	aggregate := newTestOrder(t, restaurantID)
	cmd, err := commands.NewApplyAutoThrottleCommand(restaurantID, aggregate.ID())
	require.NoError(t, err)

	settings := new(MockSettingsRepository)
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SettingsRepository").Return(settings).Once(),
		settings.On("GetValues", mock.Anything, restaurantID).Return(enabledSettingsBlob(), nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("CountActive", mock.Anything, restaurantID).Return(20, nil).Once(),
		repo.On("CountOverdue", mock.Anything, restaurantID, mock.AnythingOfType("time.Time")).Return(2, nil).Once(),
		repo.On("CountHeld", mock.Anything, restaurantID).Return(1, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyAutoThrottleCommandHandler(factory)
	held, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, held)
	assert.True(t, aggregate.IsHeld())
	assert.Equal(t, order.ThrottleReasonActiveOverload, aggregate.ThrottleReason())

	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestApplyAutoThrottleCommandHandler_Handle_OverdueOverload(t *testing.T) {
	ctx := t.Context()
	restaurantID := kernel.NewUUID()
	aggregate := newTestOrder(t, restaurantID)
	cmd, err := commands.NewApplyAutoThrottleCommand(restaurantID, aggregate.ID())
	require.NoError(t, err)

	settings := new(MockSettingsRepository)
	repo := new(MockOrderRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("SettingsRepository").Return(settings).Once(),
		settings.On("GetValues", mock.Anything, restaurantID).Return(enabledSettingsBlob(), nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, aggregate.ID()).Return(aggregate, nil).Once(),
		repo.On("CountActive", mock.Anything, restaurantID).Return(10, nil).Once(),
		repo.On("CountOverdue", mock.Anything, restaurantID, mock.AnythingOfType("time.Time")).Return(5, nil).Once(),
		repo.On("CountHeld", mock.Anything, restaurantID).Return(0, nil).Once(),
		repo.On("Update", mock.Anything, aggregate).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewApplyAutoThrottleCommandHandler(factory)
	held, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, held)
	assert.Equal(t, order.ThrottleReasonOverdueOverload, aggregate.ThrottleReason())
}
