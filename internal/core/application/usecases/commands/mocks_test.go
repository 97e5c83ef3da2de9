package commands_test

import (
	"context"
	"testing"
	"time"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/domain/model/kernel"
	"kitchen/internal/core/domain/model/order"
	"kitchen/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if aggregate := args.Get(0); aggregate != nil {
		return aggregate.(*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) GetHeld(ctx context.Context, restaurantID kernel.UUID) ([]*order.Order, error) {
	args := m.Called(ctx, restaurantID)
	if held := args.Get(0); held != nil {
		return held.([]*order.Order), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockOrderRepository) CountActive(ctx context.Context, restaurantID kernel.UUID) (int, error) {
	args := m.Called(ctx, restaurantID)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) CountOverdue(ctx context.Context, restaurantID kernel.UUID, createdBefore time.Time) (int, error) {
	args := m.Called(ctx, restaurantID, createdBefore)
	return args.Int(0), args.Error(1)
}

func (m *MockOrderRepository) CountHeld(ctx context.Context, restaurantID kernel.UUID) (int, error) {
	args := m.Called(ctx, restaurantID)
	return args.Int(0), args.Error(1)
}

type MockHistoryRepository struct{ mock.Mock }

func (m *MockHistoryRepository) Append(ctx context.Context, record *order.StatusChange) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type MockSettingsRepository struct{ mock.Mock }

func (m *MockSettingsRepository) GetValues(ctx context.Context, restaurantID kernel.UUID) (map[string]string, error) {
	args := m.Called(ctx, restaurantID)
	if blob := args.Get(0); blob != nil {
		return blob.(map[string]string), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) HistoryRepository() ports.HistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.HistoryRepository)
}

func (m *MockUoW) SettingsRepository() ports.SettingsRepository {
	args := m.Called()
	return args.Get(0).(ports.SettingsRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

// newTestOrder builds a pending single-item order for the restaurant.
func newTestOrder(t *testing.T, restaurantID kernel.UUID) *order.Order {
	t.Helper()

	item, err := order.NewItem(kernel.NewUUID(), "Soup", nil, 0)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(kernel.NewUUID(), restaurantID, []*order.Item{item}, false, time.Now())
	require.NoError(t, err)
	return aggregate
}

// newHeldTestOrder builds an order that was auto-held at the given instant.
func newHeldTestOrder(t *testing.T, restaurantID kernel.UUID, heldAt time.Time) *order.Order {
	t.Helper()

	aggregate := newTestOrder(t, restaurantID)
	require.True(t, aggregate.Hold(order.ThrottleReasonActiveOverload, order.ThrottleSourceAuto, heldAt))
	return aggregate
}

// enabledSettingsBlob returns a settings blob with throttling switched on
// and every threshold at its default.
func enabledSettingsBlob() map[string]string {
	return map[string]string{"throttle_enabled": "true"}
}
