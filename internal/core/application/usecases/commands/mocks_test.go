package commands_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Aggregate builders shared by the handler tests.

func testZone(t *testing.T) kernel.Zone {
	t.Helper()
	zone, err := kernel.NewZone("downtown")
	require.NoError(t, err)
	return zone
}

func pendingOrder(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	o, err := order.NewOrder(id, testZone(t))
	require.NoError(t, err)
	return o
}

func confirmedOrder(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	o := pendingOrder(t, id)
	require.NoError(t, o.Confirm())
	return o
}

func packedOrder(t *testing.T, id kernel.UUID) *order.Order {
	t.Helper()
	o := confirmedOrder(t, id)
	_, err := o.MarkEligible(time.Now().UTC())
	require.NoError(t, err)
	return o
}

func assignedOrder(t *testing.T, id, courierID kernel.UUID) *order.Order {
	t.Helper()
	o := packedOrder(t, id)
	require.NoError(t, o.Assign(courierID))
	return o
}

func onlineCourier(t *testing.T, id kernel.UUID) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(id, "Jane Roe", testZone(t))
	require.NoError(t, err)
	c.GoOnline(time.Now().UTC())
	return c
}

func offlineCourier(t *testing.T, id kernel.UUID) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(id, "Jane Roe", testZone(t))
	require.NoError(t, err)
	return c
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ClaimForCourier(ctx context.Context, orderID, courierID kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, orderID, courierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetAllEligible(ctx context.Context, zone *kernel.Zone) ([]*order.Order, error) {
	args := m.Called(ctx, zone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

type MockCourierRepository struct{ mock.Mock }

func (m *MockCourierRepository) Add(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Update(ctx context.Context, c *courier.Courier) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCourierRepository) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*courier.Courier), args.Error(1)
}

func (m *MockCourierRepository) GetAllOnline(ctx context.Context) ([]*courier.Courier, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*courier.Courier), args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockCourierUoW struct{ mock.Mock }

func (m *MockCourierUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCourierUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCourierUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCourierUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

type MockCourierUoWFactory struct{ mock.Mock }

func (m *MockCourierUoWFactory) Create() commands.CourierUoW {
	args := m.Called()
	return args.Get(0).(commands.CourierUoW)
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

func (m *MockUoW) CourierRepository() ports.CourierRepository {
	args := m.Called()
	return args.Get(0).(ports.CourierRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockEligibleOrderPublisher struct{ mock.Mock }

func (m *MockEligibleOrderPublisher) PublishOrderEligible(notice ports.OrderEligibleNotice) {
	m.Called(notice)
}

type MockBroadcastRegistry struct{ mock.Mock }

func (m *MockBroadcastRegistry) DeregisterCourier(courierID kernel.UUID) {
	m.Called(courierID)
}
