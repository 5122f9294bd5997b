package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCompleteOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	cmd, _ := commands.NewCompleteOrderCommand(orderID, courierID)
	testOrder := assignedOrder(t, orderID, courierID)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(testOrder, nil).Once(),
		repo.On("Update", mock.Anything, testOrder).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, order.Delivered, testOrder.Status())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCompleteOrderCommandHandler_Handle_WrongCourierRejected(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	assignedID := kernel.NewUUID()
	impostorID := kernel.NewUUID()
	cmd, _ := commands.NewCompleteOrderCommand(orderID, impostorID)
	testOrder := assignedOrder(t, orderID, assignedID)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrNotAssignedCourier)
	assert.Equal(t, order.OutForDelivery, testOrder.Status())
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCompleteOrderCommandHandler_Handle_UnassignedOrderRejected(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	cmd, _ := commands.NewCompleteOrderCommand(orderID, courierID)
	testOrder := packedOrder(t, orderID)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, orderID).Return(testOrder, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewCompleteOrderCommandHandler(factory)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrNotAssignedCourier)
}
