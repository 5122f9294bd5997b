package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewClaimOrderCommand_ValidInput(t *testing.T) {
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	cmd, err := commands.NewClaimOrderCommand(orderID, courierID)
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, courierID, cmd.CourierID())
}

func TestNewClaimOrderCommand_InvalidCourierID(t *testing.T) {
	_, err := commands.NewClaimOrderCommand(kernel.NewUUID(), kernel.UUID{})
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestClaimOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	cmd, _ := commands.NewClaimOrderCommand(orderID, courierID)

	claimant := onlineCourier(t, courierID)
	claimedOrder := assignedOrder(t, orderID, courierID)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", mock.Anything, courierID).Return(claimant, nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("ClaimForCourier", mock.Anything, orderID, courierID).Return(claimedOrder, nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClaimOrderCommandHandler(factory)
	claimed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, claimed)
	require.NotNil(t, claimed.Courier())
	assert.True(t, claimed.Courier().IsEqual(courierID))
	orderRepo.AssertExpectations(t)
	courierRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestClaimOrderCommandHandler_Handle_OfflineCourierRejected(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	cmd, _ := commands.NewClaimOrderCommand(orderID, courierID)

	claimant := offlineCourier(t, courierID)

	orderRepo := new(MockOrderRepository)
	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", mock.Anything, courierID).Return(claimant, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClaimOrderCommandHandler(factory)
	claimed, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrCourierOffline)
	assert.Nil(t, claimed)
	orderRepo.AssertNotCalled(t, "ClaimForCourier", mock.Anything, mock.Anything, mock.Anything)
}

func TestClaimOrderCommandHandler_Handle_CourierNotFound(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	cmd, _ := commands.NewClaimOrderCommand(orderID, courierID)

	courierRepo := new(MockCourierRepository)
	uow := new(MockUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(courierRepo).Once(),
		courierRepo.On("Get", mock.Anything, courierID).
			Return(nil, errs.NewObjectNotFoundError("courierID", courierID)).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewClaimOrderCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrNoCourierFound)
}

func TestClaimOrderCommandHandler_Handle_LosingClaimPassesThrough(t *testing.T) {
	ctx := t.Context()
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	cmd, _ := commands.NewClaimOrderCommand(orderID, courierID)

	claimant := onlineCourier(t, courierID)

	tests := []struct {
		name string
		err  error
	}{
		{"should pass through already assigned", ports.ErrOrderAlreadyAssigned},
		{"should pass through not eligible", ports.ErrOrderNotEligible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			orderRepo := new(MockOrderRepository)
			courierRepo := new(MockCourierRepository)
			uow := new(MockUoW)
			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("CourierRepository").Return(courierRepo).Once(),
				courierRepo.On("Get", mock.Anything, courierID).Return(claimant, nil).Once(),
				uow.On("OrderRepository").Return(orderRepo).Once(),
				orderRepo.On("ClaimForCourier", mock.Anything, orderID, courierID).Return(nil, tt.err).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			factory := new(MockUoWFactory)
			factory.On("Create").Return(uow).Once()

			h := commands.NewClaimOrderCommandHandler(factory)
			claimed, err := h.Handle(ctx, cmd)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, claimed)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}
