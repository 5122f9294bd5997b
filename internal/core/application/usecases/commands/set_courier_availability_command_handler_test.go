package commands_test

import (
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestSetCourierAvailabilityCommandHandler_Handle_GoOnline(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewSetCourierAvailabilityCommand(id, true)
	testCourier := offlineCourier(t, id)

	repo := new(MockCourierRepository)
	uow := new(MockCourierUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, id).Return(testCourier, nil).Once(),
		repo.On("Update", mock.Anything, testCourier).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	registry := new(MockBroadcastRegistry)

	h := commands.NewSetCourierAvailabilityCommandHandler(factory, registry)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, testCourier.IsOnline())
	assert.False(t, testCourier.LastSeenAt().IsZero())
	repo.AssertExpectations(t)
	registry.AssertNotCalled(t, "DeregisterCourier", mock.Anything)
}

func TestSetCourierAvailabilityCommandHandler_Handle_GoOffline(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewSetCourierAvailabilityCommand(id, false)
	testCourier := onlineCourier(t, id)

	repo := new(MockCourierRepository)
	uow := new(MockCourierUoW)
	registry := new(MockBroadcastRegistry)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, id).Return(testCourier, nil).Once(),
		repo.On("Update", mock.Anything, testCourier).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		registry.On("DeregisterCourier", id).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetCourierAvailabilityCommandHandler(factory, registry)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, testCourier.IsOnline())
	registry.AssertExpectations(t)
}

func TestSetCourierAvailabilityCommandHandler_Handle_OnlineSignalRefreshesHeartbeat(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewSetCourierAvailabilityCommand(id, true)
	testCourier := onlineCourier(t, id)
	before := testCourier.LastSeenAt()

	time.Sleep(time.Millisecond)

	repo := new(MockCourierRepository)
	uow := new(MockCourierUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, id).Return(testCourier, nil).Once(),
		repo.On("Update", mock.Anything, testCourier).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSetCourierAvailabilityCommandHandler(factory, new(MockBroadcastRegistry))
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, testCourier.IsOnline())
	assert.True(t, testCourier.LastSeenAt().After(before))
}

func TestSetCourierAvailabilityCommandHandler_Handle_NoDeregistrationOnCommitError(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()
	cmd, _ := commands.NewSetCourierAvailabilityCommand(id, false)
	testCourier := onlineCourier(t, id)

	repo := new(MockCourierRepository)
	uow := new(MockCourierUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(repo).Once(),
		repo.On("Get", mock.Anything, id).Return(testCourier, nil).Once(),
		repo.On("Update", mock.Anything, testCourier).Return(nil).Once(),
		uow.On("Commit", ctx).Return(errors.New("commit failed")).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	registry := new(MockBroadcastRegistry)

	h := commands.NewSetCourierAvailabilityCommandHandler(factory, registry)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	registry.AssertNotCalled(t, "DeregisterCourier", mock.Anything)
}
