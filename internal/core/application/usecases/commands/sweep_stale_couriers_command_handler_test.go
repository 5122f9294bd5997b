package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewSweepStaleCouriersCommand_InvalidTTL(t *testing.T) {
	_, err := commands.NewSweepStaleCouriersCommand(0, time.Now())
	require.Error(t, err)
}

func courierOnlineSince(t *testing.T, lastSeen time.Time) *courier.Courier {
	t.Helper()
	c := offlineCourier(t, kernel.NewUUID())
	c.GoOnline(lastSeen)
	return c
}

func TestSweepStaleCouriersCommandHandler_Handle_ForcesStaleOffline(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()
	ttl := 90 * time.Second
	cmd, _ := commands.NewSweepStaleCouriersCommand(ttl, now)

	staleCourier := courierOnlineSince(t, now.Add(-5*time.Minute))
	freshCourier := courierOnlineSince(t, now)
	roster := []*courier.Courier{staleCourier, freshCourier}

	repo := new(MockCourierRepository)
	uow := new(MockCourierUoW)
	registry := new(MockBroadcastRegistry)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(repo).Once(),
		repo.On("GetAllOnline", mock.Anything).Return(roster, nil).Once(),
		repo.On("Update", mock.Anything, staleCourier).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		registry.On("DeregisterCourier", staleCourier.ID()).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewSweepStaleCouriersCommandHandler(factory, registry)
	err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, staleCourier.IsOnline())
	assert.True(t, freshCourier.IsOnline())
	repo.AssertExpectations(t)
	uow.AssertExpectations(t)
	registry.AssertExpectations(t)
	registry.AssertNotCalled(t, "DeregisterCourier", freshCourier.ID())
}

func TestSweepStaleCouriersCommandHandler_Handle_NothingToSweep(t *testing.T) {
	ctx := t.Context()
	now := time.Now().UTC()
	cmd, _ := commands.NewSweepStaleCouriersCommand(time.Minute, now)

	freshCourier := courierOnlineSince(t, now)

	repo := new(MockCourierRepository)
	uow := new(MockCourierUoW)
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("CourierRepository").Return(repo).Once(),
		repo.On("GetAllOnline", mock.Anything).Return([]*courier.Courier{freshCourier}, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockCourierUoWFactory)
	factory.On("Create").Return(uow).Once()

	registry := new(MockBroadcastRegistry)

	h := commands.NewSweepStaleCouriersCommandHandler(factory, registry)
	err := h.Handle(ctx, cmd)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrNoStaleCouriers)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	registry.AssertNotCalled(t, "DeregisterCourier", mock.Anything)
}
