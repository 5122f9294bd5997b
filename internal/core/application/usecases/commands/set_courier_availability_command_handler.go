package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// SetCourierAvailabilityCommandHandler applies availability changes.
// Repeated online signals from an already-online courier refresh its heartbeat
// instead of erroring, so agents can use a single call for both purposes.
//
// Going offline also drops the courier's broadcast connections: an offline
// courier must not keep receiving eligible-order notices through a stream it
// opened while online.
type SetCourierAvailabilityCommandHandler struct {
	uowFactory CourierUoWFactory
	registry   ports.BroadcastRegistry
}

// NewSetCourierAvailabilityCommandHandler creates a handler for availability changes.
func NewSetCourierAvailabilityCommandHandler(
	uowFactory CourierUoWFactory,
	registry ports.BroadcastRegistry,
) SetCourierAvailabilityCommandHandler {
	return SetCourierAvailabilityCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
	}
}

// Handle processes the availability command.
// Online requests stamp the heartbeat; offline requests take the courier out
// of dispatch and, after the commit, out of the broadcast registry.
func (h *SetCourierAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetCourierAvailabilityCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	courierAggregate, err := courierRepo.Get(ctx, cmd.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoCourierFound
	}
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	switch {
	case !cmd.Online():
		courierAggregate.GoOffline()
	case courierAggregate.IsOnline():
		courierAggregate.Heartbeat(now)
	default:
		courierAggregate.GoOnline(now)
	}

	if err = courierRepo.Update(ctx, courierAggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if !cmd.Online() {
		h.registry.DeregisterCourier(cmd.CourierID())
	}

	return nil
}
