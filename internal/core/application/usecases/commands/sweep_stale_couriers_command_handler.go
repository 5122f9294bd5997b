package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/ports"
)

// ErrNoStaleCouriers is returned when the sweep finds nothing to do.
// This is the common outcome and callers filter it from error logs.
var ErrNoStaleCouriers = errors.New("no stale couriers found")

// SweepStaleCouriersCommandHandler forces silent couriers offline.
// An agent that crashed or lost connectivity keeps its courier marked online
// until this sweep notices the missed heartbeats. Swept couriers also lose
// their broadcast connections, exactly as an explicit offline request would.
//
// Example:
//
//	handler := NewSweepStaleCouriersCommandHandler(uowFactory, broadcaster)
//	cmd, _ := NewSweepStaleCouriersCommand(90*time.Second, time.Now().UTC())
//	err := handler.Handle(ctx, cmd)
//	if err != nil && !errors.Is(err, ErrNoStaleCouriers) {
//	    log.Printf("sweep failed: %v", err)
//	}
type SweepStaleCouriersCommandHandler struct {
	uowFactory CourierUoWFactory
	registry   ports.BroadcastRegistry
}

// NewSweepStaleCouriersCommandHandler creates a handler for the heartbeat sweep.
func NewSweepStaleCouriersCommandHandler(
	uowFactory CourierUoWFactory,
	registry ports.BroadcastRegistry,
) SweepStaleCouriersCommandHandler {
	return SweepStaleCouriersCommandHandler{
		uowFactory: uowFactory,
		registry:   registry,
	}
}

// Handle processes the sweep command.
// Loads the online roster, lets the aggregate judge staleness against the
// command's (now, ttl) pair, flips each stale courier offline, and persists
// them in a single transaction. Returns ErrNoStaleCouriers when every online
// courier is current. Broadcast connections are dropped only after the commit.
func (h *SweepStaleCouriersCommandHandler) Handle(ctx context.Context, cmd SweepStaleCouriersCommand) error {
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

	onlineCouriers, err := courierRepo.GetAllOnline(ctx)
	if err != nil {
		return err
	}

	var staleCouriers []*courier.Courier
	for _, onlineCourier := range onlineCouriers {
		if onlineCourier.IsStale(cmd.Now(), cmd.TTL()) {
			staleCouriers = append(staleCouriers, onlineCourier)
		}
	}
	if len(staleCouriers) == 0 {
		return ErrNoStaleCouriers
	}

	for _, staleCourier := range staleCouriers {
		staleCourier.GoOffline()

		if err = courierRepo.Update(ctx, staleCourier); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, staleCourier := range staleCouriers {
		h.registry.DeregisterCourier(staleCourier.ID())
	}

	return nil
}
