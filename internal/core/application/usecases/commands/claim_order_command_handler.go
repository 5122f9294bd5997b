package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrCourierOffline is returned when an offline courier attempts to claim
	// an order. Couriers must be online to participate in dispatch.
	ErrCourierOffline = errors.New("courier is offline")

	// ErrNoCourierFound is returned when the referenced courier does not exist.
	ErrNoCourierFound = errors.New("no courier found")
)

// ClaimOrderCommandHandler resolves competing claims for an eligible order.
// All contention is settled by a single conditional update in the repository;
// the handler itself holds no locks and performs no retries. Losing a claim is
// a normal outcome that callers report back to the courier, not a failure.
//
// Example:
//
//	handler := NewClaimOrderCommandHandler(uowFactory)
//	cmd, _ := NewClaimOrderCommand(orderID, courierID)
//	claimed, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ports.ErrOrderAlreadyAssigned):
//	    // another courier won, keep polling the feed
//	case errors.Is(err, ports.ErrOrderNotEligible):
//	    // order left the claimable state, drop the offer
//	case err != nil:
//	    return err
//	default:
//	    // claimed is assigned to this courier, start the delivery
//	}
type ClaimOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewClaimOrderCommandHandler creates a handler for claim resolution.
// Requires a UoWFactory because the claim touches both courier and order state.
func NewClaimOrderCommandHandler(uowFactory UoWFactory) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the claim command and returns the assigned order on success.
// Verifies the courier exists and is online before touching the order, then
// delegates to ClaimForCourier for the atomic assignment. Repository sentinels
// (ports.ErrOrderAlreadyAssigned, ports.ErrOrderNotEligible) pass through
// unchanged so callers can distinguish the losing outcomes.
func (h *ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	claimant, err := courierRepo.Get(ctx, cmd.CourierID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrNoCourierFound
	}
	if err != nil {
		return nil, err
	}

	if !claimant.IsOnline() {
		return nil, ErrCourierOffline
	}

	orderRepo := uow.OrderRepository()
	claimed, err := orderRepo.ClaimForCourier(ctx, cmd.OrderID(), cmd.CourierID())
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return claimed, nil
}
