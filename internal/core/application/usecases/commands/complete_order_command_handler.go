package commands

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// ErrNotAssignedCourier is returned when a courier reports completion for an
// order assigned to somebody else (or to nobody).
var ErrNotAssignedCourier = errors.New("courier is not assigned to this order")

// CompleteOrderCommandHandler finishes a delivery.
// Only the courier the order is assigned to may complete it.
//
// Example:
//
//	handler := NewCompleteOrderCommandHandler(uowFactory)
//	cmd, _ := NewCompleteOrderCommand(orderID, courierID)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNotAssignedCourier) {
//	    // reject: caller does not hold this order
//	}
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCompleteOrderCommandHandler creates a handler for delivery completion.
func NewCompleteOrderCommandHandler(uowFactory OrderUoWFactory) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the completion command.
// Verifies the reporting courier holds the order, applies the
// OutForDelivery -> Delivered transition, and persists the result.
func (h *CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	orderAggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ErrNoOrderFound
	}
	if err != nil {
		return err
	}

	assigned := orderAggregate.Courier()
	if assigned == nil || !assigned.IsEqual(cmd.CourierID()) {
		return ErrNotAssignedCourier
	}

	if err = orderAggregate.Complete(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, orderAggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
