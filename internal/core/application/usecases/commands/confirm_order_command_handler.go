package commands

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// ErrNoOrderFound is returned when the targeted order does not exist.
// Shared by the order lifecycle handlers.
var ErrNoOrderFound = errors.New("no order found")

// ConfirmOrderCommandHandler advances a pending order to Confirmed status.
//
// Example:
//
//	handler := NewConfirmOrderCommandHandler(uowFactory)
//	cmd, _ := NewConfirmOrderCommand(orderID)
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ErrNoOrderFound) {
//	    // unknown order, report 404
//	}
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewConfirmOrderCommandHandler creates a handler for order confirmation.
func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order confirmation command.
// Loads the order, applies the Pending -> Confirmed transition, and persists
// the result. Invalid transitions surface the domain error unchanged.
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) error {
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

	if err = orderAggregate.Confirm(); err != nil {
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
