package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// MarkOrderEligibleCommandHandler advances a confirmed order to Packed and
// announces it to connected couriers.
//
// The handler is idempotent: fulfillment systems retry the packed signal, and
// repeats must not produce duplicate feed entries or duplicate broadcasts.
// Signals arriving after the order was claimed or cancelled are treated as
// stale and dropped without error.
//
// Example:
//
//	handler := NewMarkOrderEligibleCommandHandler(uowFactory, broadcaster)
//	cmd, _ := NewMarkOrderEligibleCommand(orderID)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("eligibility signal failed: %w", err)
//	}
type MarkOrderEligibleCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EligibleOrderPublisher
}

// NewMarkOrderEligibleCommandHandler creates a handler for the packed signal.
// Requires an OrderUoWFactory for persistence and an EligibleOrderPublisher
// for the post-commit broadcast.
func NewMarkOrderEligibleCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EligibleOrderPublisher,
) MarkOrderEligibleCommandHandler {
	return MarkOrderEligibleCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the packed signal.
// On a genuine Confirmed -> Packed transition the handler stamps eligibleSince,
// commits, and then publishes an OrderEligibleNotice. The broadcast happens
// strictly after the commit, so a notice is never sent for an order that did
// not durably become eligible. Repeated signals and signals for claimed or
// cancelled orders return nil without publishing.
func (h *MarkOrderEligibleCommandHandler) Handle(ctx context.Context, cmd MarkOrderEligibleCommand) error {
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

	// A packed signal that arrives after the order was claimed or cancelled
	// is stale, not an error.
	switch orderAggregate.Status() {
	case order.OutForDelivery, order.Cancelled:
		return nil
	}

	changed, err := orderAggregate.MarkEligible(time.Now().UTC())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err = orderRepo.Update(ctx, orderAggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.PublishOrderEligible(ports.OrderEligibleNotice{
		OrderID: orderAggregate.ID(),
		Zone:    orderAggregate.Zone(),
	})

	return nil
}
