package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrMarkOrderEligibleCommandIsNotConstructed = errors.New(
	"MarkOrderEligibleCommand must be created via NewMarkOrderEligibleCommand constructor",
)

// MarkOrderEligibleCommand represents the packed signal from fulfillment. The
// moment this command succeeds the order is visible in the dispatch feed and
// broadcast to connected couriers.
type MarkOrderEligibleCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkOrderEligibleCommand creates a command to mark a confirmed order
// as eligible for dispatch.
func NewMarkOrderEligibleCommand(orderID kernel.UUID) (MarkOrderEligibleCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkOrderEligibleCommand{}, err
	}

	return MarkOrderEligibleCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkOrderEligibleCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderEligibleCommandIsNotConstructed)
}

// OrderID returns the identifier of the order becoming eligible.
func (c MarkOrderEligibleCommand) OrderID() kernel.UUID {
	return c.orderID
}
