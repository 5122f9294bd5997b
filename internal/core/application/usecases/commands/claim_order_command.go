package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand represents a courier's attempt to take exclusive ownership
// of an eligible order. Many couriers may issue this command for the same order
// at once; at most one of them wins.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a command for a courier to claim an order.
// Validates that both identifiers are valid.
func NewClaimOrderCommand(orderID, courierID kernel.UUID) (ClaimOrderCommand, error) {
	claimCommand := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		claimCommand.setOrderID(orderID),
		claimCommand.setCourierID(courierID),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return claimCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being claimed.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// CourierID returns the identifier of the claiming courier.
func (c ClaimOrderCommand) CourierID() kernel.UUID {
	return c.courierID
}

func (c *ClaimOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ClaimOrderCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}
