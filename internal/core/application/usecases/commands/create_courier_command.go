package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateCourierCommandIsNotConstructed = errors.New(
	"CreateCourierCommand must be created via NewCreateCourierCommand constructor",
)

// CreateCourierCommand represents a request to register a new courier.
// Couriers start offline and must explicitly go online to receive dispatch.
type CreateCourierCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	name      string
	zone      kernel.Zone

	guard guard.ConstructorGuard
}

// NewCreateCourierCommand creates a command to register a courier.
// Validates the identifier, display name, and home zone.
func NewCreateCourierCommand(courierID kernel.UUID, name string, zone kernel.Zone) (CreateCourierCommand, error) {
	courierCommand := CreateCourierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courierCommand.setCourierID(courierID),
		courierCommand.setName(name),
		courierCommand.setZone(zone),
	); err != nil {
		return CreateCourierCommand{}, err
	}

	return courierCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCourierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCourierCommandIsNotConstructed)
}

// CourierID returns the unique identifier for the courier.
func (c CreateCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Name returns the courier's display name.
func (c CreateCourierCommand) Name() string {
	return c.name
}

// Zone returns the area the courier serves.
func (c CreateCourierCommand) Zone() kernel.Zone {
	return c.zone
}

func (c *CreateCourierCommand) setCourierID(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	c.courierID = courierID
	return nil
}

func (c *CreateCourierCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}

func (c *CreateCourierCommand) setZone(zone kernel.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}

	c.zone = zone
	return nil
}
