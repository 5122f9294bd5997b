package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrSetCourierAvailabilityCommandIsNotConstructed = errors.New(
	"SetCourierAvailabilityCommand must be created via NewSetCourierAvailabilityCommand constructor",
)

// SetCourierAvailabilityCommand flips a courier's dispatch availability. Going
// online doubles as a heartbeat; agents re-issue the online signal periodically
// to stay ahead of the stale-courier sweep.
type SetCourierAvailabilityCommand struct { //nolint:recvcheck //using for validation
	courierID kernel.UUID
	online    bool

	guard guard.ConstructorGuard
}

// NewSetCourierAvailabilityCommand creates a command to set courier availability.
func NewSetCourierAvailabilityCommand(courierID kernel.UUID, online bool) (SetCourierAvailabilityCommand, error) {
	if err := courierID.Validate(); err != nil {
		return SetCourierAvailabilityCommand{}, err
	}

	return SetCourierAvailabilityCommand{
		courierID: courierID,
		online:    online,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetCourierAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetCourierAvailabilityCommandIsNotConstructed)
}

// CourierID returns the identifier of the courier.
func (c SetCourierAvailabilityCommand) CourierID() kernel.UUID {
	return c.courierID
}

// Online reports the requested availability.
func (c SetCourierAvailabilityCommand) Online() bool {
	return c.online
}
