package commands

import (
	"errors"
	"time"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrSweepStaleCouriersCommandIsNotConstructed = errors.New(
	"SweepStaleCouriersCommand must be created via NewSweepStaleCouriersCommand constructor",
)

// SweepStaleCouriersCommand triggers the heartbeat sweep: every online courier
// whose last heartbeat is older than the TTL is forced offline. The sweep is
// how crashed agents stop appearing available.
type SweepStaleCouriersCommand struct { //nolint:recvcheck //using for validation
	ttl time.Duration
	now time.Time

	guard guard.ConstructorGuard
}

// NewSweepStaleCouriersCommand creates a sweep command for the given heartbeat
// TTL evaluated at the given instant.
func NewSweepStaleCouriersCommand(ttl time.Duration, now time.Time) (SweepStaleCouriersCommand, error) {
	sweepCommand := SweepStaleCouriersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		sweepCommand.setTTL(ttl),
		sweepCommand.setNow(now),
	); err != nil {
		return SweepStaleCouriersCommand{}, err
	}

	return sweepCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c SweepStaleCouriersCommand) Validate() error {
	return c.guard.Validate(ErrSweepStaleCouriersCommandIsNotConstructed)
}

// TTL returns the heartbeat time-to-live.
func (c SweepStaleCouriersCommand) TTL() time.Duration {
	return c.ttl
}

// Now returns the instant staleness is evaluated at.
func (c SweepStaleCouriersCommand) Now() time.Time {
	return c.now
}

func (c *SweepStaleCouriersCommand) setTTL(ttl time.Duration) error {
	if ttl <= 0 {
		return errs.NewValueIsRequiredError("ttl")
	}

	c.ttl = ttl
	return nil
}

func (c *SweepStaleCouriersCommand) setNow(now time.Time) error {
	if now.IsZero() {
		return errs.NewValueIsRequiredError("now")
	}

	c.now = now
	return nil
}
