package courier

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for courier operations.
var (
	// ErrNameIsRequired is returned when attempting to create a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Courier represents an independent delivery courier in the dispatch system.
// It is an aggregate root that manages courier identity and availability.
//
// A courier operates their own availability: they go online to start receiving
// dispatch notices and polling the feed, and offline to stop. The lastSeenAt
// heartbeat lets the service sweep couriers whose agent silently died; a courier
// with isOnline false never receives broadcast notices and never appears as a
// claim candidate.
//
// Business rules:
//   - Courier must have a valid UUID, non-empty name, and a valid zone
//   - Heartbeats are only meaningful while online
//   - Going online stamps the heartbeat; going offline clears nothing (the last
//     heartbeat is kept for audit)
type Courier struct {
	// id uniquely identifies the courier
	id kernel.UUID
	// name is the human-readable name of the courier
	name string
	// zone is the serviceable area the courier works in
	zone kernel.Zone
	// isOnline reports whether the courier currently accepts dispatch
	isOnline bool
	// lastSeenAt is the most recent heartbeat from the courier's agent
	lastSeenAt time.Time
	// guard ensures the courier was properly constructed
	guard guard.ConstructorGuard
}

// NewCourier creates a new Courier with the specified parameters.
// This is the only way to create a fresh Courier instance.
//
// The courier starts offline with a zero heartbeat; the agent must explicitly
// go online before participating in dispatch.
//
// Parameters:
//   - id: Unique identifier for the courier (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - zone: Serviceable area the courier works in
//
// Returns:
//   - *Courier: A fully initialized courier, offline
//   - error: Validation error if any parameter is invalid
func NewCourier(id kernel.UUID, name string, zone kernel.Zone) (*Courier, error) {
	courier := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setZone(zone),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage,
// preserving its availability and heartbeat state.
func RestoreCourier(
	id kernel.UUID,
	name string,
	zone kernel.Zone,
	isOnline bool,
	lastSeenAt time.Time,
) (*Courier, error) {
	courier := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.setZone(zone),
	); err != nil {
		return nil, err
	}

	courier.isOnline = isOnline
	courier.lastSeenAt = lastSeenAt
	return courier, nil
}

// Validate ensures the Courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's human-readable name.
func (c *Courier) Name() string {
	return c.name
}

// Zone returns the serviceable area the courier works in.
func (c *Courier) Zone() kernel.Zone {
	return c.zone
}

// IsOnline reports whether the courier currently accepts dispatch.
func (c *Courier) IsOnline() bool {
	return c.isOnline
}

// LastSeenAt returns the most recent heartbeat instant.
// The zero time means the courier has never been online.
func (c *Courier) LastSeenAt() time.Time {
	return c.lastSeenAt
}

// GoOnline makes the courier available for dispatch and stamps the heartbeat.
// Going online while already online only refreshes the heartbeat.
func (c *Courier) GoOnline(now time.Time) {
	c.isOnline = true
	c.lastSeenAt = now
}

// GoOffline withdraws the courier from dispatch.
// The last heartbeat is kept.
func (c *Courier) GoOffline() {
	c.isOnline = false
}

// Heartbeat refreshes the courier's last-seen instant.
// Heartbeats from an offline courier are ignored; the agent must go online first.
func (c *Courier) Heartbeat(now time.Time) {
	if !c.isOnline {
		return
	}
	c.lastSeenAt = now
}

// IsStale reports whether an online courier's heartbeat is older than ttl.
// Offline couriers are never stale; they already withdrew themselves.
func (c *Courier) IsStale(now time.Time, ttl time.Duration) bool {
	if !c.isOnline {
		return false
	}
	return now.Sub(c.lastSeenAt) > ttl
}

// setID validates and sets the courier's unique identifier.
func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

// setName validates and sets the courier's name.
func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

// setZone validates and sets the courier's serviceable area.
func (c *Courier) setZone(zone kernel.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}
	c.zone = zone
	return nil
}
