package order

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder factory method. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrCourierAlreadyAssigned is returned when assigning a courier to an order
	// that already has one. Assignment happens exactly once per order lifetime;
	// reassignment is an audited operator action outside this subsystem.
	ErrCourierAlreadyAssigned = errors.New("order already has an assigned courier")
)

// Order represents an order moving through the dispatch lifecycle. It is the
// aggregate root that owns the (status, assignedCourier) pair, the only shared
// mutable state in the subsystem.
//
// Order follows these invariants:
//   - Must have a valid unique identifier and a valid serviceable zone
//   - Status transitions follow the state machine defined by Status
//   - A courier is assigned if and only if the status is OutForDelivery or Delivered
//   - The courier is set exactly once and never reassigned
//   - eligibleSince is set when the order first becomes dispatch-eligible (Packed)
//
// The Order struct uses private fields to ensure encapsulation and maintains
// its invariants through validated methods.
type Order struct {
	// id is the unique identifier for the order
	id kernel.UUID

	// courierID is the assigned courier's ID (nil if unassigned)
	courierID *kernel.UUID

	// zone is the serviceable area the order is delivered in
	zone kernel.Zone

	// status represents the current state in the order lifecycle
	status Status

	// eligibleSince is the instant the order became visible in the dispatch feed
	eligibleSince *time.Time

	// isConstructed ensures the order was created via NewOrder or RestoreOrder
	isConstructed bool
}

// NewOrder creates a new Order instance with validation. This is the only way to create
// a fresh Order, ensuring all business invariants are maintained.
//
// Parameters:
//   - id: Unique identifier for the order (must be valid UUID)
//   - zone: Serviceable area the order will be dispatched in
//
// Returns:
//   - *Order: The created order in Pending status if all validations pass
//   - error: Validation error if any parameter is invalid
func NewOrder(id kernel.UUID, zone kernel.Zone) (*Order, error) {
	order := &Order{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setZone(zone),
	); err != nil {
		return nil, err
	}

	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistent storage.
// Unlike NewOrder, it accepts any lifecycle state and validates cross-field
// consistency: the courier assignment must match the status, and eligibleSince
// must be present exactly for orders that have reached the Packed state.
func RestoreOrder(
	id kernel.UUID,
	zone kernel.Zone,
	status Status,
	courierID *kernel.UUID,
	eligibleSince *time.Time,
) (*Order, error) {
	order := &Order{
		isConstructed: true,
	}

	if err := errors.Join(
		order.setID(id),
		order.setZone(zone),
		order.setStatus(status, courierID != nil),
	); err != nil {
		return nil, err
	}

	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return nil, err
		}
		id := *courierID
		order.courierID = &id
	}

	if err := order.setEligibleSince(eligibleSince); err != nil {
		return nil, err
	}

	return order, nil
}

// Validate ensures the Order instance was properly constructed through NewOrder
// or RestoreOrder. This prevents bypassing validation by directly instantiating
// the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Zone returns the serviceable area the order is delivered in.
func (o *Order) Zone() kernel.Zone {
	return o.zone
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Courier returns the assigned courier's ID.
// Returns nil if no courier is assigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// EligibleSince returns the instant the order became dispatch-eligible.
// Returns nil if the order has never reached the Packed state.
func (o *Order) EligibleSince() *time.Time {
	return o.eligibleSince
}

// IsEligible reports whether the order is currently claimable:
// Packed status with no assigned courier.
func (o *Order) IsEligible() bool {
	return o.status == Packed && o.courierID == nil
}

// Confirm advances the order from Pending to Confirmed.
// Called when the merchant accepts the order.
func (o *Order) Confirm() error {
	newStatus, err := o.status.Confirm()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// MarkEligible advances the order from Confirmed to Packed, stamping
// eligibleSince with the provided instant. This is the moment the order becomes
// visible in the dispatch feed.
//
// MarkEligible is idempotent: calling it on an order that is already Packed and
// unassigned returns (false, nil) without touching eligibleSince, so repeated
// fulfillment signals produce a single feed entry.
//
// Returns:
//   - bool: true if the order transitioned on this call (callers broadcast only then)
//   - error: transition error for orders that cannot become eligible
func (o *Order) MarkEligible(now time.Time) (bool, error) {
	if o.IsEligible() {
		return false, nil
	}

	newStatus, err := o.status.MarkEligible()
	if err != nil {
		return false, err
	}

	o.status = newStatus
	o.eligibleSince = &now
	return true, nil
}

// Assign assigns the order to a courier and advances the status to OutForDelivery.
//
// This method enforces the following business rules:
//   - The courier ID must be valid
//   - The order must be in Packed status
//   - The order must not already have a courier (assignment happens exactly once)
//
// The in-memory transition mirrors the storage layer's conditional update; the
// repository's ClaimForCourier is the race-safe path, this method is the domain
// rule it implements.
func (o *Order) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	if o.courierID != nil {
		return ErrCourierAlreadyAssigned
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	return nil
}

// Complete marks the order as delivered.
// The order must be in OutForDelivery status.
func (o *Order) Complete() error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Cancel withdraws the order before assignment.
// Only Pending and Confirmed orders can be cancelled through dispatch.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// setID validates and sets the order's unique identifier.
func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

// setZone validates and sets the order's serviceable area.
func (o *Order) setZone(zone kernel.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}
	o.zone = zone
	return nil
}

// setStatus validates and sets the status together with the courier consistency rule.
func (o *Order) setStatus(status Status, hasCourier bool) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := status.ValidateCanHaveCourier(hasCourier); err != nil {
		return err
	}
	o.status = status
	return nil
}

// setEligibleSince enforces that the eligibility timestamp is present exactly
// for orders that have reached the Packed state.
func (o *Order) setEligibleSince(eligibleSince *time.Time) error {
	reachedPacked := o.status == Packed || o.status == OutForDelivery || o.status == Delivered
	if reachedPacked && eligibleSince == nil {
		return errs.NewValueIsRequiredError(
			fmt.Sprintf("eligibleSince is required for status %s", o.status.String()),
		)
	}
	if !reachedPacked && eligibleSince != nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"eligibleSince is invalid",
			fmt.Errorf("%s orders cannot have an eligibility timestamp", o.status.String()),
		)
	}
	if eligibleSince != nil {
		ts := *eligibleSince
		o.eligibleSince = &ts
	}
	return nil
}
