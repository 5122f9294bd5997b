package order

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ErrStatusIsTerminal is returned when a transition is attempted from a terminal
// status (Delivered or Cancelled). Terminal orders are immutable; callers must not
// retry such transitions.
var ErrStatusIsTerminal = errors.New("order status is terminal")

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions to ensure
// orders follow the correct dispatch workflow.
//
// State transitions:
//
//	Pending ──> Confirmed ──> Packed ──> OutForDelivery ──> Delivered
//	   │            │
//	   └────────────┴──> Cancelled
//
// Packed is the dispatch-eligible state: an order in Packed status with no
// assigned courier is visible in the dispatch feed and claimable.
// Delivered and Cancelled are terminal; no transition leaves them.
//
// Status is a value object that validates state transitions
// and provides string representations for persistence and display.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is the initial status when an order is created by checkout.
	Pending

	// Confirmed indicates the merchant accepted the order and fulfillment started.
	Confirmed

	// Packed indicates the order is ready for pickup and, while unassigned,
	// eligible for courier claiming.
	Packed

	// OutForDelivery indicates exactly one courier claimed the order and is
	// delivering it.
	OutForDelivery

	// Delivered indicates the order reached the customer.
	// This is a final state with no further transitions allowed.
	Delivered

	// Cancelled indicates the order was withdrawn before assignment.
	// This is a final state with no further transitions allowed.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:        "Unknown",
		Pending:        "Pending",
		Confirmed:      "Confirmed",
		Packed:         "Packed",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:        "Pending",
		Confirmed:      "Confirmed",
		Packed:         "Packed",
		OutForDelivery: "OutForDelivery",
		Delivered:      "Delivered",
		Cancelled:      "Cancelled",
	}
}

// Validate checks if the Status value is valid.
// Unknown (0) and any value outside the defined set are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe to call on any Status value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status is final.
// Delivered and Cancelled orders accept no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateCanHaveCourier validates the consistency between order status and courier
// assignment. An order has an assigned courier if and only if its status is
// OutForDelivery or Delivered.
//
// Parameters:
//   - courier: whether the order has a courier assigned
//
// Returns:
//   - error: validation error if status and courier assignment are inconsistent
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s != OutForDelivery && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a courier", s.String()),
		)
	}

	if !courier && (s == OutForDelivery || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no courier", s.String()),
		)
	}

	return nil
}

// Confirm transitions the status to Confirmed.
//
// Valid transitions:
//   - Pending -> Confirmed
//
// Returns ErrStatusIsTerminal for Delivered/Cancelled, a validation error for
// any other status.
func (s Status) Confirm() (Status, error) {
	if s.IsTerminal() {
		return 0, fmt.Errorf("%w: %s", ErrStatusIsTerminal, s.String())
	}
	if s != Pending {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to confirm", s.String()),
		)
	}

	return Confirmed, nil
}

// MarkEligible transitions the status to Packed, making the order visible in
// the dispatch feed.
//
// Valid transitions:
//   - Confirmed -> Packed
//
// The Packed -> Packed case is handled by the aggregate as an idempotent no-op
// and never reaches this method.
func (s Status) MarkEligible() (Status, error) {
	if s.IsTerminal() {
		return 0, fmt.Errorf("%w: %s", ErrStatusIsTerminal, s.String())
	}
	if s != Confirmed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to mark eligible", s.String()),
		)
	}

	return Packed, nil
}

// Assign transitions the status to OutForDelivery.
//
// Valid transitions:
//   - Packed -> OutForDelivery (exclusive claim by one courier)
//
// Unlike eligibility, assignment is never repeatable: an order leaves Packed
// exactly once.
func (s Status) Assign() (Status, error) {
	if s.IsTerminal() {
		return 0, fmt.Errorf("%w: %s", ErrStatusIsTerminal, s.String())
	}
	if s != Packed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to assign", s.String()),
		)
	}

	return OutForDelivery, nil
}

// Complete transitions the status to Delivered.
//
// Valid transitions:
//   - OutForDelivery -> Delivered
func (s Status) Complete() (Status, error) {
	if s.IsTerminal() {
		return 0, fmt.Errorf("%w: %s", ErrStatusIsTerminal, s.String())
	}
	if s != OutForDelivery {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to complete", s.String()),
		)
	}

	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Pending -> Cancelled
//   - Confirmed -> Cancelled
//
// Orders that reached Packed or beyond cannot be cancelled through dispatch;
// that is an operator path outside this subsystem.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return 0, fmt.Errorf("%w: %s", ErrStatusIsTerminal, s.String())
	}
	if s != Pending && s != Confirmed {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to cancel", s.String()),
		)
	}

	return Cancelled, nil
}
