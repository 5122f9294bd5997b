// Package order provides domain entities and business logic for order dispatch.
// It implements the Order aggregate root with lifecycle management and state
// transitions.
//
// The package includes:
//   - Order: The aggregate root that owns the (status, assignedCourier) pair
//   - Status: A state machine that enforces valid order status transitions
//
// Key business rules:
//   - Order status follows a defined workflow:
//     Pending -> Confirmed -> Packed -> OutForDelivery -> Delivered,
//     with Cancelled reachable from Pending and Confirmed only
//   - A Packed order with no courier is dispatch-eligible
//   - A courier is assigned exactly once, never reassigned automatically
//   - Marking an order eligible is idempotent
//   - Delivered and Cancelled are terminal states
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package order
