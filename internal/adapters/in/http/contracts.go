package http

import "time"

// Error is the JSON body returned for every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// CreateOrderRequest creates an order. ID is optional; when empty the server
// generates one and returns it.
type CreateOrderRequest struct {
	ID   string `json:"id,omitempty"`
	Zone string `json:"zone"`
}

// OrderCreatedResponse echoes the identity of a newly created order.
type OrderCreatedResponse struct {
	ID string `json:"id"`
}

// CourierIDRequest carries the courier identity for claim and complete calls.
type CourierIDRequest struct {
	CourierID string `json:"courier_id"`
}

// CreateCourierRequest creates a courier. ID is optional, like orders.
type CreateCourierRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Zone string `json:"zone"`
}

// CourierCreatedResponse echoes the identity of a newly created courier.
type CourierCreatedResponse struct {
	ID string `json:"id"`
}

// SetAvailabilityRequest toggles a courier's availability. Repeated calls with
// Online=true act as heartbeats.
type SetAvailabilityRequest struct {
	Online bool `json:"online"`
}

// EligibleOrder is one entry of the claimable-orders feed.
type EligibleOrder struct {
	ID            string    `json:"id"`
	Zone          string    `json:"zone"`
	EligibleSince time.Time `json:"eligible_since"`
}

// Order is the full order representation returned by a won claim.
type Order struct {
	ID            string     `json:"id"`
	Zone          string     `json:"zone"`
	Status        string     `json:"status"`
	CourierID     *string    `json:"courier_id,omitempty"`
	EligibleSince *time.Time `json:"eligible_since,omitempty"`
}

// Courier is one entry of the courier roster.
type Courier struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Zone     string `json:"zone"`
	IsOnline bool   `json:"is_online"`
}

// EligibleNotice is the payload of one SSE "order_eligible" event.
type EligibleNotice struct {
	OrderID string `json:"order_id"`
	Zone    string `json:"zone"`
}
