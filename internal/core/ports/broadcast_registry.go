package ports

import "dispatch/internal/core/domain/model/kernel"

// BroadcastRegistry is the connection-registry side of the broadcast channel.
// Command handlers use it to drop a courier's push connections the moment the
// courier stops being eligible for notices; without this an SSE stream opened
// while online would keep delivering after the courier went offline.
type BroadcastRegistry interface {
	// DeregisterCourier removes every connection registered for the courier.
	// Called post-commit, like PublishOrderEligible, so a rolled-back
	// availability change never cuts a live stream.
	DeregisterCourier(courierID kernel.UUID)
}
