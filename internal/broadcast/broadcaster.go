// Package broadcast implements the best-effort push channel that tells
// connected couriers about newly eligible orders.
//
// The broadcaster is an in-memory connection registry with no persistence and
// no delivery guarantees: a notice reaches a courier at most once, slow or
// broken connections are skipped, and nothing is replayed. Couriers that miss
// a notice pick the order up through the dispatch feed poll instead.
package broadcast

import (
	"log/slog"
	"sync"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// Connection is a transport handle for one courier's push channel.
// Send must not block indefinitely; a transport that cannot accept the notice
// returns an error and the broadcaster moves on.
type Connection interface {
	Send(notice ports.OrderEligibleNotice) error
}

// Broadcaster fans OrderEligibleNotice out to every registered connection.
// Implements ports.EligibleOrderPublisher. Safe for concurrent use.
type Broadcaster struct {
	mu     sync.RWMutex
	conns  map[Connection]kernel.UUID
	logger *slog.Logger
}

// NewBroadcaster creates an empty connection registry.
func NewBroadcaster(logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		conns:  make(map[Connection]kernel.UUID),
		logger: logger.With("component", "broadcaster"),
	}
}

// Register adds a connection for the given courier. A courier may hold
// multiple connections at once; each receives its own copy of every notice.
func (b *Broadcaster) Register(courierID kernel.UUID, conn Connection) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.conns[conn] = courierID
}

// Deregister removes a connection from the registry.
// Safe to call for a connection that was never registered.
func (b *Broadcaster) Deregister(conn Connection) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.conns, conn)
}

// DeregisterCourier removes every connection held by the courier.
// Implements ports.BroadcastRegistry: called when a courier goes offline so
// that streams opened while online stop receiving notices immediately.
func (b *Broadcaster) DeregisterCourier(courierID kernel.UUID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for conn, id := range b.conns {
		if id.IsEqual(courierID) {
			delete(b.conns, conn)
		}
	}
}

// ConnectionCount reports the number of registered connections.
func (b *Broadcaster) ConnectionCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.conns)
}

// PublishOrderEligible fans the notice out to every registered connection.
// Send failures are logged at debug level and otherwise swallowed; the feed
// poll is the fallback for any courier that misses the push.
func (b *Broadcaster) PublishOrderEligible(notice ports.OrderEligibleNotice) {
	b.mu.RLock()
	targets := make(map[Connection]kernel.UUID, len(b.conns))
	for conn, courierID := range b.conns {
		targets[conn] = courierID
	}
	b.mu.RUnlock()

	for conn, courierID := range targets {
		if err := conn.Send(notice); err != nil {
			b.logger.Debug("dropped eligible-order notice",
				"courier_id", courierID.String(),
				"order_id", notice.OrderID.String(),
				"error", err,
			)
		}
	}
}
