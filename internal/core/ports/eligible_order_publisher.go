package ports

import "dispatch/internal/core/domain/model/kernel"

// OrderEligibleNotice is the event fanned out to connected couriers the instant
// an order becomes claimable. It carries just enough for an agent to decide
// whether to look: the payload is fetched through the feed on claim.
type OrderEligibleNotice struct {
	OrderID kernel.UUID
	Zone    kernel.Zone
}

// EligibleOrderPublisher is the broadcast port. Implementations deliver notices
// best-effort: at-most-once per connection, no ordering across couriers, no
// acknowledgment. A dropped notice is compensated by the dispatch feed poll,
// never by the publisher itself.
type EligibleOrderPublisher interface {
	// PublishOrderEligible fans the notice out to every connected online
	// courier. It never blocks on a slow consumer and never returns an error;
	// transport failures are swallowed.
	PublishOrderEligible(notice OrderEligibleNotice)
}
