// Package agent implements the courier-side decision loop.
//
// An Agent represents one online courier session. It discovers eligible orders
// two ways, by polling the dispatch feed on a ticker and by receiving pushed
// notices, presents each new order to a Decider exactly once per session, and
// races the accepted ones through the claim endpoint. Losing a claim is part
// of normal operation and never surfaces as an error.
package agent

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

// Decision is the outcome of presenting an offer to the Decider.
type Decision int

const (
	// Skip declines the offer; the order will not be re-surfaced this session.
	Skip Decision = iota
	// Accept triggers a claim attempt for the offered order.
	Accept
)

// Offer is one claimable order as seen by the agent.
type Offer struct {
	OrderID kernel.UUID
	Zone    kernel.Zone
}

// DispatchClient is the agent's view of the dispatch service.
type DispatchClient interface {
	// ListEligibleOrders reads the dispatch feed, optionally narrowed to a zone.
	ListEligibleOrders(ctx context.Context, zone *kernel.Zone) ([]Offer, error)

	// ClaimOrder attempts to take the order for the courier. Returns
	// ports.ErrOrderAlreadyAssigned or ports.ErrOrderNotEligible for losing
	// outcomes, errs.ErrObjectNotFound-compatible errors for unknown orders.
	ClaimOrder(ctx context.Context, orderID, courierID kernel.UUID) error
}

// Decider chooses whether to accept an offer. The context carries the offer
// window deadline; a Decider still thinking when the window closes is treated
// as having skipped.
type Decider interface {
	Decide(ctx context.Context, offer Offer) Decision
}

// Config carries the agent's tunable intervals and optional hooks.
type Config struct {
	// PollInterval is the dispatch feed polling cadence while idle.
	// Defaults to 5s.
	PollInterval time.Duration

	// OfferWindow bounds how long the Decider may hold a single offer.
	// Defaults to 30s.
	OfferWindow time.Duration

	// OnAssigned is invoked after a won claim. The agent is busy until it
	// returns; polling and notices are suppressed meanwhile. Optional.
	OnAssigned func(ctx context.Context, offer Offer)

	// OnOrderGone is invoked when a claim attempt finds the order no longer
	// exists. Optional.
	OnOrderGone func(orderID kernel.UUID)
}

const (
	defaultPollInterval = 5 * time.Second
	defaultOfferWindow  = 30 * time.Second
)

// Agent runs the decision loop for one courier session.
type Agent struct {
	courierID kernel.UUID
	zone      *kernel.Zone
	client    DispatchClient
	decider   Decider
	cfg       Config
	logger    *slog.Logger

	notices chan ports.OrderEligibleNotice

	// offered tracks orders already presented this session so that an order
	// skipped or lost is never re-surfaced to the same courier.
	offered map[kernel.UUID]struct{}
}

// New creates an agent for one courier.
// A nil zone makes the agent consider orders from every zone.
func New(
	courierID kernel.UUID,
	zone *kernel.Zone,
	client DispatchClient,
	decider Decider,
	cfg Config,
	logger *slog.Logger,
) *Agent {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = defaultPollInterval
	}
	if cfg.OfferWindow <= 0 {
		cfg.OfferWindow = defaultOfferWindow
	}

	return &Agent{
		courierID: courierID,
		zone:      zone,
		client:    client,
		decider:   decider,
		cfg:       cfg,
		logger:    logger.With("component", "courier_agent", "courier_id", courierID.String()),
		notices:   make(chan ports.OrderEligibleNotice, 16),
		offered:   make(map[kernel.UUID]struct{}),
	}
}

// Notices returns the channel push notifications are fed into.
// Senders must not block on it; the channel is buffered and a full buffer
// means the agent is busy and will catch up via the feed poll.
func (a *Agent) Notices() chan<- ports.OrderEligibleNotice {
	return a.notices
}

// Run executes the decision loop until the context is cancelled.
// Each Run call is one online session: the offered-order set starts empty.
func (a *Agent) Run(ctx context.Context) error {
	a.offered = make(map[kernel.UUID]struct{})

	ticker := time.NewTicker(a.cfg.PollInterval)
	defer ticker.Stop()

	a.logger.InfoContext(ctx, "courier agent started")

	for {
		select {
		case <-ctx.Done():
			a.logger.InfoContext(ctx, "courier agent stopped")
			return ctx.Err()
		case notice := <-a.notices:
			if !a.noticeMatches(notice) {
				continue
			}
			a.handleOffer(ctx, Offer{OrderID: notice.OrderID, Zone: notice.Zone})
		case <-ticker.C:
			a.pollFeed(ctx)
		}
	}
}

// noticeMatches filters pushed notices against the agent's zone.
func (a *Agent) noticeMatches(notice ports.OrderEligibleNotice) bool {
	return a.zone == nil || a.zone.IsEqual(notice.Zone)
}

// pollFeed reads the dispatch feed and works through unseen entries in feed
// order until one offer is handled. One offer per poll keeps the oldest
// waiting order ahead of the rest.
func (a *Agent) pollFeed(ctx context.Context) {
	offers, err := a.client.ListEligibleOrders(ctx, a.zone)
	if err != nil {
		a.logger.WarnContext(ctx, "dispatch feed poll failed", "error", err)
		return
	}

	for _, offer := range offers {
		if _, seen := a.offered[offer.OrderID]; seen {
			continue
		}
		a.handleOffer(ctx, offer)
		return
	}
}

// handleOffer presents a single order to the Decider and acts on the outcome.
// The offer window is enforced here, not in the Decider: when the window
// closes the offer expires and counts as skipped.
func (a *Agent) handleOffer(ctx context.Context, offer Offer) {
	if _, seen := a.offered[offer.OrderID]; seen {
		return
	}
	a.offered[offer.OrderID] = struct{}{}

	offerCtx, cancel := context.WithTimeout(ctx, a.cfg.OfferWindow)
	defer cancel()

	decisionCh := make(chan Decision, 1)
	go func() {
		decisionCh <- a.decider.Decide(offerCtx, offer)
	}()

	select {
	case <-ctx.Done():
		return
	case <-offerCtx.Done():
		a.logger.DebugContext(ctx, "offer window expired", "order_id", offer.OrderID.String())
		return
	case decision := <-decisionCh:
		if decision != Accept {
			a.logger.DebugContext(ctx, "offer skipped", "order_id", offer.OrderID.String())
			return
		}
	}

	a.claim(ctx, offer)
}

// claim races for the accepted order. Exactly one courier wins; everyone else
// returns to idle silently.
func (a *Agent) claim(ctx context.Context, offer Offer) {
	err := a.client.ClaimOrder(ctx, offer.OrderID, a.courierID)
	switch {
	case err == nil:
		a.logger.InfoContext(ctx, "claim won", "order_id", offer.OrderID.String())
		if a.cfg.OnAssigned != nil {
			a.cfg.OnAssigned(ctx, offer)
		}
	case errors.Is(err, ports.ErrOrderAlreadyAssigned), errors.Is(err, ports.ErrOrderNotEligible):
		a.logger.DebugContext(ctx, "claim lost", "order_id", offer.OrderID.String())
	case errors.Is(err, errs.ErrObjectNotFound):
		a.logger.DebugContext(ctx, "order no longer available", "order_id", offer.OrderID.String())
		if a.cfg.OnOrderGone != nil {
			a.cfg.OnOrderGone(offer.OrderID)
		}
	default:
		a.logger.WarnContext(ctx, "claim attempt failed", "order_id", offer.OrderID.String(), "error", err)
	}
}
