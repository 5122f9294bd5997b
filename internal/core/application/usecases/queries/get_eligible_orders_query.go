// Package queries contains read-only operations that bypass the domain model.
// Implements the query side of CQRS with direct SQL access for performance.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetEligibleOrdersQueryIsNotConstructed = errors.New(
	"GetEligibleOrdersQuery must be created via NewGetEligibleOrdersQuery constructor",
)

// GetEligibleOrdersQuery retrieves the dispatch feed: every order that is
// currently claimable, oldest first. The result is a point-in-time snapshot;
// any entry may already be taken by the time a courier acts on it, and the
// claim operation is where that race is settled.
//
// Example:
//
//	query := NewGetEligibleOrdersQuery(nil) // all zones
//	handler := NewGetEligibleOrdersQueryHandler(db)
//
//	feed, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to read dispatch feed: %w", err)
//	}
//
//	for _, entry := range feed {
//	    fmt.Printf("order %s in %s, waiting since %s\n",
//	        entry.ID, entry.Zone, entry.EligibleSince)
//	}
type GetEligibleOrdersQuery struct {
	zone *kernel.Zone

	guard guard.ConstructorGuard
}

// NewGetEligibleOrdersQuery creates a query for the dispatch feed.
// A nil zone returns eligible orders across all zones; a non-nil zone narrows
// the feed to that area.
func NewGetEligibleOrdersQuery(zone *kernel.Zone) (GetEligibleOrdersQuery, error) {
	if zone != nil {
		if err := zone.Validate(); err != nil {
			return GetEligibleOrdersQuery{}, err
		}
	}

	return GetEligibleOrdersQuery{
		zone:  zone,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetEligibleOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetEligibleOrdersQueryIsNotConstructed)
}

// Zone returns the optional zone filter.
func (q GetEligibleOrdersQuery) Zone() *kernel.Zone {
	return q.zone
}

// GetEligibleOrdersQueryResponse is one dispatch feed entry.
type GetEligibleOrdersQueryResponse struct {
	ID            kernel.UUID
	Zone          kernel.Zone
	EligibleSince time.Time
}
