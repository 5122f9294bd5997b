package queries

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetEligibleOrdersQueryHandler reads the dispatch feed from the database.
// The feed is ordered by eligible_since so the longest-waiting orders surface
// first; couriers polling the feed see a stable oldest-first ordering.
type GetEligibleOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetEligibleOrdersQueryHandler creates a handler for dispatch feed reads.
// Requires a GORM database connection for query execution.
func NewGetEligibleOrdersQueryHandler(db *gorm.DB) GetEligibleOrdersQueryHandler {
	return GetEligibleOrdersQueryHandler{db: db}
}

// Handle executes the feed query.
// Returns orders in Packed status with no assigned courier, optionally
// narrowed to a zone, sorted by the instant they became eligible.
func (h GetEligibleOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetEligibleOrdersQuery,
) ([]GetEligibleOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	feed := make([]GetEligibleOrdersQueryResponse, 0)

	sql := `
		SELECT
			id,
			zone,
			eligible_since
		FROM orders
		WHERE status = ? AND courier_id IS NULL
	`
	args := []any{order.Packed}
	if query.Zone() != nil {
		sql += ` AND zone = ?`
		args = append(args, query.Zone().String())
	}
	sql += ` ORDER BY eligible_since`

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry GetEligibleOrdersQueryResponse
		var id uuid.UUID
		var zoneName string
		var eligibleSince time.Time

		err = rows.Scan(
			&id,
			&zoneName,
			&eligibleSince,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		entry.ID = orderID

		zone, zoneErr := kernel.NewZone(zoneName)
		if zoneErr != nil {
			return nil, zoneErr
		}
		entry.Zone = zone
		entry.EligibleSince = eligibleSince

		feed = append(feed, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return feed, nil
}
