// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient querying by status, zone, and courier assignment.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CourierID     *uuid.UUID `gorm:"type:uuid;index"`
	Zone          string     `gorm:"type:varchar(64);index"`
	Status        int        `gorm:"index"`
	EligibleSince *time.Time
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including optional courier assignment.
func fromDomain(order *order.Order) OrderDTO {
	var courierID *uuid.UUID
	if id := order.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	return OrderDTO{
		ID:            order.ID().Bytes(),
		CourierID:     courierID,
		Zone:          order.Zone().String(),
		Status:        int(order.Status()),
		EligibleSince: order.EligibleSince(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including status, courier assignment,
// and eligibility timestamp using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}

		courierID = &cID
	}

	zone, err := kernel.NewZone(dto.Zone)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(id, zone, order.Status(dto.Status), courierID, dto.EligibleSince)
}
