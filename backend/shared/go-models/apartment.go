package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Apartment is a rentable unit inside a building. UnitNumber is unique within
// its building.
type Apartment struct {
	ID         uuid.UUID       `json:"id"`
	BuildingID uuid.UUID       `json:"building_id"`
	UnitNumber string          `json:"unit_number"`
	Floor      int             `json:"floor"`
	RoomCount  string          `json:"room_count,omitempty"`
	RentAmount decimal.Decimal `json:"rent_amount"`
	IsOccupied bool            `json:"is_occupied"`
	OwnerID    *uuid.UUID      `json:"owner_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}
