package models

import (
	"time"

	"github.com/google/uuid"
)

// Amenities are the static facility attributes of a building.
type Amenities struct {
	HasElevator   bool   `json:"has_elevator"`
	HasParking    bool   `json:"has_parking"`
	HasPlayground bool   `json:"has_playground"`
	HasSecurity   bool   `json:"has_security"`
	HasGarden     bool   `json:"has_garden"`
	HeatingType   string `json:"heating_type,omitempty"`
}

// Building is owned by exactly one administrator. AdminID never changes after
// creation.
type Building struct {
	ID               uuid.UUID `json:"id"`
	AdminID          uuid.UUID `json:"admin_id"`
	BuildingName     string    `json:"building_name"`
	Address          string    `json:"address"`
	City             string    `json:"city"`
	District         string    `json:"district,omitempty"`
	FloorCount       int       `json:"floor_count"`
	TotalApartments  int       `json:"total_apartments"`
	ConstructionYear *int      `json:"construction_year,omitempty"`
	Amenities        Amenities `json:"amenities"`
	CreatedAt        time.Time `json:"created_at"`
}
