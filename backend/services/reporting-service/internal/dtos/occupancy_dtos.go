package dtos

type BuildingOccupancy struct {
	BuildingID    string  `json:"building_id"`
	BuildingName  string  `json:"building_name"`
	TotalUnits    int     `json:"total_units"`
	OccupiedUnits int     `json:"occupied_units"`
	VacantUnits   int     `json:"vacant_units"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// OccupancyRates is the portfolio-wide occupancy with a per-building
// breakdown. Percentage is in [0, 100].
type OccupancyRates struct {
	TotalUnits    int                 `json:"total_units"`
	OccupiedUnits int                 `json:"occupied_units"`
	VacantUnits   int                 `json:"vacant_units"`
	Percentage    float64             `json:"percentage"`
	Buildings     []BuildingOccupancy `json:"buildings"`
}
