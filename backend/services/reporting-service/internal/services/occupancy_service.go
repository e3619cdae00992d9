package services

import (
	"context"
	"fmt"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/dtos"
	internal_utils "github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/utils"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-repositories"
	"github.com/google/uuid"
)

type OccupancyService struct {
	buildingRepo  repositories.BuildingRepository
	apartmentRepo repositories.ApartmentRepository
}

func NewOccupancyService(buildingRepo repositories.BuildingRepository, apartmentRepo repositories.ApartmentRepository) *OccupancyService {
	return &OccupancyService{
		buildingRepo:  buildingRepo,
		apartmentRepo: apartmentRepo,
	}
}

// GetOccupancyRates computes portfolio occupancy over every building the
// admin owns. Unit totals come from apartment rows, not
// Building.TotalApartments.
func (s *OccupancyService) GetOccupancyRates(ctx context.Context, adminID uuid.UUID) (*dtos.OccupancyRates, error) {
	buildings, ids, err := ownedBuildings(ctx, s.buildingRepo, adminID)
	if err != nil {
		return nil, err
	}
	out := &dtos.OccupancyRates{Buildings: []dtos.BuildingOccupancy{}}
	if len(buildings) == 0 {
		return out, nil
	}

	apartments, err := s.apartmentRepo.ListByBuildingIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list apartments: %w", err)
	}
	byBuilding := groupApartments(apartments)

	for _, b := range buildings {
		row := occupancyOf(b, byBuilding[b.ID])
		out.TotalUnits += row.TotalUnits
		out.OccupiedUnits += row.OccupiedUnits
		out.Buildings = append(out.Buildings, row)
	}
	out.VacantUnits = out.TotalUnits - out.OccupiedUnits
	out.Percentage = internal_utils.Percent(out.OccupiedUnits, out.TotalUnits)
	return out, nil
}

func (s *OccupancyService) GetBuildingOccupancy(ctx context.Context, buildingID uuid.UUID) (*dtos.BuildingOccupancy, error) {
	b, err := requireBuilding(ctx, s.buildingRepo, buildingID)
	if err != nil {
		return nil, err
	}
	apartments, err := s.apartmentRepo.ListByBuildingIDs(ctx, []uuid.UUID{b.ID})
	if err != nil {
		return nil, fmt.Errorf("list apartments for building %s: %w", b.ID, err)
	}
	row := occupancyOf(b, apartments)
	return &row, nil
}

func groupApartments(apartments []*models.Apartment) map[uuid.UUID][]*models.Apartment {
	out := make(map[uuid.UUID][]*models.Apartment)
	for _, a := range apartments {
		out[a.BuildingID] = append(out[a.BuildingID], a)
	}
	return out
}

func occupancyOf(b *models.Building, apartments []*models.Apartment) dtos.BuildingOccupancy {
	row := dtos.BuildingOccupancy{
		BuildingID:   b.ID.String(),
		BuildingName: b.BuildingName,
		TotalUnits:   len(apartments),
	}
	for _, a := range apartments {
		if a.IsOccupied {
			row.OccupiedUnits++
		}
	}
	row.VacantUnits = row.TotalUnits - row.OccupiedUnits
	row.OccupancyRate = internal_utils.Percent(row.OccupiedUnits, row.TotalUnits)
	return row
}
