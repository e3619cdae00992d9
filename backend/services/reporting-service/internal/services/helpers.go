package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-repositories"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/google/uuid"
)

func utcNow() time.Time {
	return time.Now().UTC()
}

// ownedBuildings resolves the buildings an administrator owns. An admin with
// no buildings yields empty, non-nil slices so downstream filters match
// nothing.
func ownedBuildings(ctx context.Context, repo repositories.BuildingRepository, adminID uuid.UUID) ([]*models.Building, []uuid.UUID, error) {
	buildings, err := repo.ListByAdminID(ctx, adminID)
	if err != nil {
		return nil, nil, fmt.Errorf("list buildings for admin %s: %w", adminID, err)
	}
	ids := make([]uuid.UUID, 0, len(buildings))
	for _, b := range buildings {
		ids = append(ids, b.ID)
	}
	return buildings, ids, nil
}

// requireBuilding loads a building or returns a 404 AppError.
func requireBuilding(ctx context.Context, repo repositories.BuildingRepository, buildingID uuid.UUID) (*models.Building, error) {
	b, err := repo.GetByID(ctx, buildingID)
	if err != nil {
		return nil, fmt.Errorf("get building %s: %w", buildingID, err)
	}
	if b == nil {
		return nil, utils.NotFound("Building not found", utils.ErrBuildingNotFound)
	}
	return b, nil
}

// lessByNameThenID is the tie-break for rankings with equal amounts.
func lessByNameThenID(nameA, nameB string, idA, idB uuid.UUID) bool {
	if nameA != nameB {
		return nameA < nameB
	}
	return idA.String() < idB.String()
}
