package repositories

import (
	"context"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
)

type BuildingRepository interface {
	Create(ctx context.Context, b *models.Building) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error)
	ListByAdminID(ctx context.Context, adminID uuid.UUID) ([]*models.Building, error)
}

type buildingRepo struct {
	db DB
}

func NewBuildingRepository(db DB) BuildingRepository {
	return &buildingRepo{db: db}
}

func (r *buildingRepo) Create(ctx context.Context, b *models.Building) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO buildings (
			id, admin_id, building_name, address, city, district,
			floor_count, total_apartments, construction_year,
			has_elevator, has_parking, has_playground, has_security, has_garden,
			heating_type, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,NOW())
	`,
		b.ID, b.AdminID, b.BuildingName, b.Address, b.City, b.District,
		b.FloorCount, b.TotalApartments, b.ConstructionYear,
		b.Amenities.HasElevator, b.Amenities.HasParking, b.Amenities.HasPlayground,
		b.Amenities.HasSecurity, b.Amenities.HasGarden, b.Amenities.HeatingType,
	)
	return err
}

func (r *buildingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	row := r.db.QueryRow(ctx, baseSelectBuilding()+" WHERE id=$1", id)
	return r.scanBuilding(row)
}

// ListByAdminID returns the admin's buildings ordered by name. This is the
// owned-building set every admin-scoped aggregation starts from.
func (r *buildingRepo) ListByAdminID(ctx context.Context, adminID uuid.UUID) ([]*models.Building, error) {
	rows, err := r.db.Query(ctx, baseSelectBuilding()+" WHERE admin_id=$1 ORDER BY building_name, id", adminID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Building
	for rows.Next() {
		b, err := r.scanBuilding(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func baseSelectBuilding() string {
	return `
		SELECT id, admin_id, building_name, address, city, district,
		floor_count, total_apartments, construction_year,
		has_elevator, has_parking, has_playground, has_security, has_garden,
		heating_type, created_at
		FROM buildings`
}

func (r *buildingRepo) scanBuilding(row pgx.Row) (*models.Building, error) {
	var b models.Building
	if err := row.Scan(
		&b.ID, &b.AdminID, &b.BuildingName, &b.Address, &b.City, &b.District,
		&b.FloorCount, &b.TotalApartments, &b.ConstructionYear,
		&b.Amenities.HasElevator, &b.Amenities.HasParking, &b.Amenities.HasPlayground,
		&b.Amenities.HasSecurity, &b.Amenities.HasGarden, &b.Amenities.HeatingType,
		&b.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
