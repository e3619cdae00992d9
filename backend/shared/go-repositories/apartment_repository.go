package repositories

import (
	"context"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
)

type ApartmentRepository interface {
	Create(ctx context.Context, a *models.Apartment) error
	CreateMany(ctx context.Context, list []models.Apartment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Apartment, error)
	ListByBuildingIDs(ctx context.Context, buildingIDs []uuid.UUID) ([]*models.Apartment, error)
}

type apartmentRepo struct {
	db DB
}

func NewApartmentRepository(db DB) ApartmentRepository {
	return &apartmentRepo{db: db}
}

func (r *apartmentRepo) Create(ctx context.Context, a *models.Apartment) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO apartments (
			id, building_id, unit_number, floor, room_count,
			rent_amount, is_occupied, owner_id, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW())
	`, a.ID, a.BuildingID, a.UnitNumber, a.Floor, a.RoomCount,
		a.RentAmount, a.IsOccupied, a.OwnerID)
	return err
}

func (r *apartmentRepo) CreateMany(ctx context.Context, list []models.Apartment) error {
	for i := range list {
		if err := r.Create(ctx, &list[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *apartmentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Apartment, error) {
	row := r.db.QueryRow(ctx, baseSelectApartment()+" WHERE id=$1", id)
	return r.scanApartment(row)
}

func (r *apartmentRepo) ListByBuildingIDs(ctx context.Context, buildingIDs []uuid.UUID) ([]*models.Apartment, error) {
	if len(buildingIDs) == 0 {
		return nil, nil
	}
	qb := newQueryBuilder()
	qb.addUUIDIn("building_id", buildingIDs)
	where, tail, args := qb.build(ListOptions{}, nil, "building_id, unit_number")

	rows, err := r.db.Query(ctx, baseSelectApartment()+where+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Apartment
	for rows.Next() {
		a, err := r.scanApartment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func baseSelectApartment() string {
	return `
		SELECT id, building_id, unit_number, floor, room_count,
		rent_amount, is_occupied, owner_id, created_at
		FROM apartments`
}

func (r *apartmentRepo) scanApartment(row pgx.Row) (*models.Apartment, error) {
	var a models.Apartment
	if err := row.Scan(
		&a.ID, &a.BuildingID, &a.UnitNumber, &a.Floor, &a.RoomCount,
		&a.RentAmount, &a.IsOccupied, &a.OwnerID, &a.CreatedAt,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}
