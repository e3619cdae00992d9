package repositories

import (
	"context"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
)

type ContractRepository interface {
	Create(ctx context.Context, c *models.Contract) error

	// ListTenants walks apartment -> building -> contract -> user, newest
	// tenant first.
	ListTenants(ctx context.Context, buildingIDs []uuid.UUID, opts ListOptions) ([]*models.TenantListing, error)

	// ListExpiring returns active contracts whose end date falls in
	// [from, to), soonest first.
	ListExpiring(ctx context.Context, buildingIDs []uuid.UUID, from, to time.Time) ([]*models.ContractListing, error)

	// CountTenantsByBuilding counts distinct tenants holding an active
	// contract per building.
	CountTenantsByBuilding(ctx context.Context, buildingIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type contractRepo struct {
	db DB
}

func NewContractRepository(db DB) ContractRepository {
	return &contractRepo{db: db}
}

var tenantOrderColumns = map[string]string{
	"created_at": "u.created_at",
	"lease_end":  "c.end_date",
}

func (r *contractRepo) Create(ctx context.Context, c *models.Contract) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO contracts (
			id, tenant_id, owner_id, apartment_id, start_date, end_date,
			rent_amount, is_active, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,NOW())
	`, c.ID, c.TenantID, c.OwnerID, c.ApartmentID, c.StartDate, c.EndDate,
		c.RentAmount, c.IsActive)
	return err
}

func (r *contractRepo) ListTenants(ctx context.Context, buildingIDs []uuid.UUID, opts ListOptions) ([]*models.TenantListing, error) {
	if len(buildingIDs) == 0 {
		return nil, nil
	}
	qb := newQueryBuilder()
	qb.addUUIDIn("a.building_id", buildingIDs)
	where, tail, args := qb.build(opts, tenantOrderColumns, "u.created_at DESC, u.id, c.end_date DESC")

	rows, err := r.db.Query(ctx, `
		SELECT `+userColumns("u")+`,
		a.id, a.unit_number, b.id, b.building_name, c.id, c.end_date
		FROM apartments a
		JOIN buildings b ON b.id = a.building_id
		JOIN contracts c ON c.apartment_id = a.id
		JOIN users u ON u.id = c.tenant_id`+where+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.TenantListing
	for rows.Next() {
		var (
			t models.TenantListing
			s userScan
		)
		dest := append(s.dest(&t.Tenant),
			&t.ApartmentID, &t.UnitNumber, &t.BuildingID, &t.BuildingName, &t.ContractID, &t.LeaseEnd)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		if err := s.resolve(&t.Tenant); err != nil {
			return nil, err
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *contractRepo) ListExpiring(ctx context.Context, buildingIDs []uuid.UUID, from, to time.Time) ([]*models.ContractListing, error) {
	if len(buildingIDs) == 0 {
		return nil, nil
	}
	qb := newQueryBuilder()
	qb.addUUIDIn("a.building_id", buildingIDs)
	qb.addRaw("c.is_active")
	qb.addTimeRange("c.end_date", &from, &to)
	where, tail, args := qb.build(ListOptions{}, nil, "c.end_date, c.id")

	rows, err := r.db.Query(ctx, `
		SELECT c.id, c.tenant_id, c.owner_id, c.apartment_id, c.start_date, c.end_date,
		c.rent_amount, c.is_active, c.created_at,
		COALESCE(u.first_name, ''), COALESCE(u.last_name, ''),
		a.unit_number, b.id, b.building_name
		FROM contracts c
		JOIN apartments a ON a.id = c.apartment_id
		JOIN buildings b ON b.id = a.building_id
		LEFT JOIN users u ON u.id = c.tenant_id`+where+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.ContractListing
	for rows.Next() {
		c, err := scanContractListing(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *contractRepo) CountTenantsByBuilding(ctx context.Context, buildingIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	out := make(map[uuid.UUID]int, len(buildingIDs))
	if len(buildingIDs) == 0 {
		return out, nil
	}
	rows, err := r.db.Query(ctx, `
		SELECT a.building_id, COUNT(DISTINCT c.tenant_id)
		FROM contracts c
		JOIN apartments a ON a.id = c.apartment_id
		WHERE c.is_active AND a.building_id = ANY($1::uuid[])
		GROUP BY a.building_id
	`, uuidStrings(buildingIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id uuid.UUID
			n  int
		)
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}

func scanContractListing(row pgx.Row) (*models.ContractListing, error) {
	var c models.ContractListing
	if err := row.Scan(
		&c.ID, &c.TenantID, &c.OwnerID, &c.ApartmentID, &c.StartDate, &c.EndDate,
		&c.RentAmount, &c.IsActive, &c.CreatedAt,
		&c.TenantFirstName, &c.TenantLastName,
		&c.UnitNumber, &c.BuildingID, &c.BuildingName,
	); err != nil {
		return nil, err
	}
	return &c, nil
}
