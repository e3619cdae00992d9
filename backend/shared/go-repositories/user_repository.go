package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.User, error)
}

type userRepo struct {
	db DB
}

func NewUserRepository(db DB) UserRepository {
	return &userRepo{db: db}
}

// Create flattens the variant payload into the kind-specific columns.
func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	var (
		companyName *string
		apartmentID *uuid.UUID
		moveInDate  *time.Time
		iban        *string
	)
	switch u.Kind {
	case models.UserKindAdmin:
		if u.Admin != nil {
			companyName = &u.Admin.CompanyName
		}
	case models.UserKindTenant:
		if u.Tenant != nil {
			apartmentID = u.Tenant.ApartmentID
			moveInDate = u.Tenant.MoveInDate
		}
	case models.UserKindOwner:
		if u.Owner != nil {
			iban = &u.Owner.IBAN
		}
	default:
		return fmt.Errorf("create user %s: invalid kind %q", u.ID, u.Kind)
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO users (
			id, kind, first_name, last_name, email, phone_number, is_active,
			company_name, apartment_id, move_in_date, iban, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,NOW())
	`, u.ID, string(u.Kind), u.FirstName, u.LastName, u.Email, u.PhoneNumber, u.IsActive,
		companyName, apartmentID, moveInDate, iban)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := r.db.QueryRow(ctx, baseSelectUser()+" WHERE id=$1", id)
	return scanUser(row)
}

func (r *userRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	qb := newQueryBuilder()
	qb.addUUIDIn("id", ids)
	where, tail, args := qb.build(ListOptions{}, nil, "id")

	rows, err := r.db.Query(ctx, baseSelectUser()+where+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func baseSelectUser() string {
	return `
		SELECT ` + userColumns("users") + `
		FROM users`
}

// userColumns lists the user columns under a table alias so joined reads can
// reuse scanUserInto.
func userColumns(alias string) string {
	return fmt.Sprintf(`%[1]s.id, %[1]s.kind, %[1]s.first_name, %[1]s.last_name, %[1]s.email,
		%[1]s.phone_number, %[1]s.is_active, %[1]s.company_name, %[1]s.apartment_id,
		%[1]s.move_in_date, %[1]s.iban, %[1]s.created_at`, alias)
}

type userScan struct {
	kind        string
	companyName *string
	apartmentID *uuid.UUID
	moveInDate  *time.Time
	iban        *string
}

func (s *userScan) dest(u *models.User) []any {
	return []any{
		&u.ID, &s.kind, &u.FirstName, &u.LastName, &u.Email,
		&u.PhoneNumber, &u.IsActive, &s.companyName, &s.apartmentID,
		&s.moveInDate, &s.iban, &u.CreatedAt,
	}
}

// resolve sets Kind and exactly one variant payload.
func (s *userScan) resolve(u *models.User) error {
	kind, err := models.ParseUserKind(s.kind)
	if err != nil {
		return fmt.Errorf("user %s: %w", u.ID, err)
	}
	u.Kind = kind
	switch kind {
	case models.UserKindAdmin:
		u.Admin = &models.AdminProfile{}
		if s.companyName != nil {
			u.Admin.CompanyName = *s.companyName
		}
	case models.UserKindTenant:
		u.Tenant = &models.TenantProfile{ApartmentID: s.apartmentID, MoveInDate: s.moveInDate}
	case models.UserKindOwner:
		u.Owner = &models.OwnerProfile{}
		if s.iban != nil {
			u.Owner.IBAN = *s.iban
		}
	}
	return nil
}

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		u models.User
		s userScan
	)
	if err := row.Scan(s.dest(&u)...); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := s.resolve(&u); err != nil {
		return nil, err
	}
	return &u, nil
}
