package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/shopspring/decimal"
)

var (
	ErrPaymentBuildingMismatch = errors.New("payment building does not match its apartment's building")
	ErrApartmentNotFound       = errors.New("apartment not found")
)

// PaymentFilter narrows a payment list. Nil fields add no predicate.
type PaymentFilter struct {
	BuildingIDs []uuid.UUID
	IsPaid      *bool
	DueFrom     *time.Time
	DueBefore   *time.Time
	PaidFrom    *time.Time
	PaidBefore  *time.Time
}

type PaymentRepository interface {
	Create(ctx context.Context, p *models.Payment) error
	List(ctx context.Context, f PaymentFilter, opts ListOptions) ([]*models.PaymentWithPayer, error)
}

type paymentRepo struct {
	db DB
}

func NewPaymentRepository(db DB) PaymentRepository {
	return &paymentRepo{db: db}
}

var paymentOrderColumns = map[string]string{
	"due_date":     "p.due_date",
	"payment_date": "p.payment_date",
	"amount":       "p.amount",
	"created_at":   "p.created_at",
}

// Create copies building_id from the apartment row in the same statement.
// A caller-supplied BuildingID that disagrees with the apartment is rejected.
func (r *paymentRepo) Create(ctx context.Context, p *models.Payment) error {
	var expected *uuid.UUID
	if p.BuildingID != uuid.Nil {
		expected = &p.BuildingID
	}
	row := r.db.QueryRow(ctx, `
		INSERT INTO payments (
			id, user_id, building_id, apartment_id, payment_type, amount,
			due_date, payment_date, is_paid, penalty_amount, delayed_days,
			description, created_at
		)
		SELECT $1, $2, a.building_id, a.id, $4, $5, $6, $7, $8, $9, $10, $11, NOW()
		FROM apartments a
		WHERE a.id = $3 AND ($12::uuid IS NULL OR a.building_id = $12::uuid)
		RETURNING building_id
	`, p.ID, p.UserID, p.ApartmentID, p.PaymentType, p.Amount,
		p.DueDate, p.PaymentDate, p.IsPaid, nullDecimal(p.PenaltyAmount), p.DelayedDays,
		p.Description, expected)

	var buildingID uuid.UUID
	err := row.Scan(&buildingID)
	if err == nil {
		p.BuildingID = buildingID
		return nil
	}
	if err != pgx.ErrNoRows {
		return err
	}

	var exists bool
	if err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM apartments WHERE id=$1)`, p.ApartmentID,
	).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrApartmentNotFound
	}
	return ErrPaymentBuildingMismatch
}

func (r *paymentRepo) List(ctx context.Context, f PaymentFilter, opts ListOptions) ([]*models.PaymentWithPayer, error) {
	if f.BuildingIDs != nil && len(f.BuildingIDs) == 0 {
		return nil, nil
	}
	qb := newQueryBuilder()
	qb.addUUIDIn("p.building_id", f.BuildingIDs)
	if f.IsPaid != nil {
		qb.addCondition("%s = $%d", "p.is_paid", *f.IsPaid)
	}
	qb.addTimeRange("p.due_date", f.DueFrom, f.DueBefore)
	qb.addTimeRange("p.payment_date", f.PaidFrom, f.PaidBefore)
	where, tail, args := qb.build(opts, paymentOrderColumns, "p.due_date DESC, p.id")

	rows, err := r.db.Query(ctx, baseSelectPaymentWithPayer()+where+tail, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.PaymentWithPayer
	for rows.Next() {
		p, err := scanPaymentWithPayer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func baseSelectPaymentWithPayer() string {
	return `
		SELECT p.id, p.user_id, p.building_id, p.apartment_id, p.payment_type, p.amount,
		p.due_date, p.payment_date, p.is_paid, p.penalty_amount, p.delayed_days,
		p.description, p.created_at,
		COALESCE(u.first_name, ''), COALESCE(u.last_name, ''), COALESCE(a.unit_number, '')
		FROM payments p
		LEFT JOIN users u ON u.id = p.user_id
		LEFT JOIN apartments a ON a.id = p.apartment_id`
}

func scanPaymentWithPayer(row pgx.Row) (*models.PaymentWithPayer, error) {
	var (
		p       models.PaymentWithPayer
		penalty decimal.NullDecimal
	)
	if err := row.Scan(
		&p.ID, &p.UserID, &p.BuildingID, &p.ApartmentID, &p.PaymentType, &p.Amount,
		&p.DueDate, &p.PaymentDate, &p.IsPaid, &penalty, &p.DelayedDays,
		&p.Description, &p.CreatedAt,
		&p.PayerFirstName, &p.PayerLastName, &p.UnitNumber,
	); err != nil {
		return nil, err
	}
	if penalty.Valid {
		p.PenaltyAmount = &penalty.Decimal
	}
	return &p, nil
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
