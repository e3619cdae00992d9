package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentTypeRent = "Rent"
	PaymentTypeDues = "Dues"
)

// Payment is one expected charge for a user. BuildingID duplicates the
// Apartment -> Building relation for the aggregation read path; it is derived
// from the apartment on insert.
//
// IsPaid implies PaymentDate is set. PenaltyAmount and DelayedDays are only
// meaningful when PaymentDate is after DueDate.
type Payment struct {
	ID            uuid.UUID        `json:"id"`
	UserID        uuid.UUID        `json:"user_id"`
	BuildingID    uuid.UUID        `json:"building_id"`
	ApartmentID   uuid.UUID        `json:"apartment_id"`
	PaymentType   string           `json:"payment_type"`
	Amount        decimal.Decimal  `json:"amount"`
	DueDate       time.Time        `json:"due_date"`
	PaymentDate   *time.Time       `json:"payment_date,omitempty"`
	IsPaid        bool             `json:"is_paid"`
	PenaltyAmount *decimal.Decimal `json:"penalty_amount,omitempty"`
	DelayedDays   *int             `json:"delayed_days,omitempty"`
	Description   string           `json:"description,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
}

// IsType compares the payment type case-insensitively.
func (p *Payment) IsType(paymentType string) bool {
	return strings.EqualFold(strings.TrimSpace(p.PaymentType), paymentType)
}

// PaidLate reports whether the payment was settled after its due date.
func (p *Payment) PaidLate() bool {
	return p.IsPaid && p.PaymentDate != nil && p.PaymentDate.After(p.DueDate)
}

// Penalty returns the delay penalty, zero when absent.
func (p *Payment) Penalty() decimal.Decimal {
	if p.PenaltyAmount == nil {
		return decimal.Zero
	}
	return *p.PenaltyAmount
}

// PaymentWithPayer is a payment joined with the paying user and apartment.
type PaymentWithPayer struct {
	Payment
	PayerFirstName string `json:"payer_first_name"`
	PayerLastName  string `json:"payer_last_name"`
	UnitNumber     string `json:"unit_number"`
}

func (p *PaymentWithPayer) PayerName() string {
	return JoinName(p.PayerFirstName, p.PayerLastName)
}
