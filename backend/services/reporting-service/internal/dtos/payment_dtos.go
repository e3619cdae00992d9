package dtos

// PaymentStatistics summarises every payment in the admin's buildings.
// Amounts are rounded to two places; rates are percentages.
type PaymentStatistics struct {
	TotalPaymentCount   int `json:"total_payment_count"`
	PaidPaymentCount    int `json:"paid_payment_count"`
	UnpaidPaymentCount  int `json:"unpaid_payment_count"`
	PendingPaymentCount int `json:"pending_payment_count"`
	OverduePaymentCount int `json:"overdue_payment_count"`
	OnTimePaymentCount  int `json:"on_time_payment_count"`

	TotalPaidAmount   float64 `json:"total_paid_amount"`
	TotalUnpaidAmount float64 `json:"total_unpaid_amount"`

	TotalDelayedPayments     int     `json:"total_delayed_payments"`
	TotalDelayedDays         int     `json:"total_delayed_days"`
	TotalDelayedBusinessDays int     `json:"total_delayed_business_days"`
	AverageDelayDays         float64 `json:"average_delay_days"`
	TotalPenaltyAmount       float64 `json:"total_penalty_amount"`

	OnTimePaymentRate  float64 `json:"on_time_payment_rate"`
	DelayedPaymentRate float64 `json:"delayed_payment_rate"`
	UnpaidPaymentRate  float64 `json:"unpaid_payment_rate"`

	TotalRentAmount  float64 `json:"total_rent_amount"`
	TotalDuesAmount  float64 `json:"total_dues_amount"`
	UnpaidRentAmount float64 `json:"unpaid_rent_amount"`
	UnpaidDuesAmount float64 `json:"unpaid_dues_amount"`
}

type Defaulter struct {
	UserID             string  `json:"user_id"`
	FullName           string  `json:"full_name"`
	TotalDebt          float64 `json:"total_debt"`
	UnpaidPaymentCount int     `json:"unpaid_payment_count"`
	TotalDelayedDays   int     `json:"total_delayed_days"`
}

type RankedDebtor struct {
	UserID             string  `json:"user_id"`
	FullName           string  `json:"full_name"`
	ApartmentID        string  `json:"apartment_id"`
	UnitNumber         string  `json:"unit_number"`
	TotalDebt          float64 `json:"total_debt"`
	UnpaidPaymentCount int     `json:"unpaid_payment_count"`
}

type RankedPayer struct {
	UserID             string  `json:"user_id"`
	FullName           string  `json:"full_name"`
	ApartmentID        string  `json:"apartment_id"`
	UnitNumber         string  `json:"unit_number"`
	TotalPaid          float64 `json:"total_paid"`
	PaymentCount       int     `json:"payment_count"`
	OnTimePaymentCount int     `json:"on_time_payment_count"`
	OnTimePaymentRate  float64 `json:"on_time_payment_rate"`
}

type PaymentRankings struct {
	TopDebtors []RankedDebtor `json:"top_debtors"`
	TopPayers  []RankedPayer  `json:"top_payers"`
}

// MonthlyCollection is one due-date month. CollectionRate is
// PaidCount / TotalCount * 100.
type MonthlyCollection struct {
	Year            int     `json:"year"`
	Month           int     `json:"month"`
	TotalAmount     float64 `json:"total_amount"`
	CollectedAmount float64 `json:"collected_amount"`
	TotalCount      int     `json:"total_count"`
	PaidCount       int     `json:"paid_count"`
	CollectionRate  float64 `json:"collection_rate"`
}

type PaymentRankingsQuery struct {
	Top int `validate:"gte=0,lte=50"`
}
