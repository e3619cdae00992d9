package dtos

import (
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
)

type BuildingSummary struct {
	BuildingID     string  `json:"building_id"`
	BuildingName   string  `json:"building_name"`
	TotalUnits     int     `json:"total_units"`
	OccupiedUnits  int     `json:"occupied_units"`
	VacantUnits    int     `json:"vacant_units"`
	OccupancyRate  float64 `json:"occupancy_rate"`
	TenantCount    int     `json:"tenant_count"`
	ComplaintCount int     `json:"complaint_count"`
	PaymentCount   int     `json:"payment_count"`
	TotalIncome    float64 `json:"total_income"`
	AverageRent    float64 `json:"average_rent"`
}

type BuildingHighlight struct {
	BuildingID   string  `json:"building_id"`
	BuildingName string  `json:"building_name"`
	Value        float64 `json:"value"`
}

type BuildingSummarySection struct {
	Buildings                  []BuildingSummary  `json:"buildings"`
	HighestIncomeBuilding      *BuildingHighlight `json:"highest_income_building,omitempty"`
	HighestAverageRentBuilding *BuildingHighlight `json:"highest_average_rent_building,omitempty"`
}

type SurveySummary struct {
	ID             string    `json:"id"`
	BuildingID     string    `json:"building_id"`
	BuildingName   string    `json:"building_name"`
	Title          string    `json:"title"`
	TotalResponses int       `json:"total_responses"`
	IsActive       bool      `json:"is_active"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	CreatedAt      time.Time `json:"created_at"`
}

type TenantSummary struct {
	UserID       string    `json:"user_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	PhoneNumber  *string   `json:"phone_number,omitempty"`
	ApartmentID  string    `json:"apartment_id"`
	UnitNumber   string    `json:"unit_number"`
	BuildingID   string    `json:"building_id"`
	BuildingName string    `json:"building_name"`
	LeaseEnd     time.Time `json:"lease_end"`
	CreatedAt    time.Time `json:"created_at"`
}

type ExpiringContract struct {
	ContractID    string    `json:"contract_id"`
	TenantID      string    `json:"tenant_id"`
	TenantName    string    `json:"tenant_name"`
	ApartmentID   string    `json:"apartment_id"`
	UnitNumber    string    `json:"unit_number"`
	BuildingID    string    `json:"building_id"`
	BuildingName  string    `json:"building_name"`
	EndDate       time.Time `json:"end_date"`
	DaysRemaining int       `json:"days_remaining"`
	RentAmount    float64   `json:"rent_amount"`
}

type NotificationSummary struct {
	ID         string                  `json:"id"`
	BuildingID *string                 `json:"building_id,omitempty"`
	Title      string                  `json:"title"`
	Message    string                  `json:"message"`
	Type       models.NotificationType `json:"type"`
	CreatedAt  time.Time               `json:"created_at"`
}

type MeetingSummary struct {
	ID             string    `json:"id"`
	BuildingID     string    `json:"building_id"`
	BuildingName   string    `json:"building_name"`
	Title          string    `json:"title"`
	Location       string    `json:"location,omitempty"`
	MeetingDate    time.Time `json:"meeting_date"`
	IsCancelled    bool      `json:"is_cancelled"`
	AttendanceRate float64   `json:"attendance_rate"`
}

// MonthlyIncome is one month of the trailing financial window, bucketed by
// due date.
type MonthlyIncome struct {
	Year            int     `json:"year"`
	Month           int     `json:"month"`
	MonthName       string  `json:"month_name"`
	Label           string  `json:"label"`
	ExpectedAmount  float64 `json:"expected_amount"`
	CollectedAmount float64 `json:"collected_amount"`
}

// BuildingCollection compares expected and collected income for one building
// over the window. CollectionRate is a whole percentage.
type BuildingCollection struct {
	BuildingID      string  `json:"building_id"`
	BuildingName    string  `json:"building_name"`
	ExpectedAmount  float64 `json:"expected_amount"`
	CollectedAmount float64 `json:"collected_amount"`
	CollectionRate  int     `json:"collection_rate"`
}

type FinancialSummary struct {
	Months         []MonthlyIncome      `json:"months"`
	Buildings      []BuildingCollection `json:"buildings"`
	TotalExpected  float64              `json:"total_expected"`
	TotalCollected float64              `json:"total_collected"`
}

// AdminReport is the consolidated dashboard. A section that could not be
// computed holds its empty value.
type AdminReport struct {
	AdminID     string    `json:"admin_id"`
	BuildingID  *string   `json:"building_id,omitempty"`
	Language    string    `json:"language"`
	GeneratedAt time.Time `json:"generated_at"`

	BuildingSummary     BuildingSummarySection `json:"building_summary"`
	RecentSurveys       []SurveySummary        `json:"recent_surveys"`
	RecentComplaints    []ComplaintDetail      `json:"recent_complaints"`
	RecentTenants       []TenantSummary        `json:"recent_tenants"`
	ExpiringContracts   []ExpiringContract     `json:"expiring_contracts"`
	RecentNotifications []NotificationSummary  `json:"recent_notifications"`
	RecentMeetings      []MeetingSummary       `json:"recent_meetings"`
	FinancialSummary    FinancialSummary       `json:"financial_summary"`

	PaymentStatistics  PaymentStatistics  `json:"payment_statistics"`
	ComplaintAnalytics ComplaintAnalytics `json:"complaint_analytics"`
	MeetingStatistics  MeetingStatistics  `json:"meeting_statistics"`
}

// AdminReportQuery holds the overview query parameters. Lang falls back to
// the Accept-Language header.
type AdminReportQuery struct {
	BuildingID string `validate:"omitempty,uuid"`
	Lang       string `validate:"omitempty,max=35"`
}
