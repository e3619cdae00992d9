package testhelpers

import (
	"fmt"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func (h *TestHelper) CreateTestAdmin(first, last string) *models.User {
	u := &models.User{
		ID:        uuid.New(),
		Kind:      models.UserKindAdmin,
		FirstName: first,
		LastName:  last,
		Email:     fmt.Sprintf("%s.%s@example.com", first, last),
		IsActive:  true,
		CreatedAt: DaysAgo(365),
		Admin:     &models.AdminProfile{CompanyName: last + " Yönetim"},
	}
	require.NoError(h.T, h.Store.Users().Create(h.Ctx, u))
	return u
}

func (h *TestHelper) CreateTestTenant(first, last string, createdAt time.Time) *models.User {
	u := &models.User{
		ID:        uuid.New(),
		Kind:      models.UserKindTenant,
		FirstName: first,
		LastName:  last,
		Email:     fmt.Sprintf("%s.%s@example.com", first, last),
		IsActive:  true,
		CreatedAt: createdAt,
		Tenant:    &models.TenantProfile{},
	}
	require.NoError(h.T, h.Store.Users().Create(h.Ctx, u))
	return u
}

func (h *TestHelper) CreateTestOwner(first, last string) *models.User {
	u := &models.User{
		ID:        uuid.New(),
		Kind:      models.UserKindOwner,
		FirstName: first,
		LastName:  last,
		Email:     fmt.Sprintf("%s.%s@example.com", first, last),
		IsActive:  true,
		CreatedAt: DaysAgo(400),
		Owner:     &models.OwnerProfile{IBAN: "TR000000000000000000000000"},
	}
	require.NoError(h.T, h.Store.Users().Create(h.Ctx, u))
	return u
}

func (h *TestHelper) CreateTestBuilding(adminID uuid.UUID, name string, totalApartments int) *models.Building {
	b := &models.Building{
		ID:              uuid.New(),
		AdminID:         adminID,
		BuildingName:    name,
		Address:         name + " Sokak 1",
		City:            "İstanbul",
		FloorCount:      5,
		TotalApartments: totalApartments,
		CreatedAt:       DaysAgo(500),
	}
	require.NoError(h.T, h.Store.Buildings().Create(h.Ctx, b))
	return b
}

// CreateTestApartments adds total units to b, the first occupied of which
// are marked occupied, all at the given rent.
func (h *TestHelper) CreateTestApartments(b *models.Building, total, occupied int, rent int64) []*models.Apartment {
	out := make([]*models.Apartment, 0, total)
	for i := 0; i < total; i++ {
		a := &models.Apartment{
			ID:         uuid.New(),
			BuildingID: b.ID,
			UnitNumber: fmt.Sprintf("%d", i+1),
			Floor:      i / 2,
			RoomCount:  "2+1",
			RentAmount: decimal.NewFromInt(rent),
			IsOccupied: i < occupied,
			CreatedAt:  DaysAgo(500),
		}
		require.NoError(h.T, h.Store.Apartments().Create(h.Ctx, a))
		out = append(out, a)
	}
	return out
}

// PaymentSpec describes a test payment relative to FixedNow.
type PaymentSpec struct {
	Type        string
	Amount      int64
	DueDaysAgo  int
	PaidDaysAgo *int
	Penalty     *int64
	DelayedDays *int
}

func (h *TestHelper) CreateTestPayment(user *models.User, apt *models.Apartment, spec PaymentSpec) *models.Payment {
	typ := spec.Type
	if typ == "" {
		typ = models.PaymentTypeRent
	}
	p := &models.Payment{
		ID:          uuid.New(),
		UserID:      user.ID,
		ApartmentID: apt.ID,
		PaymentType: typ,
		Amount:      decimal.NewFromInt(spec.Amount),
		DueDate:     DaysAgo(spec.DueDaysAgo),
		DelayedDays: spec.DelayedDays,
		CreatedAt:   DaysAgo(spec.DueDaysAgo + 30),
	}
	if spec.PaidDaysAgo != nil {
		paid := DaysAgo(*spec.PaidDaysAgo)
		p.PaymentDate = &paid
		p.IsPaid = true
	}
	if spec.Penalty != nil {
		pen := decimal.NewFromInt(*spec.Penalty)
		p.PenaltyAmount = &pen
	}
	require.NoError(h.T, h.Store.Payments().Create(h.Ctx, p))
	return p
}

func (h *TestHelper) CreateTestContract(tenant, owner *models.User, apt *models.Apartment, start, end time.Time, active bool) *models.Contract {
	c := &models.Contract{
		ID:          uuid.New(),
		TenantID:    tenant.ID,
		OwnerID:     owner.ID,
		ApartmentID: apt.ID,
		StartDate:   start,
		EndDate:     end,
		RentAmount:  apt.RentAmount,
		IsActive:    active,
		CreatedAt:   start,
	}
	require.NoError(h.T, h.Store.Contracts().Create(h.Ctx, c))
	return c
}

func (h *TestHelper) CreateTestComplaint(b *models.Building, user *models.User, status models.ComplaintStatusType, createdAt time.Time, resolvedAt *time.Time) *models.Complaint {
	c := &models.Complaint{
		ID:          uuid.New(),
		BuildingID:  b.ID,
		UserID:      user.ID,
		Title:       "Complaint " + createdAt.Format("2006-01-02 15:04"),
		Description: "Water pressure is low",
		Status:      status,
		CreatedAt:   createdAt,
		ResolvedAt:  resolvedAt,
	}
	require.NoError(h.T, h.Store.Complaints().Create(h.Ctx, c))
	return c
}

func (h *TestHelper) CreateTestMeeting(b *models.Building, organizer *models.User, date time.Time, attendance float64, cancelled bool) *models.Meeting {
	m := &models.Meeting{
		ID:             uuid.New(),
		BuildingID:     b.ID,
		OrganizedByID:  organizer.ID,
		Title:          "Meeting " + date.Format("2006-01-02"),
		MeetingDate:    date,
		IsCancelled:    cancelled,
		AttendanceRate: attendance,
		CreatedAt:      date.AddDate(0, 0, -14),
	}
	require.NoError(h.T, h.Store.Meetings().Create(h.Ctx, m))
	return m
}

func (h *TestHelper) CreateTestSurvey(b *models.Building, creator *models.User, questions, results string, totalResponses int, createdAt time.Time) *models.Survey {
	s := &models.Survey{
		ID:             uuid.New(),
		BuildingID:     b.ID,
		CreatedByID:    creator.ID,
		Title:          "Survey " + createdAt.Format("2006-01-02"),
		Questions:      questions,
		Results:        results,
		TotalResponses: totalResponses,
		StartDate:      createdAt,
		EndDate:        createdAt.AddDate(0, 1, 0),
		IsActive:       true,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}
	require.NoError(h.T, h.Store.Surveys().Create(h.Ctx, s))
	return s
}

func (h *TestHelper) CreateTestNotification(creator *models.User, b *models.Building, title string, createdAt time.Time) *models.Notification {
	n := &models.Notification{
		ID:          uuid.New(),
		CreatedByID: creator.ID,
		BuildingID:  &b.ID,
		Title:       title,
		Message:     title,
		Type:        models.NotificationTypeGeneral,
		CreatedAt:   createdAt,
	}
	require.NoError(h.T, h.Store.Notifications().Create(h.Ctx, n))
	return n
}
