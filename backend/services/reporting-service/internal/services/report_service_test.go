package services

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-testhelpers"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func newReportService(h *testhelpers.TestHelper, sectionTimeout time.Duration) *ReportService {
	st := h.Store
	svc := NewReportService(
		ReportRepositories{
			Buildings:     st.Buildings(),
			Apartments:    st.Apartments(),
			Payments:      st.Payments(),
			Complaints:    st.Complaints(),
			Meetings:      st.Meetings(),
			Surveys:       st.Surveys(),
			Contracts:     st.Contracts(),
			Notifications: st.Notifications(),
		},
		newPaymentStats(h),
		NewComplaintAnalyticsService(st.Buildings(), st.Complaints()),
		newMeetingStats(h, true),
		sectionTimeout,
	)
	svc.now = h.Now
	return svc
}

type reportFixture struct {
	admin  *models.User
	gunes  *models.Building
	deniz  *models.Building
	recent *models.User
}

func seedReportFixture(h *testhelpers.TestHelper) reportFixture {
	admin := h.CreateTestAdmin("Ayşe", "Demir")
	owner := h.CreateTestOwner("Hasan", "Çelik")
	gunes := h.CreateTestBuilding(admin.ID, "Güneş", 10)
	gunesApts := h.CreateTestApartments(gunes, 10, 7, 5000)
	deniz := h.CreateTestBuilding(admin.ID, "Deniz", 4)
	denizApts := h.CreateTestApartments(deniz, 4, 2, 8000)

	var tenants []*models.User
	for i := 0; i < 12; i++ {
		u := h.CreateTestTenant(fmt.Sprintf("Kiracı%02d", i), "Test", testhelpers.DaysAgo(i+1))
		tenants = append(tenants, u)
		end := testhelpers.DaysAhead(200)
		switch i {
		case 0:
			end = testhelpers.DaysAhead(10)
		case 1:
			end = testhelpers.DaysAhead(5)
		}
		h.CreateTestContract(u, owner, gunesApts[i%7], testhelpers.DaysAgo(300), end, true)
	}
	// A second, expired lease for the newest tenant must not duplicate them
	// nor show up as expiring.
	h.CreateTestContract(tenants[0], owner, gunesApts[6], testhelpers.DaysAgo(700), testhelpers.DaysAhead(3), false)

	denizTenant := h.CreateTestTenant("Deniz", "Kiracı", testhelpers.DaysAgo(400))
	h.CreateTestContract(denizTenant, owner, denizApts[0], testhelpers.DaysAgo(400), testhelpers.DaysAhead(300), true)

	h.CreateTestPayment(tenants[0], gunesApts[0], testhelpers.PaymentSpec{Amount: 5000, DueDaysAgo: 10, PaidDaysAgo: intPtr(10)})
	h.CreateTestPayment(tenants[0], gunesApts[0], testhelpers.PaymentSpec{Amount: 5000, DueDaysAgo: 40})
	h.CreateTestPayment(denizTenant, denizApts[0], testhelpers.PaymentSpec{Amount: 8000, DueDaysAgo: 20, PaidDaysAgo: intPtr(19)})

	for i := 0; i < 12; i++ {
		h.CreateTestComplaint(gunes, tenants[i], models.ComplaintStatusOpen, testhelpers.DaysAgo(i+1), nil)
	}
	for i := 0; i < 3; i++ {
		h.CreateTestSurvey(deniz, admin, testQuestions, `{}`, 0, testhelpers.DaysAgo(i*7))
	}
	h.CreateTestMeeting(gunes, admin, testhelpers.DaysAgo(3), 75, false)
	h.CreateTestMeeting(deniz, admin, testhelpers.DaysAhead(3), 0, false)
	h.CreateTestNotification(admin, gunes, "Su kesintisi", testhelpers.DaysAgo(1))
	h.CreateTestNotification(admin, deniz, "Aidat hatırlatma", testhelpers.DaysAgo(2))

	other := h.CreateTestAdmin("Mehmet", "Kaya")
	h.CreateTestNotification(other, h.CreateTestBuilding(other.ID, "Yabancı", 2), "Başka", testhelpers.DaysAgo(1))

	return reportFixture{admin: admin, gunes: gunes, deniz: deniz, recent: tenants[0]}
}

func TestGetAdminReport(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	f := seedReportFixture(h)

	report, err := newReportService(h, time.Second).GetAdminReport(h.Ctx, f.admin.ID, nil, language.Turkish)
	require.NoError(t, err)
	assert.Equal(t, f.admin.ID.String(), report.AdminID)
	assert.Nil(t, report.BuildingID)

	summary := report.BuildingSummary
	require.Len(t, summary.Buildings, 2)
	for _, b := range summary.Buildings {
		if b.BuildingName == "Güneş" {
			assert.Equal(t, 70.0, b.OccupancyRate)
			assert.Equal(t, 12, b.TenantCount)
			assert.Equal(t, 12, b.ComplaintCount)
			assert.Equal(t, 2, b.PaymentCount)
			assert.Equal(t, 5000.0, b.TotalIncome)
		}
	}
	require.NotNil(t, summary.HighestIncomeBuilding)
	assert.Equal(t, "Deniz", summary.HighestIncomeBuilding.BuildingName)
	require.NotNil(t, summary.HighestAverageRentBuilding)
	assert.Equal(t, 8000.0, summary.HighestAverageRentBuilding.Value)

	assert.Len(t, report.RecentSurveys, 3)
	assert.Len(t, report.RecentComplaints, 10)
	assert.Equal(t, "Güneş", report.RecentComplaints[0].BuildingName)
	assert.Len(t, report.RecentMeetings, 2)
	assert.Len(t, report.RecentNotifications, 2)

	require.Len(t, report.RecentTenants, 10)
	assert.Equal(t, f.recent.ID.String(), report.RecentTenants[0].UserID)
	seen := map[string]bool{}
	for _, tn := range report.RecentTenants {
		assert.False(t, seen[tn.UserID], "tenant %s listed twice", tn.UserID)
		seen[tn.UserID] = true
	}

	require.Len(t, report.ExpiringContracts, 2)
	assert.Equal(t, "Kiracı01 Test", report.ExpiringContracts[0].TenantName)
	assert.Equal(t, 5, report.ExpiringContracts[0].DaysRemaining)
	assert.Equal(t, "Kiracı00 Test", report.ExpiringContracts[1].TenantName)

	fin := report.FinancialSummary
	require.Len(t, fin.Months, 6)
	assert.Equal(t, "Ocak 2024", fin.Months[0].Label)
	assert.Equal(t, "Haziran 2024", fin.Months[5].Label)
	assert.Equal(t, 5000.0, fin.Months[5].ExpectedAmount)
	assert.Equal(t, 13000.0, fin.Months[4].ExpectedAmount)
	assert.Equal(t, 8000.0, fin.Months[4].CollectedAmount)
	require.Len(t, fin.Buildings, 2)
	assert.Equal(t, "Deniz", fin.Buildings[0].BuildingName)
	assert.Equal(t, 100, fin.Buildings[0].CollectionRate)
	assert.Equal(t, 50, fin.Buildings[1].CollectionRate)
	assert.Equal(t, 18000.0, fin.TotalExpected)

	assert.Equal(t, 3, report.PaymentStatistics.TotalPaymentCount)
	assert.Equal(t, 12, report.ComplaintAnalytics.Open)
	assert.Equal(t, 2, report.MeetingStatistics.Total)
}

func TestGetAdminReportIsolatesFailedSection(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	f := seedReportFixture(h)
	h.Store.FailOn(testhelpers.OpSurveysList, errors.New("relation \"surveys\" does not exist"))

	report, err := newReportService(h, time.Second).GetAdminReport(h.Ctx, f.admin.ID, nil, language.Turkish)
	require.NoError(t, err)
	require.NotNil(t, report.RecentSurveys)
	assert.Empty(t, report.RecentSurveys)

	assert.Len(t, report.BuildingSummary.Buildings, 2)
	assert.Len(t, report.RecentComplaints, 10)
	assert.Len(t, report.RecentTenants, 10)
	assert.Len(t, report.ExpiringContracts, 2)
	assert.Len(t, report.RecentNotifications, 2)
	assert.Len(t, report.RecentMeetings, 2)
	assert.Len(t, report.FinancialSummary.Months, 6)
	assert.Equal(t, 3, report.PaymentStatistics.TotalPaymentCount)
}

func TestGetAdminReportBoundsSlowSections(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	f := seedReportFixture(h)
	h.Store.DelayOn(testhelpers.OpNotificationsByCreator, 5*time.Second)

	start := time.Now()
	report, err := newReportService(h, 50*time.Millisecond).GetAdminReport(h.Ctx, f.admin.ID, nil, language.English)
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 3*time.Second)

	assert.Empty(t, report.RecentNotifications)
	assert.Len(t, report.RecentMeetings, 2)
	assert.Equal(t, "June 2024", report.FinancialSummary.Months[5].Label)
}

func TestGetAdminReportBuildingFilter(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	f := seedReportFixture(h)
	svc := newReportService(h, time.Second)

	report, err := svc.GetAdminReport(h.Ctx, f.admin.ID, &f.deniz.ID, language.Turkish)
	require.NoError(t, err)
	require.NotNil(t, report.BuildingID)
	require.Len(t, report.BuildingSummary.Buildings, 1)
	assert.Equal(t, "Deniz", report.BuildingSummary.Buildings[0].BuildingName)
	assert.Len(t, report.RecentSurveys, 3)
	assert.Empty(t, report.RecentComplaints)
	assert.Len(t, report.RecentTenants, 1)
	assert.Equal(t, 1, report.PaymentStatistics.TotalPaymentCount)
	// Notifications follow the author, not the building filter.
	assert.Len(t, report.RecentNotifications, 2)

	foreign := uuid.New()
	_, err = svc.GetAdminReport(h.Ctx, f.admin.ID, &foreign, language.Turkish)
	requireNotFound(t, err)
}

func TestGetAdminReportAdminWithoutBuildings(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	admin := h.CreateTestAdmin("Yeni", "Yönetici")

	report, err := newReportService(h, time.Second).GetAdminReport(h.Ctx, admin.ID, nil, language.Turkish)
	require.NoError(t, err)
	assert.Empty(t, report.BuildingSummary.Buildings)
	assert.Nil(t, report.BuildingSummary.HighestIncomeBuilding)
	assert.Empty(t, report.RecentTenants)
	assert.Len(t, report.FinancialSummary.Months, 6)
	assert.Zero(t, report.PaymentStatistics.TotalPaymentCount)
}

func TestGetAdminReportFailsWhenBuildingsCannotBeResolved(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	f := seedReportFixture(h)
	boom := errors.New("pool closed")
	h.Store.FailOn(testhelpers.OpBuildingsListByAdmin, boom)

	_, err := newReportService(h, time.Second).GetAdminReport(h.Ctx, f.admin.ID, nil, language.Turkish)
	require.ErrorIs(t, err, boom)
}
