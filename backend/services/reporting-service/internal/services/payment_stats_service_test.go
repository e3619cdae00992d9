package services

import (
	"errors"
	"testing"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedPaymentScenario builds two buildings where only the first has
// payments: three paid on time, one paid four days late with a 50 penalty
// and one unpaid past its due date.
func seedPaymentScenario(h *testhelpers.TestHelper) *models.User {
	admin := h.CreateTestAdmin("Ayşe", "Demir")
	b1 := h.CreateTestBuilding(admin.ID, "Güneş", 5)
	apts := h.CreateTestApartments(b1, 5, 5, 1000)
	h.CreateTestApartments(h.CreateTestBuilding(admin.ID, "Deniz", 2), 2, 0, 800)

	tenant := h.CreateTestTenant("Ali", "Yılmaz", testhelpers.DaysAgo(200))
	h.CreateTestPayment(tenant, apts[0], testhelpers.PaymentSpec{Type: "Rent", Amount: 1000, DueDaysAgo: 40, PaidDaysAgo: intPtr(41)})
	h.CreateTestPayment(tenant, apts[0], testhelpers.PaymentSpec{Type: "Rent", Amount: 1000, DueDaysAgo: 70, PaidDaysAgo: intPtr(70)})
	h.CreateTestPayment(tenant, apts[0], testhelpers.PaymentSpec{Type: "dues", Amount: 200, DueDaysAgo: 40, PaidDaysAgo: intPtr(45)})
	h.CreateTestPayment(tenant, apts[0], testhelpers.PaymentSpec{
		Type: "rent", Amount: 1000, DueDaysAgo: 10, PaidDaysAgo: intPtr(6), Penalty: int64Ptr(50), DelayedDays: intPtr(4),
	})
	h.CreateTestPayment(tenant, apts[0], testhelpers.PaymentSpec{Type: "DUES", Amount: 300, DueDaysAgo: 5})
	return admin
}

func TestGetPaymentStatistics(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	admin := seedPaymentScenario(h)

	stats, err := newPaymentStats(h).GetPaymentStatistics(h.Ctx, admin.ID)
	require.NoError(t, err)

	assert.Equal(t, 5, stats.TotalPaymentCount)
	assert.Equal(t, 4, stats.PaidPaymentCount)
	assert.Equal(t, 1, stats.UnpaidPaymentCount)
	assert.Equal(t, 0, stats.PendingPaymentCount)
	assert.Equal(t, 1, stats.OverduePaymentCount)
	assert.Equal(t, 3, stats.OnTimePaymentCount)

	assert.Equal(t, 1, stats.TotalDelayedPayments)
	assert.Equal(t, 4, stats.TotalDelayedDays)
	assert.Equal(t, 4.0, stats.AverageDelayDays)
	assert.Equal(t, 50.0, stats.TotalPenaltyAmount)
	// 2024-06-05 -> 2024-06-09 spans Thursday to Sunday.
	assert.Equal(t, 2, stats.TotalDelayedBusinessDays)

	assert.Equal(t, 60.0, stats.OnTimePaymentRate)
	assert.Equal(t, 20.0, stats.DelayedPaymentRate)
	assert.Equal(t, 20.0, stats.UnpaidPaymentRate)

	assert.Equal(t, 3200.0, stats.TotalPaidAmount)
	assert.Equal(t, 300.0, stats.TotalUnpaidAmount)
	assert.Equal(t, 3000.0, stats.TotalRentAmount)
	assert.Equal(t, 500.0, stats.TotalDuesAmount)
	assert.Equal(t, 0.0, stats.UnpaidRentAmount)
	assert.Equal(t, 300.0, stats.UnpaidDuesAmount)

	assert.Equal(t, stats.PaidPaymentCount, stats.OnTimePaymentCount+stats.TotalDelayedPayments)
	assert.Equal(t, stats.TotalPaymentCount, stats.PaidPaymentCount+stats.UnpaidPaymentCount)
}

func TestGetPaymentStatisticsPendingAndEmpty(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	admin := h.CreateTestAdmin("Ayşe", "Demir")
	svc := newPaymentStats(h)

	stats, err := svc.GetPaymentStatistics(h.Ctx, admin.ID)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalPaymentCount)
	assert.Zero(t, stats.OnTimePaymentRate)
	assert.Zero(t, stats.AverageDelayDays)

	apts := h.CreateTestApartments(h.CreateTestBuilding(admin.ID, "Güneş", 1), 1, 1, 1000)
	tenant := h.CreateTestTenant("Ali", "Yılmaz", testhelpers.DaysAgo(10))
	h.CreateTestPayment(tenant, apts[0], testhelpers.PaymentSpec{Amount: 1000, DueDaysAgo: -3})

	stats, err = svc.GetPaymentStatistics(h.Ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.PendingPaymentCount)
	assert.Zero(t, stats.OverduePaymentCount)
	assert.Equal(t, 100.0, stats.UnpaidPaymentRate)
}

func TestGetPaymentStatisticsPropagatesStoreErrors(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	admin := seedPaymentScenario(h)
	boom := errors.New("connection reset")
	h.Store.FailOn(testhelpers.OpPaymentsList, boom)

	stats, err := newPaymentStats(h).GetPaymentStatistics(h.Ctx, admin.ID)
	require.ErrorIs(t, err, boom)
	assert.Nil(t, stats)
}

func TestGetTopDefaulters(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	admin := h.CreateTestAdmin("Ayşe", "Demir")
	apts := h.CreateTestApartments(h.CreateTestBuilding(admin.ID, "Güneş", 3), 3, 3, 1000)
	ali := h.CreateTestTenant("Ali", "Yılmaz", testhelpers.DaysAgo(100))
	zeynep := h.CreateTestTenant("Zeynep", "Kara", testhelpers.DaysAgo(100))
	can := h.CreateTestTenant("Can", "Öz", testhelpers.DaysAgo(100))

	h.CreateTestPayment(ali, apts[0], testhelpers.PaymentSpec{Amount: 500, DueDaysAgo: 20})
	h.CreateTestPayment(ali, apts[0], testhelpers.PaymentSpec{Amount: 300, DueDaysAgo: -5})
	h.CreateTestPayment(zeynep, apts[1], testhelpers.PaymentSpec{Amount: 1000, DueDaysAgo: 3, DelayedDays: intPtr(7)})
	h.CreateTestPayment(can, apts[2], testhelpers.PaymentSpec{Amount: 5000, DueDaysAgo: 30, PaidDaysAgo: intPtr(2)})

	list, err := newPaymentStats(h).GetTopDefaulters(h.Ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "Zeynep Kara", list[0].FullName)
	assert.Equal(t, 1000.0, list[0].TotalDebt)
	assert.Equal(t, 7, list[0].TotalDelayedDays)

	assert.Equal(t, "Ali Yılmaz", list[1].FullName)
	assert.Equal(t, 800.0, list[1].TotalDebt)
	assert.Equal(t, 2, list[1].UnpaidPaymentCount)
	assert.Equal(t, 20, list[1].TotalDelayedDays)
}

func TestGetTopDebtorsAndPayers(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	admin := h.CreateTestAdmin("Ayşe", "Demir")
	apts := h.CreateTestApartments(h.CreateTestBuilding(admin.ID, "Güneş", 4), 4, 4, 1000)
	tenants := []*models.User{
		h.CreateTestTenant("Ali", "Yılmaz", testhelpers.DaysAgo(100)),
		h.CreateTestTenant("Zeynep", "Kara", testhelpers.DaysAgo(100)),
		h.CreateTestTenant("Can", "Öz", testhelpers.DaysAgo(100)),
		h.CreateTestTenant("Elif", "Şahin", testhelpers.DaysAgo(100)),
	}
	for i, u := range tenants {
		amount := int64(1000 * (i + 1))
		h.CreateTestPayment(u, apts[i], testhelpers.PaymentSpec{Amount: amount, DueDaysAgo: 40, PaidDaysAgo: intPtr(40)})
		h.CreateTestPayment(u, apts[i], testhelpers.PaymentSpec{Amount: amount, DueDaysAgo: 20, PaidDaysAgo: intPtr(15)})
		h.CreateTestPayment(u, apts[i], testhelpers.PaymentSpec{Amount: 100 * int64(4-i), DueDaysAgo: 5})
	}
	svc := newPaymentStats(h)

	rankings, err := svc.GetTopDebtorsAndPayers(h.Ctx, admin.ID, 2)
	require.NoError(t, err)
	require.Len(t, rankings.TopDebtors, 2)
	require.Len(t, rankings.TopPayers, 2)
	assert.Equal(t, "Ali Yılmaz", rankings.TopDebtors[0].FullName)
	assert.Equal(t, 400.0, rankings.TopDebtors[0].TotalDebt)
	assert.Equal(t, "Elif Şahin", rankings.TopPayers[0].FullName)
	assert.Equal(t, 8000.0, rankings.TopPayers[0].TotalPaid)
	// Two paid (one on time, one late) and one still open.
	assert.Equal(t, 3, rankings.TopPayers[0].PaymentCount)
	assert.Equal(t, 1, rankings.TopPayers[0].OnTimePaymentCount)
	assert.Equal(t, 33.33, rankings.TopPayers[0].OnTimePaymentRate)

	rankings, err = svc.GetTopDebtorsAndPayers(h.Ctx, admin.ID, 10)
	require.NoError(t, err)
	require.Len(t, rankings.TopDebtors, 4)
	require.Len(t, rankings.TopPayers, 4)
	for i := 1; i < len(rankings.TopDebtors); i++ {
		assert.Greater(t, rankings.TopDebtors[i-1].TotalDebt, rankings.TopDebtors[i].TotalDebt)
		assert.Greater(t, rankings.TopPayers[i-1].TotalPaid, rankings.TopPayers[i].TotalPaid)
	}
}

func TestNormalizeTopN(t *testing.T) {
	assert.Equal(t, 5, NormalizeTopN(0))
	assert.Equal(t, 5, NormalizeTopN(-3))
	assert.Equal(t, 7, NormalizeTopN(7))
	assert.Equal(t, 50, NormalizeTopN(500))
}

func TestGetMonthlyCollectionRates(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	admin := h.CreateTestAdmin("Ayşe", "Demir")
	apts := h.CreateTestApartments(h.CreateTestBuilding(admin.ID, "Güneş", 1), 1, 1, 1000)
	tenant := h.CreateTestTenant("Ali", "Yılmaz", testhelpers.DaysAgo(200))

	// April 6, May 6 (twice), June 10 relative to 2024-06-15.
	h.CreateTestPayment(tenant, apts[0], testhelpers.PaymentSpec{Amount: 1000, DueDaysAgo: 70, PaidDaysAgo: intPtr(70)})
	h.CreateTestPayment(tenant, apts[0], testhelpers.PaymentSpec{Amount: 1000, DueDaysAgo: 40, PaidDaysAgo: intPtr(38)})
	h.CreateTestPayment(tenant, apts[0], testhelpers.PaymentSpec{Amount: 250, DueDaysAgo: 40})
	h.CreateTestPayment(tenant, apts[0], testhelpers.PaymentSpec{Amount: 1000, DueDaysAgo: 5})

	rows, err := newPaymentStats(h).GetMonthlyCollectionRates(h.Ctx, admin.ID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []int{6, 5, 4}, []int{rows[0].Month, rows[1].Month, rows[2].Month})
	for _, r := range rows {
		assert.Equal(t, 2024, r.Year)
	}
	assert.Equal(t, 0.0, rows[0].CollectionRate)
	assert.Equal(t, 2, rows[1].TotalCount)
	assert.Equal(t, 1, rows[1].PaidCount)
	assert.Equal(t, 1250.0, rows[1].TotalAmount)
	assert.Equal(t, 1000.0, rows[1].CollectedAmount)
	assert.Equal(t, 50.0, rows[1].CollectionRate)
	assert.Equal(t, 100.0, rows[2].CollectionRate)
}
