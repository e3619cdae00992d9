package services

import (
	"errors"
	"testing"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-repositories"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-testhelpers"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetComplaintAnalytics(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	admin := h.CreateTestAdmin("Ayşe", "Demir")
	b1 := h.CreateTestBuilding(admin.ID, "Güneş", 10)
	b2 := h.CreateTestBuilding(admin.ID, "Deniz", 6)
	tenant := h.CreateTestTenant("Ali", "Yılmaz", testhelpers.DaysAgo(100))

	created := testhelpers.DaysAgo(10)
	after48h := created.Add(48 * time.Hour)
	after24h := created.Add(24 * time.Hour)
	h.CreateTestComplaint(b1, tenant, models.ComplaintStatusOpen, created, nil)
	h.CreateTestComplaint(b1, tenant, models.ComplaintStatusInProgress, created, nil)
	h.CreateTestComplaint(b1, tenant, models.ComplaintStatusResolved, created, &after48h)
	h.CreateTestComplaint(b2, tenant, models.ComplaintStatusResolved, created, &after24h)
	h.CreateTestComplaint(b2, tenant, models.ComplaintStatusResolved, created, nil)
	h.CreateTestComplaint(b2, tenant, models.ComplaintStatusRejected, created, nil)
	h.CreateTestComplaint(b2, tenant, models.ComplaintStatusClosed, created, nil)

	svc := NewComplaintAnalyticsService(h.Store.Buildings(), h.Store.Complaints())
	a, err := svc.GetComplaintAnalytics(h.Ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, a.Total)
	assert.Equal(t, 1, a.Open)
	assert.Equal(t, 1, a.InProgress)
	assert.Equal(t, 3, a.Resolved)
	assert.Equal(t, 1, a.Rejected)
	assert.Equal(t, 1, a.Closed)
	assert.Equal(t, 36.0, a.AverageResolutionHours)

	a, err = svc.GetBuildingComplaintAnalytics(h.Ctx, b1.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, a.Total)
	assert.Equal(t, 48.0, a.AverageResolutionHours)

	_, err = svc.GetBuildingComplaintAnalytics(h.Ctx, uuid.New())
	requireNotFound(t, err)
}

func TestAverageResolutionIsZeroWithoutResolvedTimestamps(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	admin := h.CreateTestAdmin("Ayşe", "Demir")
	b := h.CreateTestBuilding(admin.ID, "Güneş", 10)
	tenant := h.CreateTestTenant("Ali", "Yılmaz", testhelpers.DaysAgo(100))
	h.CreateTestComplaint(b, tenant, models.ComplaintStatusOpen, testhelpers.DaysAgo(3), nil)
	h.CreateTestComplaint(b, tenant, models.ComplaintStatusResolved, testhelpers.DaysAgo(3), nil)

	svc := NewComplaintAnalyticsService(h.Store.Buildings(), h.Store.Complaints())
	a, err := svc.GetComplaintAnalytics(h.Ctx, admin.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, a.Total)
	assert.Zero(t, a.AverageResolutionHours)
}

func TestComplaintDetailDisplayNameFallback(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	admin := h.CreateTestAdmin("Ayşe", "Demir")
	b := h.CreateTestBuilding(admin.ID, "Güneş", 10)
	tenant := h.CreateTestTenant("Ali", "Yılmaz", testhelpers.DaysAgo(100))

	live := h.CreateTestComplaint(b, tenant, models.ComplaintStatusOpen, testhelpers.DaysAgo(3), nil)

	snapshot := "Eski Kiracı"
	withSnapshot := &models.Complaint{
		ID: uuid.New(), BuildingID: b.ID, UserID: uuid.New(), Title: "Gürültü",
		SubmitterName: &snapshot, CreatedAt: testhelpers.DaysAgo(2),
	}
	require.NoError(t, h.Store.Complaints().Create(h.Ctx, withSnapshot))
	orphan := &models.Complaint{
		ID: uuid.New(), BuildingID: b.ID, UserID: uuid.New(), Title: "Asansör",
		CreatedAt: testhelpers.DaysAgo(1),
	}
	require.NoError(t, h.Store.Complaints().Create(h.Ctx, orphan))

	svc := NewComplaintAnalyticsService(h.Store.Buildings(), h.Store.Complaints())

	d, err := svc.GetComplaintDetail(h.Ctx, live.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ali Yılmaz", d.SubmitterName)
	assert.Equal(t, "Güneş", d.BuildingName)

	d, err = svc.GetComplaintDetail(h.Ctx, withSnapshot.ID)
	require.NoError(t, err)
	assert.Equal(t, "Eski Kiracı", d.SubmitterName)

	d, err = svc.GetComplaintDetail(h.Ctx, orphan.ID)
	require.NoError(t, err)
	assert.Equal(t, utils.UnknownUserName, d.SubmitterName)

	_, err = svc.GetComplaintDetail(h.Ctx, uuid.New())
	requireNotFound(t, err)
}

func TestListComplaintDetails(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	admin := h.CreateTestAdmin("Ayşe", "Demir")
	b := h.CreateTestBuilding(admin.ID, "Güneş", 10)
	tenant := h.CreateTestTenant("Ali", "Yılmaz", testhelpers.DaysAgo(100))
	for i := 1; i <= 5; i++ {
		h.CreateTestComplaint(b, tenant, models.ComplaintStatusOpen, testhelpers.DaysAgo(i), nil)
	}
	svc := NewComplaintAnalyticsService(h.Store.Buildings(), h.Store.Complaints())

	page, err := svc.ListComplaintDetails(h.Ctx, b.ID, repositories.ListOptions{Limit: 2, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Limit)
	assert.True(t, page.Items[0].CreatedAt.Equal(testhelpers.DaysAgo(2)))
	assert.True(t, page.Items[1].CreatedAt.Equal(testhelpers.DaysAgo(3)))

	page, err = svc.ListComplaintDetails(h.Ctx, b.ID, repositories.ListOptions{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, 20, page.Limit)
}

func TestComplaintDetailPropagatesStoreErrors(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	boom := errors.New("timeout")
	h.Store.FailOn(testhelpers.OpComplaintsGet, boom)

	svc := NewComplaintAnalyticsService(h.Store.Buildings(), h.Store.Complaints())
	_, err := svc.GetComplaintDetail(h.Ctx, uuid.New())
	require.ErrorIs(t, err, boom)
}
