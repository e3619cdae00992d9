package services

import (
	"errors"
	"net/http"
	"testing"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-testhelpers"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/stretchr/testify/require"
)

func intPtr(n int) *int       { return &n }
func int64Ptr(n int64) *int64 { return &n }

func requireAppError(t *testing.T, err error, status int, code string) {
	t.Helper()
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	require.Equal(t, status, appErr.StatusCode)
	require.Equal(t, code, appErr.Code)
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	requireAppError(t, err, http.StatusNotFound, utils.ErrCodeNotFound)
}

func newPaymentStats(h *testhelpers.TestHelper) *PaymentStatsService {
	svc := NewPaymentStatsService(h.Store.Buildings(), h.Store.Payments())
	svc.now = h.Now
	return svc
}

func newMeetingStats(h *testhelpers.TestHelper, scoped bool) *MeetingStatsService {
	svc := NewMeetingStatsService(h.Store.Buildings(), h.Store.Meetings(), scoped)
	svc.now = h.Now
	return svc
}

func newSurveyStats(h *testhelpers.TestHelper) *SurveyStatsService {
	svc := NewSurveyStatsService(h.Store.Surveys())
	svc.now = h.Now
	return svc
}
