package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/routes"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/services"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-testhelpers"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const surveyQuestions = `[
	{"id": "q1", "text": "Asansör yeterli mi?", "options": ["Evet", "Hayır"]},
	{"id": "q2", "text": "Aidat uygun mu?"}
]`

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

func newTestRouter(h *testhelpers.TestHelper) *mux.Router {
	s := h.Store
	occupancy := services.NewOccupancyService(s.Buildings(), s.Apartments())
	payments := services.NewPaymentStatsService(s.Buildings(), s.Payments())
	complaints := services.NewComplaintAnalyticsService(s.Buildings(), s.Complaints())
	meetings := services.NewMeetingStatsService(s.Buildings(), s.Meetings(), true)
	surveys := services.NewSurveyStatsService(s.Surveys())
	reports := services.NewReportService(services.ReportRepositories{
		Buildings:     s.Buildings(),
		Apartments:    s.Apartments(),
		Payments:      s.Payments(),
		Complaints:    s.Complaints(),
		Meetings:      s.Meetings(),
		Surveys:       s.Surveys(),
		Contracts:     s.Contracts(),
		Notifications: s.Notifications(),
	}, payments, complaints, meetings, time.Second)

	reportCtrl := NewReportController(reports)
	statsCtrl := NewStatisticsController(occupancy, payments, meetings)
	complaintCtrl := NewComplaintController(complaints)
	surveyCtrl := NewSurveyController(surveys)

	r := mux.NewRouter()
	r.HandleFunc(routes.AdminOverview, reportCtrl.GetAdminOverviewHandler).Methods(http.MethodGet)
	r.HandleFunc(routes.AdminOccupancy, statsCtrl.GetAdminOccupancyHandler).Methods(http.MethodGet)
	r.HandleFunc(routes.BuildingOccupancy, statsCtrl.GetBuildingOccupancyHandler).Methods(http.MethodGet)
	r.HandleFunc(routes.AdminPayments, statsCtrl.GetPaymentStatisticsHandler).Methods(http.MethodGet)
	r.HandleFunc(routes.AdminPaymentRankings, statsCtrl.GetPaymentRankingsHandler).Methods(http.MethodGet)
	r.HandleFunc(routes.AdminMeetings, statsCtrl.GetMeetingStatisticsHandler).Methods(http.MethodGet)
	r.HandleFunc(routes.BuildingComplaintList, complaintCtrl.ListComplaintDetailsHandler).Methods(http.MethodGet)
	r.HandleFunc(routes.ComplaintDetail, complaintCtrl.GetComplaintDetailHandler).Methods(http.MethodGet)
	r.HandleFunc(routes.SurveyStatistics, surveyCtrl.GetSurveyStatisticsHandler).Methods(http.MethodGet)
	r.HandleFunc(routes.SurveyResponses, surveyCtrl.SubmitSurveyResponseHandler).Methods(http.MethodPost)
	return r
}

func do(t *testing.T, r http.Handler, method, target, body string, header map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details []struct {
		Field string `json:"field"`
		Code  string `json:"code"`
	} `json:"details"`
}

func requireError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) errorBody {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	body := decode[errorBody](t, rec)
	require.Equal(t, code, body.Code)
	return body
}

func TestHealthCheckHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHealthController(fakePinger{}).HealthCheckHandler(rec, httptest.NewRequest(http.MethodGet, routes.Health, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"OK","db":"OK"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	NewHealthController(fakePinger{err: errors.New("connection refused")}).HealthCheckHandler(rec, httptest.NewRequest(http.MethodGet, routes.Health, nil))
	requireError(t, rec, http.StatusServiceUnavailable, utils.ErrCodeInternal)
}

func TestAdminOccupancyHandler(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	admin := h.CreateTestAdmin("Ayşe", "Demir")
	h.CreateTestApartments(h.CreateTestBuilding(admin.ID, "Güneş", 4), 4, 3, 5000)
	r := newTestRouter(h)

	rec := do(t, r, http.MethodGet, "/api/v1/reports/admins/"+admin.ID.String()+"/occupancy", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string]any](t, rec)
	assert.EqualValues(t, 4, body["total_units"])
	assert.EqualValues(t, 3, body["occupied_units"])
	assert.EqualValues(t, 75, body["percentage"])

	rec = do(t, r, http.MethodGet, "/api/v1/reports/admins/not-a-uuid/occupancy", "", nil)
	requireError(t, rec, http.StatusBadRequest, utils.ErrCodeInvalidPayload)

	rec = do(t, r, http.MethodGet, "/api/v1/reports/buildings/"+uuid.NewString()+"/occupancy", "", nil)
	requireError(t, rec, http.StatusNotFound, utils.ErrCodeNotFound)
}

func TestPaymentRankingsHandlerValidatesTop(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	admin := h.CreateTestAdmin("Ayşe", "Demir")
	h.CreateTestBuilding(admin.ID, "Güneş", 4)
	r := newTestRouter(h)
	base := "/api/v1/reports/admins/" + admin.ID.String() + "/payments/rankings"

	rec := do(t, r, http.MethodGet, base+"?top=abc", "", nil)
	requireError(t, rec, http.StatusBadRequest, utils.ErrCodeInvalidPayload)

	rec = do(t, r, http.MethodGet, base+"?top=99", "", nil)
	body := requireError(t, rec, http.StatusBadRequest, utils.ErrCodeValidation)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "Top", body.Details[0].Field)
	assert.Equal(t, "validation_lte", body.Details[0].Code)

	rec = do(t, r, http.MethodGet, base+"?top=3", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestListComplaintDetailsHandler(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	admin := h.CreateTestAdmin("Ayşe", "Demir")
	tenant := h.CreateTestTenant("Ali", "Yılmaz", testhelpers.DaysAgo(100))
	b := h.CreateTestBuilding(admin.ID, "Güneş", 4)
	for i := 0; i < 3; i++ {
		h.CreateTestComplaint(b, tenant, models.ComplaintStatusOpen, testhelpers.DaysAgo(i+1), nil)
	}
	r := newTestRouter(h)
	base := "/api/v1/reports/buildings/" + b.ID.String() + "/complaints/details"

	rec := do(t, r, http.MethodGet, base+"?limit=2", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	page := decode[struct {
		Items []map[string]any `json:"items"`
		Limit int              `json:"limit"`
	}](t, rec)
	assert.Len(t, page.Items, 2)
	assert.Equal(t, 2, page.Limit)

	rec = do(t, r, http.MethodGet, base+"?limit=500", "", nil)
	body := requireError(t, rec, http.StatusBadRequest, utils.ErrCodeValidation)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "validation_lte", body.Details[0].Code)

	rec = do(t, r, http.MethodGet, base+"?offset=-1", "", nil)
	requireError(t, rec, http.StatusBadRequest, utils.ErrCodeValidation)
}

func TestGetComplaintDetailHandlerNotFound(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	r := newTestRouter(h)

	rec := do(t, r, http.MethodGet, "/api/v1/reports/complaints/"+uuid.NewString(), "", nil)
	requireError(t, rec, http.StatusNotFound, utils.ErrCodeNotFound)
}

func TestSubmitSurveyResponseHandler(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	admin := h.CreateTestAdmin("Ayşe", "Demir")
	b := h.CreateTestBuilding(admin.ID, "Güneş", 4)
	sv := h.CreateTestSurvey(b, admin, surveyQuestions, "", 0, testhelpers.DaysAgo(3))
	r := newTestRouter(h)
	target := "/api/v1/reports/surveys/" + sv.ID.String() + "/responses"

	rec := do(t, r, http.MethodPost, target, `{"answers": {"q1": "Evet", "q2": null}}`, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"survey_id":"`+sv.ID.String()+`","total_responses":1}`, rec.Body.String())

	rec = do(t, r, http.MethodPost, target, `{"answers": {}}`, nil)
	requireError(t, rec, http.StatusBadRequest, utils.ErrCodeValidation)

	rec = do(t, r, http.MethodPost, target, `{"answers": `, nil)
	requireError(t, rec, http.StatusBadRequest, utils.ErrCodeInvalidPayload)

	rec = do(t, r, http.MethodPost, target, `{"answers": {"q9": "Evet"}}`, nil)
	requireError(t, rec, http.StatusBadRequest, utils.ErrCodeSurveyAnswerInvalid)

	rec = do(t, r, http.MethodGet, "/api/v1/reports/surveys/"+sv.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	stats := decode[struct {
		TotalResponses          int                       `json:"total_responses"`
		PerQuestionAnswerCounts map[string]map[string]int `json:"per_question_answer_counts"`
	}](t, rec)
	assert.Equal(t, 1, stats.TotalResponses)
	assert.Equal(t, 1, stats.PerQuestionAnswerCounts["q1"]["Evet"])
	assert.Equal(t, 1, stats.PerQuestionAnswerCounts["q2"]["null"])
}

func TestAdminOverviewHandler(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	admin := h.CreateTestAdmin("Ayşe", "Demir")
	b := h.CreateTestBuilding(admin.ID, "Güneş", 4)
	h.CreateTestApartments(b, 4, 2, 5000)
	other := h.CreateTestAdmin("Mehmet", "Kaya")
	foreign := h.CreateTestBuilding(other.ID, "Yabancı", 2)
	r := newTestRouter(h)
	base := "/api/v1/reports/admins/" + admin.ID.String() + "/overview"

	rec := do(t, r, http.MethodGet, base+"?lang=en", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	report := decode[struct {
		AdminID          string `json:"admin_id"`
		Language         string `json:"language"`
		FinancialSummary struct {
			Months []map[string]any `json:"months"`
		} `json:"financial_summary"`
	}](t, rec)
	assert.Equal(t, admin.ID.String(), report.AdminID)
	assert.Equal(t, "en", report.Language)
	assert.Len(t, report.FinancialSummary.Months, 6)

	rec = do(t, r, http.MethodGet, base, "", map[string]string{"Accept-Language": "tr-TR,tr;q=0.9"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "tr", decode[map[string]any](t, rec)["language"])

	rec = do(t, r, http.MethodGet, base+"?building_id=nope", "", nil)
	body := requireError(t, rec, http.StatusBadRequest, utils.ErrCodeValidation)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "validation_uuid", body.Details[0].Code)

	rec = do(t, r, http.MethodGet, base+"?building_id="+foreign.ID.String(), "", nil)
	requireError(t, rec, http.StatusNotFound, utils.ErrCodeNotFound)
}
