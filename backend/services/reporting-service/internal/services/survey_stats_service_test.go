package services

import (
	"net/http"
	"sync"
	"testing"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-testhelpers"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testQuestions = `[
	{"id": "q1", "text": "Asansör yeterli mi?", "options": ["Evet", "Hayır"]},
	{"text": "Aidat uygun mu?"}
]`

func createSurvey(h *testhelpers.TestHelper, results string, total int) *models.Survey {
	admin := h.CreateTestAdmin("Ayşe", "Demir")
	b := h.CreateTestBuilding(admin.ID, "Güneş", 10)
	return h.CreateTestSurvey(b, admin, testQuestions, results, total, testhelpers.DaysAgo(20))
}

func strPtr(s string) *string { return &s }

func TestGetSurveyStatisticsFromLegacyBlob(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	sv := createSurvey(h, `{"q1": {"Evet": 3, "Hayır": 1}, "q2": {"Evet": 2}}`, 4)

	stats, err := newSurveyStats(h).GetSurveyStatistics(h.Ctx, sv.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalResponses)
	assert.Equal(t, 0.5, stats.CompletionRate)
	assert.Equal(t, 3, stats.PerQuestionAnswerCounts["q1"]["Evet"])
	require.Len(t, stats.Questions, 2)
	assert.Equal(t, "q2", stats.Questions[1].QuestionID)
	assert.Equal(t, []string{"Asansör yeterli mi?: Evet", "Aidat uygun mu?: Evet"}, stats.PopularAnswers)
}

func TestGetSurveyStatisticsToleratesMalformedBlobs(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	admin := h.CreateTestAdmin("Ayşe", "Demir")
	b := h.CreateTestBuilding(admin.ID, "Güneş", 10)
	sv := h.CreateTestSurvey(b, admin, "not json", "{broken", 3, testhelpers.DaysAgo(5))

	stats, err := newSurveyStats(h).GetSurveyStatistics(h.Ctx, sv.ID)
	require.NoError(t, err)
	assert.Empty(t, stats.Questions)
	assert.Empty(t, stats.PerQuestionAnswerCounts)
	assert.Empty(t, stats.PopularAnswers)
	assert.Zero(t, stats.CompletionRate)
}

func TestGetSurveyStatisticsMissingSurvey(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	_, err := newSurveyStats(h).GetSurveyStatistics(h.Ctx, uuid.New())
	requireNotFound(t, err)
}

func TestSubmitResponseTwiceCountsTwice(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	sv := createSurvey(h, `{}`, 0)
	svc := newSurveyStats(h)

	answers := map[string]*string{"q1": strPtr("Evet"), "q2": nil}
	for i := 0; i < 2; i++ {
		_, err := svc.SubmitResponse(h.Ctx, sv.ID, answers)
		require.NoError(t, err)
	}

	stats, err := svc.GetSurveyStatistics(h.Ctx, sv.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.TotalResponses)
	assert.Equal(t, 2, stats.PerQuestionAnswerCounts["q1"]["Evet"])
	assert.Equal(t, 2, stats.PerQuestionAnswerCounts["q2"]["null"])
	require.NotNil(t, stats.LastResponseDate)
	assert.True(t, stats.LastResponseDate.Equal(testhelpers.FixedNow))
}

func TestSubmitResponseContinuesFromLegacyBlob(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	sv := createSurvey(h, `{"q1": {"Evet": 3, "Hayır": 1}, "q2": {"Uygun": 2}}`, 4)
	svc := newSurveyStats(h)

	for i := 0; i < 2; i++ {
		_, err := svc.SubmitResponse(h.Ctx, sv.ID, map[string]*string{"q1": strPtr("Evet")})
		require.NoError(t, err)
	}

	stats, err := svc.GetSurveyStatistics(h.Ctx, sv.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, stats.TotalResponses)
	assert.Equal(t, 5, stats.PerQuestionAnswerCounts["q1"]["Evet"])
	assert.Equal(t, 1, stats.PerQuestionAnswerCounts["q1"]["Hayır"])
	assert.Equal(t, 2, stats.PerQuestionAnswerCounts["q2"]["Uygun"])

	synced, err := svc.SyncResultSnapshots(h.Ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, synced)

	stored, err := h.Store.Surveys().GetByID(h.Ctx, sv.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"q1": {"Evet": 5, "Hayır": 1}, "q2": {"Uygun": 2}}`, stored.Results)
}

func TestSubmitResponseConcurrentlyLosesNothing(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	sv := createSurvey(h, `{}`, 0)
	svc := newSurveyStats(h)

	const submitters = 25
	var wg sync.WaitGroup
	for i := 0; i < submitters; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.SubmitResponse(h.Ctx, sv.ID, map[string]*string{"q1": strPtr("Hayır")})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stats, err := svc.GetSurveyStatistics(h.Ctx, sv.ID)
	require.NoError(t, err)
	assert.Equal(t, submitters, stats.TotalResponses)
	assert.Equal(t, submitters, stats.PerQuestionAnswerCounts["q1"]["Hayır"])
}

func TestSubmitResponseRejections(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	sv := createSurvey(h, `{}`, 0)
	svc := newSurveyStats(h)

	_, err := svc.SubmitResponse(h.Ctx, sv.ID, map[string]*string{})
	requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeSurveyAnswerInvalid)

	_, err = svc.SubmitResponse(h.Ctx, sv.ID, map[string]*string{"q9": strPtr("Evet")})
	requireAppError(t, err, http.StatusBadRequest, utils.ErrCodeSurveyAnswerInvalid)

	_, err = svc.SubmitResponse(h.Ctx, uuid.New(), map[string]*string{"q1": strPtr("Evet")})
	requireNotFound(t, err)

	admin := h.CreateTestAdmin("Mehmet", "Kaya")
	closed := &models.Survey{
		ID:          uuid.New(),
		BuildingID:  h.CreateTestBuilding(admin.ID, "Deniz", 4).ID,
		CreatedByID: admin.ID,
		Title:       "Kapanmış anket",
		Questions:   testQuestions,
		Results:     `{}`,
		StartDate:   testhelpers.DaysAgo(60),
		EndDate:     testhelpers.DaysAgo(30),
		IsActive:    false,
		CreatedAt:   testhelpers.DaysAgo(60),
	}
	require.NoError(t, h.Store.Surveys().Create(h.Ctx, closed))
	_, err = svc.SubmitResponse(h.Ctx, closed.ID, map[string]*string{"q1": strPtr("Evet")})
	requireAppError(t, err, http.StatusConflict, utils.ErrCodeSurveyClosed)

	assert.Zero(t, h.Store.Calls(testhelpers.OpSurveysRecord))
}

func TestSyncResultSnapshots(t *testing.T) {
	h := testhelpers.NewTestHelper(t)
	sv := createSurvey(h, `{}`, 0)
	svc := newSurveyStats(h)

	synced, err := svc.SyncResultSnapshots(h.Ctx)
	require.NoError(t, err)
	assert.Zero(t, synced)

	_, err = svc.SubmitResponse(h.Ctx, sv.ID, map[string]*string{"q1": strPtr("Evet"), "q2": nil})
	require.NoError(t, err)

	synced, err = svc.SyncResultSnapshots(h.Ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, synced)

	stored, err := h.Store.Surveys().GetByID(h.Ctx, sv.ID)
	require.NoError(t, err)
	assert.JSONEq(t, `{"q1": {"Evet": 1}, "q2": {"null": 1}}`, stored.Results)
	assert.Equal(t, int64(2), stored.RowVersion)

	synced, err = svc.SyncResultSnapshots(h.Ctx)
	require.NoError(t, err)
	assert.Zero(t, synced)
}
