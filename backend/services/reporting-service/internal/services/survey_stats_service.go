package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/dtos"
	internal_utils "github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/utils"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-repositories"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/sirupsen/logrus"
)

type SurveyStatsService struct {
	surveyRepo repositories.SurveyRepository
	now        func() time.Time
}

func NewSurveyStatsService(surveyRepo repositories.SurveyRepository) *SurveyStatsService {
	return &SurveyStatsService{
		surveyRepo: surveyRepo,
		now:        utcNow,
	}
}

func (s *SurveyStatsService) requireSurvey(ctx context.Context, surveyID uuid.UUID) (*models.Survey, error) {
	sv, err := s.surveyRepo.GetByID(ctx, surveyID)
	if err != nil {
		return nil, fmt.Errorf("get survey %s: %w", surveyID, err)
	}
	if sv == nil {
		return nil, utils.NotFound("Survey not found", utils.ErrSurveyNotFound)
	}
	return sv, nil
}

// accumulatedResults reads the answer-count table. Surveys that predate the
// table and have no rows fall back to their results blob; the first
// submission copies the blob counts into the table.
func (s *SurveyStatsService) accumulatedResults(ctx context.Context, sv *models.Survey) (internal_utils.SurveyResults, error) {
	counts, err := s.surveyRepo.ListAnswerCounts(ctx, sv.ID)
	if err != nil {
		return nil, fmt.Errorf("list answer counts for survey %s: %w", sv.ID, err)
	}
	if len(counts) == 0 {
		return internal_utils.ParseSurveyResults(sv.Results), nil
	}
	return resultsFromCounts(counts), nil
}

func resultsFromCounts(counts []*models.SurveyAnswerCount) internal_utils.SurveyResults {
	out := internal_utils.SurveyResults{}
	for _, c := range counts {
		out.Add(c.QuestionID, c.Answer, c.Count)
	}
	return out
}

func (s *SurveyStatsService) GetSurveyStatistics(ctx context.Context, surveyID uuid.UUID) (*dtos.SurveyStatistics, error) {
	sv, err := s.requireSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	results, err := s.accumulatedResults(ctx, sv)
	if err != nil {
		return nil, err
	}
	questions := internal_utils.ParseSurveyQuestions(sv.Questions)

	out := &dtos.SurveyStatistics{
		SurveyID:                sv.ID.String(),
		Title:                   sv.Title,
		TotalResponses:          sv.TotalResponses,
		CompletionRate:          internal_utils.Ratio(len(results), sv.TotalResponses),
		PerQuestionAnswerCounts: map[string]map[string]int(results),
		Questions:               make([]dtos.QuestionStatistics, 0, len(questions)),
		PopularAnswers:          []string{},
		LastResponseDate:        sv.LastResponseAt,
	}

	seen := make(map[string]bool, len(questions))
	addQuestion := func(id, text string) {
		seen[id] = true
		qs := dtos.QuestionStatistics{
			QuestionID:   id,
			Text:         text,
			AnswerCounts: results[id],
		}
		if qs.AnswerCounts == nil {
			qs.AnswerCounts = map[string]int{}
		}
		if answer, _, ok := results.Popular(id); ok {
			qs.PopularAnswer = &answer
			out.PopularAnswers = append(out.PopularAnswers, fmt.Sprintf("%s: %s", text, answer))
		}
		out.Questions = append(out.Questions, qs)
	}
	for _, q := range questions {
		addQuestion(q.ID, q.Text)
	}

	// Answers recorded under ids the questions blob no longer lists.
	var orphans []string
	for id := range results {
		if !seen[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		addQuestion(id, id)
	}
	return out, nil
}

// SubmitResponse records one response. Every answer's count and the
// response counter are incremented atomically in the store, so concurrent
// submissions never lose updates.
func (s *SurveyStatsService) SubmitResponse(ctx context.Context, surveyID uuid.UUID, answers map[string]*string) (*dtos.SurveyResponseAccepted, error) {
	if len(answers) == 0 {
		return nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeSurveyAnswerInvalid,
			Message:    "At least one answer is required",
		}
	}
	sv, err := s.requireSurvey(ctx, surveyID)
	if err != nil {
		return nil, err
	}
	if !sv.IsActive {
		return nil, &utils.AppError{
			StatusCode: http.StatusConflict,
			Code:       utils.ErrCodeSurveyClosed,
			Message:    "Survey is closed",
		}
	}

	known := make(map[string]bool)
	for _, q := range internal_utils.ParseSurveyQuestions(sv.Questions) {
		known[q.ID] = true
	}
	recorded := make(map[string]string, len(answers))
	for questionID, answer := range answers {
		if len(known) > 0 && !known[questionID] {
			return nil, &utils.AppError{
				StatusCode: http.StatusBadRequest,
				Code:       utils.ErrCodeSurveyAnswerInvalid,
				Message:    fmt.Sprintf("Unknown question %q", questionID),
			}
		}
		if answer == nil {
			recorded[questionID] = internal_utils.NullAnswer
		} else {
			recorded[questionID] = *answer
		}
	}

	baseline := internal_utils.ParseSurveyResults(sv.Results)
	if err := s.surveyRepo.RecordResponse(ctx, sv.ID, recorded, baseline, s.now()); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, utils.NotFound("Survey not found", utils.ErrSurveyNotFound)
		}
		return nil, fmt.Errorf("record response for survey %s: %w", sv.ID, err)
	}

	updated, err := s.requireSurvey(ctx, sv.ID)
	if err != nil {
		return nil, err
	}
	return &dtos.SurveyResponseAccepted{
		SurveyID:       updated.ID.String(),
		TotalResponses: updated.TotalResponses,
	}, nil
}

// SyncResultSnapshots rewrites the results blob of every survey that
// received responses since its last snapshot. Each survey is updated with an
// optimistic version check; one failing survey does not stop the rest.
func (s *SurveyStatsService) SyncResultSnapshots(ctx context.Context) (int, error) {
	stale, err := s.surveyRepo.ListStaleSnapshots(ctx)
	if err != nil {
		return 0, fmt.Errorf("list stale survey snapshots: %w", err)
	}

	synced := 0
	var errs []error
	for _, sv := range stale {
		err := s.surveyRepo.UpdateWithRetry(ctx, sv.ID, func(cur *models.Survey) error {
			counts, err := s.surveyRepo.ListAnswerCounts(ctx, cur.ID)
			if err != nil {
				return err
			}
			cur.ResultsSyncedAt = cur.LastResponseAt
			if len(counts) == 0 {
				return nil
			}
			blob, err := resultsFromCounts(counts).Encode()
			if err != nil {
				return err
			}
			cur.Results = blob
			return nil
		})
		if err != nil {
			utils.Logger.WithFields(logrus.Fields{
				"survey_id": sv.ID,
			}).WithError(err).Error("Failed to sync survey results snapshot")
			errs = append(errs, fmt.Errorf("survey %s: %w", sv.ID, err))
			continue
		}
		synced++
	}
	return synced, errors.Join(errs...)
}
