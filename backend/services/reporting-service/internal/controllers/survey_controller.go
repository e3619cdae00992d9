package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/dtos"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/services"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/go-playground/validator/v10"
)

type SurveyController struct {
	surveyService *services.SurveyStatsService
	validate      *validator.Validate
}

func NewSurveyController(surveyService *services.SurveyStatsService) *SurveyController {
	return &SurveyController{
		surveyService: surveyService,
		validate:      validator.New(),
	}
}

// GET /api/v1/reports/surveys/{surveyId}
func (c *SurveyController) GetSurveyStatisticsHandler(w http.ResponseWriter, r *http.Request) {
	surveyID, err := pathUUID(r, "surveyId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	stats, err := c.surveyService.GetSurveyStatistics(r.Context(), surveyID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, stats)
}

// POST /api/v1/reports/surveys/{surveyId}/responses
func (c *SurveyController) SubmitSurveyResponseHandler(w http.ResponseWriter, r *http.Request) {
	surveyID, err := pathUUID(r, "surveyId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	var req dtos.SubmitSurveyResponseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}
	if err := c.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}

	accepted, err := c.surveyService.SubmitResponse(r.Context(), surveyID, req.Answers)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, accepted)
}
