package controllers

import (
	"net/http"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/dtos"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/services"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/go-playground/validator/v10"
)

// StatisticsController serves the standalone occupancy, payment and meeting
// figures.
type StatisticsController struct {
	occupancyService *services.OccupancyService
	paymentService   *services.PaymentStatsService
	meetingService   *services.MeetingStatsService
	validate         *validator.Validate
}

func NewStatisticsController(
	occupancyService *services.OccupancyService,
	paymentService *services.PaymentStatsService,
	meetingService *services.MeetingStatsService,
) *StatisticsController {
	return &StatisticsController{
		occupancyService: occupancyService,
		paymentService:   paymentService,
		meetingService:   meetingService,
		validate:         validator.New(),
	}
}

// GET /api/v1/reports/admins/{adminId}/occupancy
func (c *StatisticsController) GetAdminOccupancyHandler(w http.ResponseWriter, r *http.Request) {
	adminID, err := pathUUID(r, "adminId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	rates, err := c.occupancyService.GetOccupancyRates(r.Context(), adminID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rates)
}

// GET /api/v1/reports/buildings/{buildingId}/occupancy
func (c *StatisticsController) GetBuildingOccupancyHandler(w http.ResponseWriter, r *http.Request) {
	buildingID, err := pathUUID(r, "buildingId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	occ, err := c.occupancyService.GetBuildingOccupancy(r.Context(), buildingID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, occ)
}

// GET /api/v1/reports/admins/{adminId}/payments
func (c *StatisticsController) GetPaymentStatisticsHandler(w http.ResponseWriter, r *http.Request) {
	adminID, err := pathUUID(r, "adminId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	stats, err := c.paymentService.GetPaymentStatistics(r.Context(), adminID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, stats)
}

// GET /api/v1/reports/admins/{adminId}/payments/top-defaulters
func (c *StatisticsController) GetTopDefaultersHandler(w http.ResponseWriter, r *http.Request) {
	adminID, err := pathUUID(r, "adminId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	defaulters, err := c.paymentService.GetTopDefaulters(r.Context(), adminID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, defaulters)
}

// GET /api/v1/reports/admins/{adminId}/payments/rankings?top=
func (c *StatisticsController) GetPaymentRankingsHandler(w http.ResponseWriter, r *http.Request) {
	adminID, err := pathUUID(r, "adminId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	top, err := queryInt(r, "top")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	q := dtos.PaymentRankingsQuery{Top: top}
	if err := c.validate.Struct(q); err != nil {
		respondValidation(w, err)
		return
	}

	rankings, err := c.paymentService.GetTopDebtorsAndPayers(r.Context(), adminID, q.Top)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, rankings)
}

// GET /api/v1/reports/admins/{adminId}/payments/monthly
func (c *StatisticsController) GetMonthlyCollectionRatesHandler(w http.ResponseWriter, r *http.Request) {
	adminID, err := pathUUID(r, "adminId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	months, err := c.paymentService.GetMonthlyCollectionRates(r.Context(), adminID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, months)
}

// GET /api/v1/reports/admins/{adminId}/meetings
func (c *StatisticsController) GetMeetingStatisticsHandler(w http.ResponseWriter, r *http.Request) {
	adminID, err := pathUUID(r, "adminId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	stats, err := c.meetingService.GetMeetingStatistics(r.Context(), adminID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, stats)
}
