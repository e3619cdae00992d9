package controllers

import (
	"net/http"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/dtos"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/services"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-repositories"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/go-playground/validator/v10"
)

type ComplaintController struct {
	complaintService *services.ComplaintAnalyticsService
	validate         *validator.Validate
}

func NewComplaintController(complaintService *services.ComplaintAnalyticsService) *ComplaintController {
	return &ComplaintController{
		complaintService: complaintService,
		validate:         validator.New(),
	}
}

// GET /api/v1/reports/admins/{adminId}/complaints
func (c *ComplaintController) GetAdminComplaintAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	adminID, err := pathUUID(r, "adminId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	analytics, err := c.complaintService.GetComplaintAnalytics(r.Context(), adminID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, analytics)
}

// GET /api/v1/reports/buildings/{buildingId}/complaints
func (c *ComplaintController) GetBuildingComplaintAnalyticsHandler(w http.ResponseWriter, r *http.Request) {
	buildingID, err := pathUUID(r, "buildingId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	analytics, err := c.complaintService.GetBuildingComplaintAnalytics(r.Context(), buildingID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, analytics)
}

// GET /api/v1/reports/buildings/{buildingId}/complaints/details?limit=&offset=
func (c *ComplaintController) ListComplaintDetailsHandler(w http.ResponseWriter, r *http.Request) {
	buildingID, err := pathUUID(r, "buildingId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	req := dtos.ListComplaintDetailsRequest{Limit: limit, Offset: offset}
	if err := c.validate.Struct(req); err != nil {
		respondValidation(w, err)
		return
	}

	page, err := c.complaintService.ListComplaintDetails(r.Context(), buildingID, repositories.ListOptions{
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, page)
}

// GET /api/v1/reports/complaints/{complaintId}
func (c *ComplaintController) GetComplaintDetailHandler(w http.ResponseWriter, r *http.Request) {
	complaintID, err := pathUUID(r, "complaintId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	detail, err := c.complaintService.GetComplaintDetail(r.Context(), complaintID)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, detail)
}
