package controllers

import (
	"net/http"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/dtos"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/services"
	internal_utils "github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/utils"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ReportController struct {
	reportService *services.ReportService
	validate      *validator.Validate
}

func NewReportController(reportService *services.ReportService) *ReportController {
	return &ReportController{
		reportService: reportService,
		validate:      validator.New(),
	}
}

// GET /api/v1/reports/admins/{adminId}/overview?building_id=&lang=
func (c *ReportController) GetAdminOverviewHandler(w http.ResponseWriter, r *http.Request) {
	adminID, err := pathUUID(r, "adminId")
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}

	q := dtos.AdminReportQuery{
		BuildingID: r.URL.Query().Get("building_id"),
		Lang:       r.URL.Query().Get("lang"),
	}
	if err := c.validate.Struct(q); err != nil {
		respondValidation(w, err)
		return
	}

	var buildingID *uuid.UUID
	if q.BuildingID != "" {
		id := uuid.MustParse(q.BuildingID)
		buildingID = &id
	}
	preferred := q.Lang
	if preferred == "" {
		preferred = r.Header.Get("Accept-Language")
	}

	report, err := c.reportService.GetAdminReport(r.Context(), adminID, buildingID, internal_utils.ResolveLanguage(preferred))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, report)
}
