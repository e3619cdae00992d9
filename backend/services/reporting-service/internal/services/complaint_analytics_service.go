package services

import (
	"context"
	"fmt"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/constants"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/dtos"
	internal_utils "github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/utils"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-repositories"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ComplaintAnalyticsService struct {
	buildingRepo  repositories.BuildingRepository
	complaintRepo repositories.ComplaintRepository
}

func NewComplaintAnalyticsService(buildingRepo repositories.BuildingRepository, complaintRepo repositories.ComplaintRepository) *ComplaintAnalyticsService {
	return &ComplaintAnalyticsService{
		buildingRepo:  buildingRepo,
		complaintRepo: complaintRepo,
	}
}

func (s *ComplaintAnalyticsService) GetComplaintAnalytics(ctx context.Context, adminID uuid.UUID) (*dtos.ComplaintAnalytics, error) {
	_, ids, err := ownedBuildings(ctx, s.buildingRepo, adminID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &dtos.ComplaintAnalytics{}, nil
	}
	return s.analyze(ctx, ids)
}

func (s *ComplaintAnalyticsService) GetBuildingComplaintAnalytics(ctx context.Context, buildingID uuid.UUID) (*dtos.ComplaintAnalytics, error) {
	b, err := requireBuilding(ctx, s.buildingRepo, buildingID)
	if err != nil {
		return nil, err
	}
	return s.analyze(ctx, []uuid.UUID{b.ID})
}

func (s *ComplaintAnalyticsService) analyze(ctx context.Context, buildingIDs []uuid.UUID) (*dtos.ComplaintAnalytics, error) {
	complaints, err := s.complaintRepo.List(ctx, repositories.ComplaintFilter{BuildingIDs: buildingIDs}, repositories.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}

	out := &dtos.ComplaintAnalytics{}
	resolvedHours := decimal.Zero
	resolvedCount := 0
	for _, c := range complaints {
		out.Total++
		switch c.Status {
		case models.ComplaintStatusInProgress:
			out.InProgress++
		case models.ComplaintStatusResolved:
			out.Resolved++
			if c.ResolvedAt != nil {
				resolvedHours = resolvedHours.Add(decimal.NewFromFloat(c.ResolvedAt.Sub(c.CreatedAt).Hours()))
				resolvedCount++
			}
		case models.ComplaintStatusRejected:
			out.Rejected++
		case models.ComplaintStatusClosed:
			out.Closed++
		default:
			out.Open++
		}
	}
	out.AverageResolutionHours = internal_utils.Average(resolvedHours, resolvedCount)
	return out, nil
}

// ListComplaintDetails pages through a building's complaints, newest first.
func (s *ComplaintAnalyticsService) ListComplaintDetails(ctx context.Context, buildingID uuid.UUID, opts repositories.ListOptions) (*dtos.ComplaintDetailPage, error) {
	b, err := requireBuilding(ctx, s.buildingRepo, buildingID)
	if err != nil {
		return nil, err
	}
	if opts.Limit <= 0 {
		opts.Limit = constants.DefaultComplaintPageSize
	}
	if opts.Limit > constants.MaxComplaintPageSize {
		opts.Limit = constants.MaxComplaintPageSize
	}

	rows, err := s.complaintRepo.List(ctx, repositories.ComplaintFilter{BuildingIDs: []uuid.UUID{b.ID}}, opts)
	if err != nil {
		return nil, fmt.Errorf("list complaint details for building %s: %w", b.ID, err)
	}
	page := &dtos.ComplaintDetailPage{
		Items:  make([]dtos.ComplaintDetail, 0, len(rows)),
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}
	for _, r := range rows {
		page.Items = append(page.Items, complaintDetailDTO(r))
	}
	return page, nil
}

func (s *ComplaintAnalyticsService) GetComplaintDetail(ctx context.Context, complaintID uuid.UUID) (*dtos.ComplaintDetail, error) {
	row, err := s.complaintRepo.GetDetail(ctx, complaintID)
	if err != nil {
		return nil, fmt.Errorf("get complaint %s: %w", complaintID, err)
	}
	if row == nil {
		return nil, utils.NotFound("Complaint not found", utils.ErrComplaintNotFound)
	}
	dto := complaintDetailDTO(row)
	return &dto, nil
}

// submitterDisplayName prefers the live user name, then the snapshot taken
// at filing time, then a fixed placeholder.
func submitterDisplayName(d *models.ComplaintDetail) string {
	if name := d.SubmitterFullName(); name != "" {
		return name
	}
	if d.SubmitterName != nil && *d.SubmitterName != "" {
		return *d.SubmitterName
	}
	return utils.UnknownUserName
}

func complaintDetailDTO(d *models.ComplaintDetail) dtos.ComplaintDetail {
	return dtos.ComplaintDetail{
		ID:            d.ID.String(),
		BuildingID:    d.BuildingID.String(),
		BuildingName:  d.BuildingName,
		UserID:        d.UserID.String(),
		SubmitterName: submitterDisplayName(d),
		Title:         d.Title,
		Description:   d.Description,
		Status:        d.Status,
		CreatedAt:     d.CreatedAt,
		ResolvedAt:    d.ResolvedAt,
	}
}
