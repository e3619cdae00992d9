package services

import (
	"context"
	"fmt"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/dtos"
	internal_utils "github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/utils"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-repositories"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MeetingStatsService counts meetings. Unless scopeToAdmin is set, counts
// cover every meeting in the store regardless of the admin asked about; the
// response says which scope was applied.
type MeetingStatsService struct {
	buildingRepo repositories.BuildingRepository
	meetingRepo  repositories.MeetingRepository
	scopeToAdmin bool
	now          func() time.Time
}

func NewMeetingStatsService(buildingRepo repositories.BuildingRepository, meetingRepo repositories.MeetingRepository, scopeToAdmin bool) *MeetingStatsService {
	return &MeetingStatsService{
		buildingRepo: buildingRepo,
		meetingRepo:  meetingRepo,
		scopeToAdmin: scopeToAdmin,
		now:          utcNow,
	}
}

func (s *MeetingStatsService) GetMeetingStatistics(ctx context.Context, adminID uuid.UUID) (*dtos.MeetingStatistics, error) {
	var ids []uuid.UUID
	if s.scopeToAdmin {
		var err error
		if _, ids, err = ownedBuildings(ctx, s.buildingRepo, adminID); err != nil {
			return nil, err
		}
	}
	out, err := s.statisticsFor(ctx, adminID, ids)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// statisticsFor counts meetings in scope when the admin-scoped mode is on,
// and every meeting otherwise.
func (s *MeetingStatsService) statisticsFor(ctx context.Context, adminID uuid.UUID, scope []uuid.UUID) (dtos.MeetingStatistics, error) {
	var f repositories.MeetingFilter
	if s.scopeToAdmin {
		if len(scope) == 0 {
			return dtos.MeetingStatistics{ScopedToAdmin: true}, nil
		}
		f.BuildingIDs = scope
	} else {
		utils.Logger.WithField("admin_id", adminID).
			Warn("Meeting statistics counted across all buildings; enable scope_meeting_stats_to_admin to scope them")
	}

	meetings, err := s.meetingRepo.List(ctx, f, repositories.ListOptions{})
	if err != nil {
		return dtos.MeetingStatistics{}, fmt.Errorf("list meetings: %w", err)
	}
	out := summarizeMeetings(meetings, s.now())
	out.ScopedToAdmin = s.scopeToAdmin
	return out, nil
}

// summarizeMeetings treats every meeting dated before now as completed,
// cancelled or not; Cancelled is reported alongside, not subtracted.
func summarizeMeetings(meetings []*models.MeetingListing, now time.Time) dtos.MeetingStatistics {
	var out dtos.MeetingStatistics
	attendance := decimal.Zero
	for _, m := range meetings {
		out.Total++
		if m.IsCancelled {
			out.Cancelled++
		}
		if m.MeetingDate.Before(now) {
			out.Completed++
			attendance = attendance.Add(decimal.NewFromFloat(m.AttendanceRate))
		}
	}
	out.Upcoming = out.Total - out.Completed
	out.AverageAttendanceRate = internal_utils.Average(attendance, out.Completed)
	return out
}
