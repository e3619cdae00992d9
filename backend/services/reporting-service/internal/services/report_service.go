package services

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/constants"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/dtos"
	internal_utils "github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/utils"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-repositories"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
)

// Report section names, used in logs.
const (
	SectionBuildingSummary     = "building_summary"
	SectionRecentSurveys       = "recent_surveys"
	SectionRecentComplaints    = "recent_complaints"
	SectionRecentTenants       = "recent_tenants"
	SectionExpiringContracts   = "expiring_contracts"
	SectionRecentNotifications = "recent_notifications"
	SectionRecentMeetings      = "recent_meetings"
	SectionFinancialSummary    = "financial_summary"
	SectionPaymentStatistics   = "payment_statistics"
	SectionComplaintAnalytics  = "complaint_analytics"
	SectionMeetingStatistics   = "meeting_statistics"
)

// ReportRepositories groups the stores the aggregator reads directly.
type ReportRepositories struct {
	Buildings     repositories.BuildingRepository
	Apartments    repositories.ApartmentRepository
	Payments      repositories.PaymentRepository
	Complaints    repositories.ComplaintRepository
	Meetings      repositories.MeetingRepository
	Surveys       repositories.SurveyRepository
	Contracts     repositories.ContractRepository
	Notifications repositories.NotificationRepository
}

// ReportService assembles the admin dashboard. Sections run concurrently,
// each under its own deadline; a failed section is logged and left empty.
type ReportService struct {
	repos          ReportRepositories
	payments       *PaymentStatsService
	complaints     *ComplaintAnalyticsService
	meetings       *MeetingStatsService
	sectionTimeout time.Duration
	now            func() time.Time
}

func NewReportService(
	repos ReportRepositories,
	payments *PaymentStatsService,
	complaints *ComplaintAnalyticsService,
	meetings *MeetingStatsService,
	sectionTimeout time.Duration,
) *ReportService {
	if sectionTimeout <= 0 {
		sectionTimeout = constants.DefaultSectionTimeout
	}
	return &ReportService{
		repos:          repos,
		payments:       payments,
		complaints:     complaints,
		meetings:       meetings,
		sectionTimeout: sectionTimeout,
		now:            utcNow,
	}
}

// runSection calls fetch under the section deadline. Any error or panic is
// logged and replaced by def.
func runSection[T any](ctx context.Context, timeout time.Duration, name string, adminID uuid.UUID, def T, fetch func(context.Context) (T, error)) (result T) {
	log := utils.Logger.WithFields(logrus.Fields{
		"section":  name,
		"admin_id": adminID,
	})
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("Report section panicked; using empty default")
			result = def
		}
	}()

	sctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	v, err := fetch(sctx)
	if err != nil {
		log.WithError(err).WithField("elapsed", time.Since(start)).Warn("Report section failed; using empty default")
		return def
	}
	return v
}

// GetAdminReport builds the consolidated report for an admin, optionally
// narrowed to one of their buildings. Only resolving the admin's buildings
// or a foreign building filter fails the call.
func (s *ReportService) GetAdminReport(ctx context.Context, adminID uuid.UUID, buildingID *uuid.UUID, lang language.Tag) (*dtos.AdminReport, error) {
	buildings, ids, err := ownedBuildings(ctx, s.repos.Buildings, adminID)
	if err != nil {
		return nil, err
	}
	if buildingID != nil {
		var selected *models.Building
		for _, b := range buildings {
			if b.ID == *buildingID {
				selected = b
				break
			}
		}
		if selected == nil {
			return nil, utils.NotFound("Building not found for this admin", utils.ErrBuildingNotFound)
		}
		buildings, ids = []*models.Building{selected}, []uuid.UUID{selected.ID}
	}

	now := s.now()
	report := &dtos.AdminReport{
		AdminID:     adminID.String(),
		Language:    lang.String(),
		GeneratedAt: now,
	}
	if buildingID != nil {
		id := buildingID.String()
		report.BuildingID = &id
	}

	t := s.sectionTimeout
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.BuildingSummary = runSection(gctx, t, SectionBuildingSummary, adminID,
			dtos.BuildingSummarySection{Buildings: []dtos.BuildingSummary{}},
			func(ctx context.Context) (dtos.BuildingSummarySection, error) {
				return s.buildingSummary(ctx, buildings, ids)
			})
		return nil
	})
	g.Go(func() error {
		report.RecentSurveys = runSection(gctx, t, SectionRecentSurveys, adminID,
			[]dtos.SurveySummary{},
			func(ctx context.Context) ([]dtos.SurveySummary, error) {
				return s.recentSurveys(ctx, ids)
			})
		return nil
	})
	g.Go(func() error {
		report.RecentComplaints = runSection(gctx, t, SectionRecentComplaints, adminID,
			[]dtos.ComplaintDetail{},
			func(ctx context.Context) ([]dtos.ComplaintDetail, error) {
				return s.recentComplaints(ctx, ids)
			})
		return nil
	})
	g.Go(func() error {
		report.RecentTenants = runSection(gctx, t, SectionRecentTenants, adminID,
			[]dtos.TenantSummary{},
			func(ctx context.Context) ([]dtos.TenantSummary, error) {
				return s.recentTenants(ctx, ids)
			})
		return nil
	})
	g.Go(func() error {
		report.ExpiringContracts = runSection(gctx, t, SectionExpiringContracts, adminID,
			[]dtos.ExpiringContract{},
			func(ctx context.Context) ([]dtos.ExpiringContract, error) {
				return s.expiringContracts(ctx, ids, now)
			})
		return nil
	})
	g.Go(func() error {
		report.RecentNotifications = runSection(gctx, t, SectionRecentNotifications, adminID,
			[]dtos.NotificationSummary{},
			func(ctx context.Context) ([]dtos.NotificationSummary, error) {
				return s.recentNotifications(ctx, adminID)
			})
		return nil
	})
	g.Go(func() error {
		report.RecentMeetings = runSection(gctx, t, SectionRecentMeetings, adminID,
			[]dtos.MeetingSummary{},
			func(ctx context.Context) ([]dtos.MeetingSummary, error) {
				return s.recentMeetings(ctx, ids)
			})
		return nil
	})
	g.Go(func() error {
		report.FinancialSummary = runSection(gctx, t, SectionFinancialSummary, adminID,
			emptyFinancialSummary(),
			func(ctx context.Context) (dtos.FinancialSummary, error) {
				return s.financialSummary(ctx, buildings, ids, now, lang)
			})
		return nil
	})
	g.Go(func() error {
		report.PaymentStatistics = runSection(gctx, t, SectionPaymentStatistics, adminID,
			dtos.PaymentStatistics{}, func(ctx context.Context) (dtos.PaymentStatistics, error) {
				return s.payments.statisticsFor(ctx, ids)
			})
		return nil
	})
	g.Go(func() error {
		report.ComplaintAnalytics = runSection(gctx, t, SectionComplaintAnalytics, adminID,
			dtos.ComplaintAnalytics{}, func(ctx context.Context) (dtos.ComplaintAnalytics, error) {
				if len(ids) == 0 {
					return dtos.ComplaintAnalytics{}, nil
				}
				a, err := s.complaints.analyze(ctx, ids)
				if err != nil {
					return dtos.ComplaintAnalytics{}, err
				}
				return *a, nil
			})
		return nil
	})
	g.Go(func() error {
		report.MeetingStatistics = runSection(gctx, t, SectionMeetingStatistics, adminID,
			dtos.MeetingStatistics{}, func(ctx context.Context) (dtos.MeetingStatistics, error) {
				return s.meetings.statisticsFor(ctx, adminID, ids)
			})
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *ReportService) buildingSummary(ctx context.Context, buildings []*models.Building, ids []uuid.UUID) (dtos.BuildingSummarySection, error) {
	out := dtos.BuildingSummarySection{Buildings: make([]dtos.BuildingSummary, 0, len(buildings))}
	if len(buildings) == 0 {
		return out, nil
	}

	apartments, err := s.repos.Apartments.ListByBuildingIDs(ctx, ids)
	if err != nil {
		return out, fmt.Errorf("list apartments: %w", err)
	}
	tenants, err := s.repos.Contracts.CountTenantsByBuilding(ctx, ids)
	if err != nil {
		return out, fmt.Errorf("count tenants: %w", err)
	}
	complaints, err := s.repos.Complaints.CountByBuilding(ctx, ids)
	if err != nil {
		return out, fmt.Errorf("count complaints: %w", err)
	}
	payments, err := s.repos.Payments.List(ctx, repositories.PaymentFilter{BuildingIDs: ids}, repositories.ListOptions{})
	if err != nil {
		return out, fmt.Errorf("list payments: %w", err)
	}

	paymentCount := make(map[uuid.UUID]int)
	income := make(map[uuid.UUID]decimal.Decimal)
	for _, p := range payments {
		paymentCount[p.BuildingID]++
		if p.IsPaid {
			income[p.BuildingID] = income[p.BuildingID].Add(p.Amount)
		}
	}
	byBuilding := groupApartments(apartments)

	var topIncome, topRent *dtos.BuildingHighlight
	for _, b := range buildings {
		apts := byBuilding[b.ID]
		occ := occupancyOf(b, apts)
		rentSum := decimal.Zero
		for _, a := range apts {
			rentSum = rentSum.Add(a.RentAmount)
		}
		row := dtos.BuildingSummary{
			BuildingID:     occ.BuildingID,
			BuildingName:   occ.BuildingName,
			TotalUnits:     occ.TotalUnits,
			OccupiedUnits:  occ.OccupiedUnits,
			VacantUnits:    occ.VacantUnits,
			OccupancyRate:  occ.OccupancyRate,
			TenantCount:    tenants[b.ID],
			ComplaintCount: complaints[b.ID],
			PaymentCount:   paymentCount[b.ID],
			TotalIncome:    internal_utils.Round2(income[b.ID]),
			AverageRent:    internal_utils.Average(rentSum, len(apts)),
		}
		out.Buildings = append(out.Buildings, row)

		if topIncome == nil || row.TotalIncome > topIncome.Value {
			topIncome = &dtos.BuildingHighlight{BuildingID: row.BuildingID, BuildingName: row.BuildingName, Value: row.TotalIncome}
		}
		if topRent == nil || row.AverageRent > topRent.Value {
			topRent = &dtos.BuildingHighlight{BuildingID: row.BuildingID, BuildingName: row.BuildingName, Value: row.AverageRent}
		}
	}
	out.HighestIncomeBuilding = topIncome
	out.HighestAverageRentBuilding = topRent
	return out, nil
}

func (s *ReportService) recentSurveys(ctx context.Context, ids []uuid.UUID) ([]dtos.SurveySummary, error) {
	out := []dtos.SurveySummary{}
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := s.repos.Surveys.List(ctx, repositories.SurveyFilter{BuildingIDs: ids}, repositories.ListOptions{
		OrderBy: "created_at",
		Desc:    true,
		Limit:   constants.RecentSurveysLimit,
	})
	if err != nil {
		return out, fmt.Errorf("list recent surveys: %w", err)
	}
	for _, r := range rows {
		out = append(out, dtos.SurveySummary{
			ID:             r.ID.String(),
			BuildingID:     r.BuildingID.String(),
			BuildingName:   r.BuildingName,
			Title:          r.Title,
			TotalResponses: r.TotalResponses,
			IsActive:       r.IsActive,
			StartDate:      r.StartDate,
			EndDate:        r.EndDate,
			CreatedAt:      r.CreatedAt,
		})
	}
	return out, nil
}

func (s *ReportService) recentComplaints(ctx context.Context, ids []uuid.UUID) ([]dtos.ComplaintDetail, error) {
	out := []dtos.ComplaintDetail{}
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := s.repos.Complaints.List(ctx, repositories.ComplaintFilter{BuildingIDs: ids}, repositories.ListOptions{
		OrderBy: "created_at",
		Desc:    true,
		Limit:   constants.RecentComplaintsLimit,
	})
	if err != nil {
		return out, fmt.Errorf("list recent complaints: %w", err)
	}
	for _, r := range rows {
		out = append(out, complaintDetailDTO(r))
	}
	return out, nil
}

// recentTenants walks the tenant join newest first, keeping the first row
// per tenant. Rows repeat per contract, so the join is paged until enough
// distinct tenants are found.
func (s *ReportService) recentTenants(ctx context.Context, ids []uuid.UUID) ([]dtos.TenantSummary, error) {
	out := []dtos.TenantSummary{}
	if len(ids) == 0 {
		return out, nil
	}
	const pageSize = constants.RecentTenantsLimit * 3
	seen := make(map[uuid.UUID]bool)
	for offset := 0; len(out) < constants.RecentTenantsLimit; offset += pageSize {
		rows, err := s.repos.Contracts.ListTenants(ctx, ids, repositories.ListOptions{Limit: pageSize, Offset: offset})
		if err != nil {
			return out, fmt.Errorf("list recent tenants: %w", err)
		}
		for _, r := range rows {
			if seen[r.Tenant.ID] || len(out) == constants.RecentTenantsLimit {
				continue
			}
			seen[r.Tenant.ID] = true
			out = append(out, dtos.TenantSummary{
				UserID:       r.Tenant.ID.String(),
				FullName:     r.Tenant.FullName(),
				Email:        r.Tenant.Email,
				PhoneNumber:  r.Tenant.PhoneNumber,
				ApartmentID:  r.ApartmentID.String(),
				UnitNumber:   r.UnitNumber,
				BuildingID:   r.BuildingID.String(),
				BuildingName: r.BuildingName,
				LeaseEnd:     r.LeaseEnd,
				CreatedAt:    r.Tenant.CreatedAt,
			})
		}
		if len(rows) < pageSize {
			break
		}
	}
	return out, nil
}

func (s *ReportService) expiringContracts(ctx context.Context, ids []uuid.UUID, now time.Time) ([]dtos.ExpiringContract, error) {
	out := []dtos.ExpiringContract{}
	if len(ids) == 0 {
		return out, nil
	}
	until := now.AddDate(0, 0, constants.ExpiringContractsWindowDays)
	rows, err := s.repos.Contracts.ListExpiring(ctx, ids, now, until)
	if err != nil {
		return out, fmt.Errorf("list expiring contracts: %w", err)
	}
	for _, r := range rows {
		out = append(out, dtos.ExpiringContract{
			ContractID:    r.ID.String(),
			TenantID:      r.TenantID.String(),
			TenantName:    r.TenantName(),
			ApartmentID:   r.ApartmentID.String(),
			UnitNumber:    r.UnitNumber,
			BuildingID:    r.BuildingID.String(),
			BuildingName:  r.BuildingName,
			EndDate:       r.EndDate,
			DaysRemaining: internal_utils.WholeDaysBetween(now, r.EndDate),
			RentAmount:    internal_utils.Round2(r.RentAmount),
		})
	}
	return out, nil
}

// recentNotifications is scoped to the notifications the admin wrote, not
// to the building filter.
func (s *ReportService) recentNotifications(ctx context.Context, adminID uuid.UUID) ([]dtos.NotificationSummary, error) {
	out := []dtos.NotificationSummary{}
	rows, err := s.repos.Notifications.ListByCreator(ctx, adminID, repositories.ListOptions{
		OrderBy: "created_at",
		Desc:    true,
		Limit:   constants.RecentNotificationsLimit,
	})
	if err != nil {
		return out, fmt.Errorf("list recent notifications: %w", err)
	}
	for _, r := range rows {
		n := dtos.NotificationSummary{
			ID:        r.ID.String(),
			Title:     r.Title,
			Message:   r.Message,
			Type:      r.Type,
			CreatedAt: r.CreatedAt,
		}
		if r.BuildingID != nil {
			id := r.BuildingID.String()
			n.BuildingID = &id
		}
		out = append(out, n)
	}
	return out, nil
}

func (s *ReportService) recentMeetings(ctx context.Context, ids []uuid.UUID) ([]dtos.MeetingSummary, error) {
	out := []dtos.MeetingSummary{}
	if len(ids) == 0 {
		return out, nil
	}
	rows, err := s.repos.Meetings.List(ctx, repositories.MeetingFilter{BuildingIDs: ids}, repositories.ListOptions{
		OrderBy: "meeting_date",
		Desc:    true,
		Limit:   constants.RecentMeetingsLimit,
	})
	if err != nil {
		return out, fmt.Errorf("list recent meetings: %w", err)
	}
	for _, r := range rows {
		out = append(out, dtos.MeetingSummary{
			ID:             r.ID.String(),
			BuildingID:     r.BuildingID.String(),
			BuildingName:   r.BuildingName,
			Title:          r.Title,
			Location:       r.Location,
			MeetingDate:    r.MeetingDate,
			IsCancelled:    r.IsCancelled,
			AttendanceRate: r.AttendanceRate,
		})
	}
	return out, nil
}

func emptyFinancialSummary() dtos.FinancialSummary {
	return dtos.FinancialSummary{
		Months:    []dtos.MonthlyIncome{},
		Buildings: []dtos.BuildingCollection{},
	}
}

type collection struct {
	expected, collected decimal.Decimal
}

// financialSummary buckets payments due in the trailing window by month and
// by building. Months are listed oldest first, including empty ones.
func (s *ReportService) financialSummary(ctx context.Context, buildings []*models.Building, ids []uuid.UUID, now time.Time, lang language.Tag) (dtos.FinancialSummary, error) {
	out := emptyFinancialSummary()
	months := internal_utils.TrailingMonths(now, constants.FinancialSummaryMonths)

	var payments []*models.PaymentWithPayer
	if len(ids) > 0 {
		from := months[0].Start()
		before := months[len(months)-1].AddMonths(1).Start()
		var err error
		payments, err = s.repos.Payments.List(ctx, repositories.PaymentFilter{
			BuildingIDs: ids,
			DueFrom:     &from,
			DueBefore:   &before,
		}, repositories.ListOptions{})
		if err != nil {
			return out, fmt.Errorf("list payments for financial summary: %w", err)
		}
	}

	byMonth := make(map[internal_utils.MonthKey]*collection, len(months))
	for _, m := range months {
		byMonth[m] = &collection{}
	}
	byBuilding := make(map[uuid.UUID]*collection, len(buildings))
	for _, b := range buildings {
		byBuilding[b.ID] = &collection{}
	}
	var total collection
	for _, p := range payments {
		paid := decimal.Zero
		if p.IsPaid {
			paid = p.Amount
		}
		for _, c := range []*collection{byMonth[internal_utils.MonthOf(p.DueDate)], byBuilding[p.BuildingID], &total} {
			if c == nil {
				continue
			}
			c.expected = c.expected.Add(p.Amount)
			c.collected = c.collected.Add(paid)
		}
	}

	for _, m := range months {
		c := byMonth[m]
		out.Months = append(out.Months, dtos.MonthlyIncome{
			Year:            m.Year,
			Month:           int(m.Month),
			MonthName:       internal_utils.MonthName(lang, m.Month),
			Label:           internal_utils.MonthLabel(lang, m.Year, m.Month),
			ExpectedAmount:  internal_utils.Round2(c.expected),
			CollectedAmount: internal_utils.Round2(c.collected),
		})
	}
	for _, b := range buildings {
		c := byBuilding[b.ID]
		out.Buildings = append(out.Buildings, dtos.BuildingCollection{
			BuildingID:      b.ID.String(),
			BuildingName:    b.BuildingName,
			ExpectedAmount:  internal_utils.Round2(c.expected),
			CollectedAmount: internal_utils.Round2(c.collected),
			CollectionRate:  internal_utils.PercentInt(c.collected, c.expected),
		})
	}
	sort.SliceStable(out.Buildings, func(i, j int) bool {
		return out.Buildings[i].CollectionRate > out.Buildings[j].CollectionRate
	})
	out.TotalExpected = internal_utils.Round2(total.expected)
	out.TotalCollected = internal_utils.Round2(total.collected)
	return out, nil
}
