package testhelpers

import (
	"context"
	"fmt"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-repositories"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

/* ---------- buildings ---------- */

type buildingView struct{ s *Store }

func (v buildingView) Create(ctx context.Context, b *models.Building) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.buildings[b.ID] = *b
	return nil
}

func (v buildingView) GetByID(ctx context.Context, id uuid.UUID) (*models.Building, error) {
	if err := v.s.enter(ctx, OpBuildingsGet); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	b, ok := v.s.buildings[id]
	if !ok {
		return nil, nil
	}
	return &b, nil
}

func (v buildingView) ListByAdminID(ctx context.Context, adminID uuid.UUID) ([]*models.Building, error) {
	if err := v.s.enter(ctx, OpBuildingsListByAdmin); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var out []*models.Building
	for _, b := range v.s.buildings {
		if b.AdminID == adminID {
			b := b
			out = append(out, &b)
		}
	}
	sortBy(out, func(a, b *models.Building) bool {
		if a.BuildingName != b.BuildingName {
			return a.BuildingName < b.BuildingName
		}
		return a.ID.String() < b.ID.String()
	})
	return out, nil
}

/* ---------- apartments ---------- */

type apartmentView struct{ s *Store }

func (v apartmentView) Create(ctx context.Context, a *models.Apartment) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.apartments[a.ID] = *a
	return nil
}

func (v apartmentView) CreateMany(ctx context.Context, list []models.Apartment) error {
	for i := range list {
		if err := v.Create(ctx, &list[i]); err != nil {
			return err
		}
	}
	return nil
}

func (v apartmentView) GetByID(ctx context.Context, id uuid.UUID) (*models.Apartment, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	a, ok := v.s.apartments[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (v apartmentView) ListByBuildingIDs(ctx context.Context, buildingIDs []uuid.UUID) ([]*models.Apartment, error) {
	if err := v.s.enter(ctx, OpApartmentsList); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	set := idSet(buildingIDs)
	var out []*models.Apartment
	for _, a := range v.s.apartments {
		if set[a.BuildingID] {
			a := a
			out = append(out, &a)
		}
	}
	sortBy(out, func(a, b *models.Apartment) bool {
		if a.BuildingID != b.BuildingID {
			return a.BuildingID.String() < b.BuildingID.String()
		}
		return a.UnitNumber < b.UnitNumber
	})
	return out, nil
}

/* ---------- users ---------- */

type userView struct{ s *Store }

func (v userView) Create(ctx context.Context, u *models.User) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.users[u.ID] = *u
	return nil
}

func (v userView) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	u, ok := v.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (v userView) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*models.User, error) {
	if err := v.s.enter(ctx, OpUsersList); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var out []*models.User
	for _, id := range ids {
		if u, ok := v.s.users[id]; ok {
			out = append(out, &u)
		}
	}
	return out, nil
}

/* ---------- payments ---------- */

type paymentView struct{ s *Store }

// Create mirrors the SQL insert: building_id comes from the apartment.
func (v paymentView) Create(ctx context.Context, p *models.Payment) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	a, ok := v.s.apartments[p.ApartmentID]
	if !ok {
		return repositories.ErrApartmentNotFound
	}
	if p.BuildingID != uuid.Nil && p.BuildingID != a.BuildingID {
		return repositories.ErrPaymentBuildingMismatch
	}
	p.BuildingID = a.BuildingID
	v.s.payments[p.ID] = *p
	return nil
}

func (v paymentView) List(ctx context.Context, f repositories.PaymentFilter, opts repositories.ListOptions) ([]*models.PaymentWithPayer, error) {
	if err := v.s.enter(ctx, OpPaymentsList); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	set := idSet(f.BuildingIDs)
	var out []*models.PaymentWithPayer
	for _, p := range v.s.payments {
		if !inScope(f.BuildingIDs, set, p.BuildingID) {
			continue
		}
		if f.IsPaid != nil && p.IsPaid != *f.IsPaid {
			continue
		}
		if !timeInRange(&p.DueDate, f.DueFrom, f.DueBefore) || !timeInRange(p.PaymentDate, f.PaidFrom, f.PaidBefore) {
			continue
		}
		row := &models.PaymentWithPayer{Payment: p}
		if u, ok := v.s.users[p.UserID]; ok {
			row.PayerFirstName, row.PayerLastName = u.FirstName, u.LastName
		}
		if a, ok := v.s.apartments[p.ApartmentID]; ok {
			row.UnitNumber = a.UnitNumber
		}
		out = append(out, row)
	}
	sortBy(out, func(a, b *models.PaymentWithPayer) bool {
		return newestFirst(a.DueDate, b.DueDate, a.ID, b.ID)
	})
	return page(out, opts), nil
}

// timeInRange matches SQL semantics: a NULL column fails any bound.
func timeInRange(t *time.Time, from, before *time.Time) bool {
	if from == nil && before == nil {
		return true
	}
	if t == nil {
		return false
	}
	if from != nil && t.Before(*from) {
		return false
	}
	if before != nil && !t.Before(*before) {
		return false
	}
	return true
}

/* ---------- complaints ---------- */

type complaintView struct{ s *Store }

func (v complaintView) Create(ctx context.Context, c *models.Complaint) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if c.Status == "" {
		c.Status = models.ComplaintStatusOpen
	}
	v.s.complaints[c.ID] = *c
	return nil
}

func (v complaintView) detail(c models.Complaint) *models.ComplaintDetail {
	d := &models.ComplaintDetail{Complaint: c}
	if b, ok := v.s.buildings[c.BuildingID]; ok {
		d.BuildingName = b.BuildingName
	}
	if u, ok := v.s.users[c.UserID]; ok {
		d.SubmitterFirstName, d.SubmitterLastName = u.FirstName, u.LastName
	}
	return d
}

func (v complaintView) GetDetail(ctx context.Context, id uuid.UUID) (*models.ComplaintDetail, error) {
	if err := v.s.enter(ctx, OpComplaintsGet); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	c, ok := v.s.complaints[id]
	if !ok {
		return nil, nil
	}
	return v.detail(c), nil
}

func (v complaintView) List(ctx context.Context, f repositories.ComplaintFilter, opts repositories.ListOptions) ([]*models.ComplaintDetail, error) {
	if err := v.s.enter(ctx, OpComplaintsList); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	set := idSet(f.BuildingIDs)
	statuses := map[models.ComplaintStatusType]bool{}
	for _, st := range f.Statuses {
		statuses[st] = true
	}
	var out []*models.ComplaintDetail
	for _, c := range v.s.complaints {
		if !inScope(f.BuildingIDs, set, c.BuildingID) {
			continue
		}
		if len(statuses) > 0 && !statuses[c.Status] {
			continue
		}
		out = append(out, v.detail(c))
	}
	sortBy(out, func(a, b *models.ComplaintDetail) bool {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return page(out, opts), nil
}

func (v complaintView) CountByBuilding(ctx context.Context, buildingIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	if err := v.s.enter(ctx, OpComplaintsCount); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	set := idSet(buildingIDs)
	out := map[uuid.UUID]int{}
	for _, c := range v.s.complaints {
		if set[c.BuildingID] {
			out[c.BuildingID]++
		}
	}
	return out, nil
}

/* ---------- meetings ---------- */

type meetingView struct{ s *Store }

func (v meetingView) Create(ctx context.Context, m *models.Meeting) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.meetings[m.ID] = *m
	return nil
}

func (v meetingView) List(ctx context.Context, f repositories.MeetingFilter, opts repositories.ListOptions) ([]*models.MeetingListing, error) {
	if err := v.s.enter(ctx, OpMeetingsList); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	set := idSet(f.BuildingIDs)
	var out []*models.MeetingListing
	for _, m := range v.s.meetings {
		if !inScope(f.BuildingIDs, set, m.BuildingID) {
			continue
		}
		l := &models.MeetingListing{Meeting: m}
		if b, ok := v.s.buildings[m.BuildingID]; ok {
			l.BuildingName = b.BuildingName
		}
		out = append(out, l)
	}
	sortBy(out, func(a, b *models.MeetingListing) bool {
		return newestFirst(a.MeetingDate, b.MeetingDate, a.ID, b.ID)
	})
	return page(out, opts), nil
}

/* ---------- surveys ---------- */

type surveyView struct{ s *Store }

func (v surveyView) Create(ctx context.Context, sv *models.Survey) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	cp := *sv
	cp.RowVersion = 1
	v.s.surveys[sv.ID] = cp
	return nil
}

func (v surveyView) GetByID(ctx context.Context, id uuid.UUID) (*models.Survey, error) {
	if err := v.s.enter(ctx, OpSurveysGet); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	sv, ok := v.s.surveys[id]
	if !ok {
		return nil, nil
	}
	return &sv, nil
}

func (v surveyView) List(ctx context.Context, f repositories.SurveyFilter, opts repositories.ListOptions) ([]*models.SurveyListing, error) {
	if err := v.s.enter(ctx, OpSurveysList); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	set := idSet(f.BuildingIDs)
	var out []*models.SurveyListing
	for _, sv := range v.s.surveys {
		if !inScope(f.BuildingIDs, set, sv.BuildingID) {
			continue
		}
		l := &models.SurveyListing{Survey: sv}
		if b, ok := v.s.buildings[sv.BuildingID]; ok {
			l.BuildingName = b.BuildingName
		}
		out = append(out, l)
	}
	sortBy(out, func(a, b *models.SurveyListing) bool {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return page(out, opts), nil
}

func (v surveyView) ListAnswerCounts(ctx context.Context, surveyID uuid.UUID) ([]*models.SurveyAnswerCount, error) {
	if err := v.s.enter(ctx, OpSurveysAnswerCounts); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var out []*models.SurveyAnswerCount
	for k, n := range v.s.answerCounts {
		if k.surveyID == surveyID {
			out = append(out, &models.SurveyAnswerCount{
				SurveyID: k.surveyID, QuestionID: k.questionID, Answer: k.answer, Count: n,
			})
		}
	}
	sortBy(out, func(a, b *models.SurveyAnswerCount) bool {
		if a.QuestionID != b.QuestionID {
			return a.QuestionID < b.QuestionID
		}
		return a.Answer < b.Answer
	})
	return out, nil
}

// RecordResponse applies all increments under one lock, matching the
// transactional SQL version.
func (v surveyView) RecordResponse(ctx context.Context, surveyID uuid.UUID, answers map[string]string, baseline map[string]map[string]int, at time.Time) error {
	if err := v.s.enter(ctx, OpSurveysRecord); err != nil {
		return err
	}
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	sv, ok := v.s.surveys[surveyID]
	if !ok {
		return pgx.ErrNoRows
	}
	sv.TotalResponses++
	sv.LastResponseAt = &at
	v.s.surveys[surveyID] = sv
	if !v.s.hasAnswerCounts(surveyID) {
		for q, counts := range baseline {
			for a, n := range counts {
				if n > 0 {
					v.s.answerCounts[answerKey{surveyID, q, a}] = n
				}
			}
		}
	}
	for q, a := range answers {
		v.s.answerCounts[answerKey{surveyID, q, a}]++
	}
	return nil
}

func (v surveyView) ListStaleSnapshots(ctx context.Context) ([]*models.Survey, error) {
	if err := v.s.enter(ctx, OpSurveysStale); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var out []*models.Survey
	for _, sv := range v.s.surveys {
		if sv.LastResponseAt == nil {
			continue
		}
		if sv.ResultsSyncedAt == nil || sv.ResultsSyncedAt.Before(*sv.LastResponseAt) {
			sv := sv
			out = append(out, &sv)
		}
	}
	sortBy(out, func(a, b *models.Survey) bool { return a.LastResponseAt.Before(*b.LastResponseAt) })
	return out, nil
}

func (v surveyView) UpdateIfVersion(ctx context.Context, sv *models.Survey, expected int64) (pgconn.CommandTag, error) {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	cur, ok := v.s.surveys[sv.ID]
	if !ok || cur.RowVersion != expected {
		return pgconn.CommandTag("UPDATE 0"), nil
	}
	cur.Results = sv.Results
	cur.ResultsSyncedAt = sv.ResultsSyncedAt
	cur.RowVersion++
	v.s.surveys[sv.ID] = cur
	return pgconn.CommandTag("UPDATE 1"), nil
}

func (v surveyView) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Survey) error) error {
	return repositories.WithRetry[*models.Survey](ctx, repositories.DefaultMaxRetries, id.String(),
		func(ctx context.Context, _ string) (*models.Survey, error) {
			v.s.mu.RLock()
			defer v.s.mu.RUnlock()
			sv, ok := v.s.surveys[id]
			if !ok {
				return nil, nil
			}
			return &sv, nil
		},
		v.UpdateIfVersion,
		mutate,
	)
}

/* ---------- contracts ---------- */

type contractView struct{ s *Store }

func (v contractView) Create(ctx context.Context, c *models.Contract) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.apartments[c.ApartmentID]; !ok {
		return fmt.Errorf("contract %s: %w", c.ID, repositories.ErrApartmentNotFound)
	}
	v.s.contracts[c.ID] = *c
	return nil
}

func (v contractView) ListTenants(ctx context.Context, buildingIDs []uuid.UUID, opts repositories.ListOptions) ([]*models.TenantListing, error) {
	if err := v.s.enter(ctx, OpContractsTenants); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	set := idSet(buildingIDs)
	var out []*models.TenantListing
	for _, c := range v.s.contracts {
		a, ok := v.s.apartments[c.ApartmentID]
		if !ok || !set[a.BuildingID] {
			continue
		}
		b, ok := v.s.buildings[a.BuildingID]
		if !ok {
			continue
		}
		u, ok := v.s.users[c.TenantID]
		if !ok {
			continue
		}
		out = append(out, &models.TenantListing{
			Tenant:       u,
			ApartmentID:  a.ID,
			UnitNumber:   a.UnitNumber,
			BuildingID:   b.ID,
			BuildingName: b.BuildingName,
			ContractID:   c.ID,
			LeaseEnd:     c.EndDate,
		})
	}
	sortBy(out, func(a, b *models.TenantListing) bool {
		if !a.Tenant.CreatedAt.Equal(b.Tenant.CreatedAt) {
			return a.Tenant.CreatedAt.After(b.Tenant.CreatedAt)
		}
		if a.Tenant.ID != b.Tenant.ID {
			return a.Tenant.ID.String() < b.Tenant.ID.String()
		}
		return a.LeaseEnd.After(b.LeaseEnd)
	})
	return page(out, opts), nil
}

func (v contractView) ListExpiring(ctx context.Context, buildingIDs []uuid.UUID, from, to time.Time) ([]*models.ContractListing, error) {
	if err := v.s.enter(ctx, OpContractsExpiring); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	set := idSet(buildingIDs)
	var out []*models.ContractListing
	for _, c := range v.s.contracts {
		a, ok := v.s.apartments[c.ApartmentID]
		if !ok || !set[a.BuildingID] || !c.IsActive {
			continue
		}
		if c.EndDate.Before(from) || !c.EndDate.Before(to) {
			continue
		}
		l := &models.ContractListing{
			Contract:   c,
			UnitNumber: a.UnitNumber,
			BuildingID: a.BuildingID,
		}
		if b, ok := v.s.buildings[a.BuildingID]; ok {
			l.BuildingName = b.BuildingName
		}
		if u, ok := v.s.users[c.TenantID]; ok {
			l.TenantFirstName, l.TenantLastName = u.FirstName, u.LastName
		}
		out = append(out, l)
	}
	sortBy(out, func(a, b *models.ContractListing) bool {
		if !a.EndDate.Equal(b.EndDate) {
			return a.EndDate.Before(b.EndDate)
		}
		return a.ID.String() < b.ID.String()
	})
	return out, nil
}

func (v contractView) CountTenantsByBuilding(ctx context.Context, buildingIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	if err := v.s.enter(ctx, OpContractsCountTenants); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	set := idSet(buildingIDs)
	seen := map[uuid.UUID]map[uuid.UUID]bool{}
	for _, c := range v.s.contracts {
		a, ok := v.s.apartments[c.ApartmentID]
		if !ok || !set[a.BuildingID] || !c.IsActive {
			continue
		}
		if seen[a.BuildingID] == nil {
			seen[a.BuildingID] = map[uuid.UUID]bool{}
		}
		seen[a.BuildingID][c.TenantID] = true
	}
	out := map[uuid.UUID]int{}
	for b, tenants := range seen {
		out[b] = len(tenants)
	}
	return out, nil
}

/* ---------- notifications ---------- */

type notificationView struct{ s *Store }

func (v notificationView) Create(ctx context.Context, n *models.Notification) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	v.s.notifications[n.ID] = *n
	return nil
}

func (v notificationView) ListByCreator(ctx context.Context, createdByID uuid.UUID, opts repositories.ListOptions) ([]*models.Notification, error) {
	if err := v.s.enter(ctx, OpNotificationsByCreator); err != nil {
		return nil, err
	}
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	var out []*models.Notification
	for _, n := range v.s.notifications {
		if n.CreatedByID == createdByID {
			n := n
			out = append(out, &n)
		}
	}
	sortBy(out, func(a, b *models.Notification) bool {
		return newestFirst(a.CreatedAt, b.CreatedAt, a.ID, b.ID)
	})
	return page(out, opts), nil
}
