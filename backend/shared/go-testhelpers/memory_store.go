package testhelpers

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-repositories"
	"github.com/google/uuid"
)

// Operation names accepted by FailOn and DelayOn.
const (
	OpBuildingsListByAdmin   = "buildings.ListByAdminID"
	OpBuildingsGet           = "buildings.GetByID"
	OpApartmentsList         = "apartments.ListByBuildingIDs"
	OpUsersList              = "users.ListByIDs"
	OpPaymentsList           = "payments.List"
	OpComplaintsList         = "complaints.List"
	OpComplaintsGet          = "complaints.GetDetail"
	OpComplaintsCount        = "complaints.CountByBuilding"
	OpMeetingsList           = "meetings.List"
	OpSurveysGet             = "surveys.GetByID"
	OpSurveysList            = "surveys.List"
	OpSurveysAnswerCounts    = "surveys.ListAnswerCounts"
	OpSurveysRecord          = "surveys.RecordResponse"
	OpSurveysStale           = "surveys.ListStaleSnapshots"
	OpContractsTenants       = "contracts.ListTenants"
	OpContractsExpiring      = "contracts.ListExpiring"
	OpContractsCountTenants  = "contracts.CountTenantsByBuilding"
	OpNotificationsByCreator = "notifications.ListByCreator"
)

// Store is an in-memory stand-in for the relational store. Its repository
// views satisfy the go-repositories interfaces so services can be tested
// without a database. Any operation can be made to fail or stall.
type Store struct {
	mu sync.RWMutex

	buildings     map[uuid.UUID]models.Building
	apartments    map[uuid.UUID]models.Apartment
	users         map[uuid.UUID]models.User
	payments      map[uuid.UUID]models.Payment
	complaints    map[uuid.UUID]models.Complaint
	meetings      map[uuid.UUID]models.Meeting
	surveys       map[uuid.UUID]models.Survey
	answerCounts  map[answerKey]int
	contracts     map[uuid.UUID]models.Contract
	notifications map[uuid.UUID]models.Notification

	failures map[string]error
	delays   map[string]time.Duration
	calls    map[string]int
}

type answerKey struct {
	surveyID   uuid.UUID
	questionID string
	answer     string
}

// hasAnswerCounts reports whether surveyID has any count rows. Callers hold
// s.mu.
func (s *Store) hasAnswerCounts(surveyID uuid.UUID) bool {
	for k := range s.answerCounts {
		if k.surveyID == surveyID {
			return true
		}
	}
	return false
}

func NewStore() *Store {
	return &Store{
		buildings:     map[uuid.UUID]models.Building{},
		apartments:    map[uuid.UUID]models.Apartment{},
		users:         map[uuid.UUID]models.User{},
		payments:      map[uuid.UUID]models.Payment{},
		complaints:    map[uuid.UUID]models.Complaint{},
		meetings:      map[uuid.UUID]models.Meeting{},
		surveys:       map[uuid.UUID]models.Survey{},
		answerCounts:  map[answerKey]int{},
		contracts:     map[uuid.UUID]models.Contract{},
		notifications: map[uuid.UUID]models.Notification{},
		failures:      map[string]error{},
		delays:        map[string]time.Duration{},
		calls:         map[string]int{},
	}
}

// FailOn makes every later call of op return err.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[op] = err
}

// DelayOn makes op block for d or until its context is done.
func (s *Store) DelayOn(op string, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays[op] = d
}

// Calls reports how often op was invoked.
func (s *Store) Calls(op string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.calls[op]
}

func (s *Store) enter(ctx context.Context, op string) error {
	s.mu.Lock()
	s.calls[op]++
	err := s.failures[op]
	delay := s.delays[op]
	s.mu.Unlock()

	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if err != nil {
		return err
	}
	return ctx.Err()
}

/* ───────────── repository views ───────────── */

func (s *Store) Buildings() repositories.BuildingRepository         { return buildingView{s} }
func (s *Store) Apartments() repositories.ApartmentRepository       { return apartmentView{s} }
func (s *Store) Users() repositories.UserRepository                 { return userView{s} }
func (s *Store) Payments() repositories.PaymentRepository           { return paymentView{s} }
func (s *Store) Complaints() repositories.ComplaintRepository       { return complaintView{s} }
func (s *Store) Meetings() repositories.MeetingRepository           { return meetingView{s} }
func (s *Store) Surveys() repositories.SurveyRepository             { return surveyView{s} }
func (s *Store) Contracts() repositories.ContractRepository         { return contractView{s} }
func (s *Store) Notifications() repositories.NotificationRepository { return notificationView{s} }

/* ───────────── helpers ───────────── */

func idSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// inScope treats a nil filter as "everything".
func inScope(ids []uuid.UUID, set map[uuid.UUID]bool, id uuid.UUID) bool {
	return ids == nil || set[id]
}

func page[T any](items []T, opts repositories.ListOptions) []T {
	if opts.Offset > 0 {
		if opts.Offset >= len(items) {
			return nil
		}
		items = items[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	return items
}

func newestFirst(a, b time.Time, idA, idB uuid.UUID) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return idA.String() < idB.String()
}

func sortBy[T any](items []T, less func(a, b T) bool) {
	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}
