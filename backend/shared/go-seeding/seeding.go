package seeding

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-repositories"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/google/uuid"
	"github.com/jackc/pgconn"
)

const (
	DefaultAdminID = "aaaaaaaa-aaaa-4aaa-aaaa-aaaaaaaaaaa1"
	DefaultOwnerID = "bbbbbbbb-bbbb-4bbb-bbbb-bbbbbbbbbbb1"
)

// seedNamespace derives stable ids for every other demo record so reruns
// hit the same primary keys.
var seedNamespace = uuid.MustParse("6f1d7c1e-3d52-4f0b-9a57-5d6c3f2e8a10")

func seedID(name string) uuid.UUID {
	return uuid.NewSHA1(seedNamespace, []byte(name))
}

// Repositories is the set of stores the demo data is written through.
type Repositories struct {
	Users         repositories.UserRepository
	Buildings     repositories.BuildingRepository
	Apartments    repositories.ApartmentRepository
	Payments      repositories.PaymentRepository
	Complaints    repositories.ComplaintRepository
	Meetings      repositories.MeetingRepository
	Surveys       repositories.SurveyRepository
	Contracts     repositories.ContractRepository
	Notifications repositories.NotificationRepository
}

// SeedDemoPortfolio creates a demo admin with two buildings and a year of
// activity relative to now. It is a no-op when the demo admin exists.
func SeedDemoPortfolio(ctx context.Context, repos Repositories, now time.Time) error {
	adminID := uuid.MustParse(DefaultAdminID)
	if existing, err := repos.Users.GetByID(ctx, adminID); err != nil {
		return fmt.Errorf("check existing demo admin: %w", err)
	} else if existing != nil {
		utils.Logger.Info("seeding: demo portfolio already present; skipping")
		return nil
	}

	steps := []struct {
		name string
		fn   func(context.Context, Repositories, time.Time) error
	}{
		{"users", seedUsers},
		{"buildings", seedBuildings},
		{"tenants", seedTenants},
		{"contracts", seedContracts},
		{"payments", seedPayments},
		{"complaints", seedComplaints},
		{"meetings", seedMeetings},
		{"surveys", seedSurveys},
		{"notifications", seedNotifications},
	}
	for _, s := range steps {
		if err := s.fn(ctx, repos, now); err != nil {
			if isUniqueViolation(err) {
				utils.Logger.Infof("seeding: %s already exist; skipping the rest", s.name)
				return nil
			}
			return fmt.Errorf("seed %s: %w", s.name, err)
		}
	}

	utils.Logger.Infof("seeding: created demo portfolio for admin id=%s", adminID)
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
