package main

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/app"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/config"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/services"
	internal_utils "github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/utils"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-repositories"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// cliEnv holds the services shared by every subcommand. It is opened once
// before the subcommand runs.
type cliEnv struct {
	lang    string
	closers []func()

	application *app.App
	occupancy   *services.OccupancyService
	payments    *services.PaymentStatsService
	complaints  *services.ComplaintAnalyticsService
	meetings    *services.MeetingStatsService
	surveys     *services.SurveyStatsService
	reports     *services.ReportService
}

func (e *cliEnv) open() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	e.application, err = app.NewApp(cfg)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	e.closers = append(e.closers, e.application.Close)

	db := e.application.DB
	repos := services.ReportRepositories{
		Buildings:     repositories.NewBuildingRepository(db),
		Apartments:    repositories.NewApartmentRepository(db),
		Payments:      repositories.NewPaymentRepository(db),
		Complaints:    repositories.NewComplaintRepository(db),
		Meetings:      repositories.NewMeetingRepository(db),
		Surveys:       repositories.NewSurveyRepository(db),
		Contracts:     repositories.NewContractRepository(db),
		Notifications: repositories.NewNotificationRepository(db),
	}
	e.occupancy = services.NewOccupancyService(repos.Buildings, repos.Apartments)
	e.payments = services.NewPaymentStatsService(repos.Buildings, repos.Payments)
	e.complaints = services.NewComplaintAnalyticsService(repos.Buildings, repos.Complaints)
	e.meetings = services.NewMeetingStatsService(repos.Buildings, repos.Meetings, cfg.LDFlag_ScopeMeetingStatsToAdmin)
	e.surveys = services.NewSurveyStatsService(repos.Surveys)
	e.reports = services.NewReportService(repos, e.payments, e.complaints, e.meetings, cfg.SectionTimeout())
	return nil
}

func (e *cliEnv) close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	e.closers = nil
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func parseID(flag, raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, fmt.Errorf("--%s is required", flag)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid --%s: %w", flag, err)
	}
	return id, nil
}

func overviewCmd(env *cliEnv) *cobra.Command {
	var adminID, buildingID string
	cmd := &cobra.Command{
		Use:   "overview",
		Short: "Consolidated admin report",
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := parseID("admin", adminID)
			if err != nil {
				return err
			}
			var building *uuid.UUID
			if buildingID != "" {
				id, err := parseID("building", buildingID)
				if err != nil {
					return err
				}
				building = &id
			}
			report, err := env.reports.GetAdminReport(cmd.Context(), admin, building, internal_utils.ResolveLanguage(env.lang))
			if err != nil {
				return err
			}
			return printJSON(cmd, report)
		},
	}
	cmd.Flags().StringVar(&adminID, "admin", "", "admin id")
	cmd.Flags().StringVar(&buildingID, "building", "", "optional building id")
	return cmd
}

func occupancyCmd(env *cliEnv) *cobra.Command {
	var adminID, buildingID string
	cmd := &cobra.Command{
		Use:   "occupancy",
		Short: "Occupancy for an admin portfolio or one building",
		RunE: func(cmd *cobra.Command, args []string) error {
			if buildingID != "" {
				id, err := parseID("building", buildingID)
				if err != nil {
					return err
				}
				occ, err := env.occupancy.GetBuildingOccupancy(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printJSON(cmd, occ)
			}
			admin, err := parseID("admin", adminID)
			if err != nil {
				return err
			}
			rates, err := env.occupancy.GetOccupancyRates(cmd.Context(), admin)
			if err != nil {
				return err
			}
			return printJSON(cmd, rates)
		},
	}
	cmd.Flags().StringVar(&adminID, "admin", "", "admin id")
	cmd.Flags().StringVar(&buildingID, "building", "", "building id")
	return cmd
}

func paymentsCmd(env *cliEnv) *cobra.Command {
	var (
		adminID string
		top     int
	)
	cmd := &cobra.Command{
		Use:   "payments",
		Short: "Payment statistics, defaulters, rankings and monthly collection",
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := parseID("admin", adminID)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			stats, err := env.payments.GetPaymentStatistics(ctx, admin)
			if err != nil {
				return err
			}
			defaulters, err := env.payments.GetTopDefaulters(ctx, admin)
			if err != nil {
				return err
			}
			rankings, err := env.payments.GetTopDebtorsAndPayers(ctx, admin, top)
			if err != nil {
				return err
			}
			monthly, err := env.payments.GetMonthlyCollectionRates(ctx, admin)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]any{
				"statistics":     stats,
				"top_defaulters": defaulters,
				"rankings":       rankings,
				"monthly":        monthly,
			})
		},
	}
	cmd.Flags().StringVar(&adminID, "admin", "", "admin id")
	cmd.Flags().IntVar(&top, "top", 0, "ranking size (default 5, max 50)")
	return cmd
}

func complaintsCmd(env *cliEnv) *cobra.Command {
	var adminID, buildingID string
	cmd := &cobra.Command{
		Use:   "complaints",
		Short: "Complaint analytics for an admin portfolio or one building",
		RunE: func(cmd *cobra.Command, args []string) error {
			if buildingID != "" {
				id, err := parseID("building", buildingID)
				if err != nil {
					return err
				}
				analytics, err := env.complaints.GetBuildingComplaintAnalytics(cmd.Context(), id)
				if err != nil {
					return err
				}
				return printJSON(cmd, analytics)
			}
			admin, err := parseID("admin", adminID)
			if err != nil {
				return err
			}
			analytics, err := env.complaints.GetComplaintAnalytics(cmd.Context(), admin)
			if err != nil {
				return err
			}
			return printJSON(cmd, analytics)
		},
	}
	cmd.Flags().StringVar(&adminID, "admin", "", "admin id")
	cmd.Flags().StringVar(&buildingID, "building", "", "building id")
	return cmd
}

func meetingsCmd(env *cliEnv) *cobra.Command {
	var adminID string
	cmd := &cobra.Command{
		Use:   "meetings",
		Short: "Meeting statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			admin, err := parseID("admin", adminID)
			if err != nil {
				return err
			}
			stats, err := env.meetings.GetMeetingStatistics(cmd.Context(), admin)
			if err != nil {
				return err
			}
			return printJSON(cmd, stats)
		},
	}
	cmd.Flags().StringVar(&adminID, "admin", "", "admin id")
	return cmd
}

func surveyCmd(env *cliEnv) *cobra.Command {
	var (
		surveyID string
		sync     bool
	)
	cmd := &cobra.Command{
		Use:   "survey",
		Short: "Survey statistics, or --sync to rewrite result snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sync {
				n, err := env.surveys.SyncResultSnapshots(cmd.Context())
				if perr := printJSON(cmd, map[string]int{"synced": n}); perr != nil {
					return errors.Join(err, perr)
				}
				return err
			}
			id, err := parseID("survey", surveyID)
			if err != nil {
				return err
			}
			stats, err := env.surveys.GetSurveyStatistics(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(cmd, stats)
		},
	}
	cmd.Flags().StringVar(&surveyID, "survey", "", "survey id")
	cmd.Flags().BoolVar(&sync, "sync", false, "sync result snapshots of every survey")
	return cmd
}
