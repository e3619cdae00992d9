package main

import (
	"context"
	"net/http"
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/app"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/config"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/constants"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/controllers"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/routes"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/services/reporting-service/internal/services"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-repositories"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-seeding"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/gorilla/mux"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
)

func main() {
	utils.InitLogger(config.AppName)
	cfg := config.LoadConfig()

	application, err := app.NewApp(cfg)
	if err != nil {
		utils.Logger.Fatal("Failed to initialize reporting-service:", err)
	}
	defer application.Close()

	// Repositories
	userRepo := repositories.NewUserRepository(application.DB)
	buildingRepo := repositories.NewBuildingRepository(application.DB)
	apartmentRepo := repositories.NewApartmentRepository(application.DB)
	paymentRepo := repositories.NewPaymentRepository(application.DB)
	complaintRepo := repositories.NewComplaintRepository(application.DB)
	meetingRepo := repositories.NewMeetingRepository(application.DB)
	surveyRepo := repositories.NewSurveyRepository(application.DB)
	contractRepo := repositories.NewContractRepository(application.DB)
	notificationRepo := repositories.NewNotificationRepository(application.DB)

	if cfg.LDFlag_SeedDbWithTestData {
		err := seeding.SeedDemoPortfolio(context.Background(), seeding.Repositories{
			Users:         userRepo,
			Buildings:     buildingRepo,
			Apartments:    apartmentRepo,
			Payments:      paymentRepo,
			Complaints:    complaintRepo,
			Meetings:      meetingRepo,
			Surveys:       surveyRepo,
			Contracts:     contractRepo,
			Notifications: notificationRepo,
		}, time.Now().UTC())
		if err != nil {
			utils.Logger.Fatal("Failed to seed demo portfolio:", err)
		}
	}

	// Services
	occupancyService := services.NewOccupancyService(buildingRepo, apartmentRepo)
	paymentService := services.NewPaymentStatsService(buildingRepo, paymentRepo)
	complaintService := services.NewComplaintAnalyticsService(buildingRepo, complaintRepo)
	meetingService := services.NewMeetingStatsService(buildingRepo, meetingRepo, cfg.LDFlag_ScopeMeetingStatsToAdmin)
	surveyService := services.NewSurveyStatsService(surveyRepo)
	reportService := services.NewReportService(services.ReportRepositories{
		Buildings:     buildingRepo,
		Apartments:    apartmentRepo,
		Payments:      paymentRepo,
		Complaints:    complaintRepo,
		Meetings:      meetingRepo,
		Surveys:       surveyRepo,
		Contracts:     contractRepo,
		Notifications: notificationRepo,
	}, paymentService, complaintService, meetingService, cfg.SectionTimeout())

	// Controllers
	healthController := controllers.NewHealthController(application.DB)
	reportController := controllers.NewReportController(reportService)
	statisticsController := controllers.NewStatisticsController(occupancyService, paymentService, meetingService)
	complaintController := controllers.NewComplaintController(complaintService)
	surveyController := controllers.NewSurveyController(surveyService)

	// Router setup
	router := mux.NewRouter()
	router.HandleFunc(routes.Health, healthController.HealthCheckHandler).Methods(http.MethodGet)

	api := router.NewRoute().Subrouter()
	api.Use(requestTimeout(constants.ReportRequestTimeout))
	api.HandleFunc(routes.AdminOverview, reportController.GetAdminOverviewHandler).Methods(http.MethodGet)
	api.HandleFunc(routes.AdminOccupancy, statisticsController.GetAdminOccupancyHandler).Methods(http.MethodGet)
	api.HandleFunc(routes.BuildingOccupancy, statisticsController.GetBuildingOccupancyHandler).Methods(http.MethodGet)
	api.HandleFunc(routes.AdminPayments, statisticsController.GetPaymentStatisticsHandler).Methods(http.MethodGet)
	api.HandleFunc(routes.AdminTopDefaulters, statisticsController.GetTopDefaultersHandler).Methods(http.MethodGet)
	api.HandleFunc(routes.AdminPaymentRankings, statisticsController.GetPaymentRankingsHandler).Methods(http.MethodGet)
	api.HandleFunc(routes.AdminMonthlyCollections, statisticsController.GetMonthlyCollectionRatesHandler).Methods(http.MethodGet)
	api.HandleFunc(routes.AdminMeetings, statisticsController.GetMeetingStatisticsHandler).Methods(http.MethodGet)
	api.HandleFunc(routes.AdminComplaints, complaintController.GetAdminComplaintAnalyticsHandler).Methods(http.MethodGet)
	api.HandleFunc(routes.BuildingComplaints, complaintController.GetBuildingComplaintAnalyticsHandler).Methods(http.MethodGet)
	api.HandleFunc(routes.BuildingComplaintList, complaintController.ListComplaintDetailsHandler).Methods(http.MethodGet)
	api.HandleFunc(routes.ComplaintDetail, complaintController.GetComplaintDetailHandler).Methods(http.MethodGet)
	api.HandleFunc(routes.SurveyStatistics, surveyController.GetSurveyStatisticsHandler).Methods(http.MethodGet)
	api.HandleFunc(routes.SurveyResponses, surveyController.SubmitSurveyResponseHandler).Methods(http.MethodPost)

	// Survey result snapshots
	c := cron.New(cron.WithLocation(time.UTC))
	_, err = c.AddFunc(constants.SurveySnapshotCronSpec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), constants.SurveySnapshotJobTimeout)
		defer cancel()
		synced, err := surveyService.SyncResultSnapshots(ctx)
		if err != nil {
			utils.Logger.WithError(err).Error("Survey snapshot sync finished with errors")
		}
		utils.Logger.Infof("Survey snapshot sync updated %d surveys", synced)
	})
	if err != nil {
		utils.Logger.WithError(err).Fatal("Failed to schedule survey snapshot cron")
	}
	c.Start()
	defer c.Stop()

	allowedOrigins := []string{cfg.AppUrl}
	if !cfg.LDFlag_CORSHighSecurity {
		allowedOrigins = append(allowedOrigins, utils.CORSLowSecurityAllowedOriginLocalhost)
	}

	co := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept-Language"},
		AllowCredentials: true,
	})

	utils.Logger.Infof("Starting %s on port: %s", cfg.AppName, cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, co.Handler(router)); err != nil {
		utils.Logger.Fatal("reporting-service failed to start:", err)
	}
}

func requestTimeout(d time.Duration) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
