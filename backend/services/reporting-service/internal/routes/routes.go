package routes

const (
	Health = "/health"

	AdminOverview           = "/api/v1/reports/admins/{adminId}/overview"
	AdminOccupancy          = "/api/v1/reports/admins/{adminId}/occupancy"
	BuildingOccupancy       = "/api/v1/reports/buildings/{buildingId}/occupancy"
	AdminPayments           = "/api/v1/reports/admins/{adminId}/payments"
	AdminTopDefaulters      = "/api/v1/reports/admins/{adminId}/payments/top-defaulters"
	AdminPaymentRankings    = "/api/v1/reports/admins/{adminId}/payments/rankings"
	AdminMonthlyCollections = "/api/v1/reports/admins/{adminId}/payments/monthly"
	AdminComplaints         = "/api/v1/reports/admins/{adminId}/complaints"
	BuildingComplaints      = "/api/v1/reports/buildings/{buildingId}/complaints"
	BuildingComplaintList   = "/api/v1/reports/buildings/{buildingId}/complaints/details"
	ComplaintDetail         = "/api/v1/reports/complaints/{complaintId}"
	AdminMeetings           = "/api/v1/reports/admins/{adminId}/meetings"
	SurveyStatistics        = "/api/v1/reports/surveys/{surveyId}"
	SurveyResponses         = "/api/v1/reports/surveys/{surveyId}/responses"
)
