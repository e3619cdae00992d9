package constants

import "time"

// Report section sizes
const (
	RecentSurveysLimit       = 10
	RecentComplaintsLimit    = 10
	RecentTenantsLimit       = 10
	RecentNotificationsLimit = 10
	RecentMeetingsLimit      = 10
	TopDefaultersLimit       = 10

	ExpiringContractsWindowDays = 30
	FinancialSummaryMonths      = 6
)

// Payment rankings
const (
	DefaultRankingTopN = 5
	MaxRankingTopN     = 50
)

// Complaint detail paging
const (
	DefaultComplaintPageSize = 20
	MaxComplaintPageSize     = 100
)

// Report aggregation
const (
	// DefaultSectionTimeout applies when the report_section_timeout_ms flag
	// is unset or non-positive.
	DefaultSectionTimeout = 5 * time.Second
	ReportRequestTimeout  = 20 * time.Second
)

// Survey snapshot job
const (
	SurveySnapshotCronSpec   = "*/10 * * * *" // every 10 minutes, UTC
	SurveySnapshotJobTimeout = 2 * time.Minute
)

// BusinessTimezone anchors month buckets and "now" comparisons.
const BusinessTimezone = "Europe/Istanbul"
