package dtos

import (
	"time"

	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-models"
)

type ComplaintAnalytics struct {
	Total                  int     `json:"total"`
	Open                   int     `json:"open"`
	InProgress             int     `json:"in_progress"`
	Resolved               int     `json:"resolved"`
	Rejected               int     `json:"rejected"`
	Closed                 int     `json:"closed"`
	AverageResolutionHours float64 `json:"average_resolution_hours"`
}

type ComplaintDetail struct {
	ID            string                     `json:"id"`
	BuildingID    string                     `json:"building_id"`
	BuildingName  string                     `json:"building_name"`
	UserID        string                     `json:"user_id"`
	SubmitterName string                     `json:"submitter_name"`
	Title         string                     `json:"title"`
	Description   string                     `json:"description"`
	Status        models.ComplaintStatusType `json:"status"`
	CreatedAt     time.Time                  `json:"created_at"`
	ResolvedAt    *time.Time                 `json:"resolved_at,omitempty"`
}

type ComplaintDetailPage struct {
	Items  []ComplaintDetail `json:"items"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// ListComplaintDetailsRequest holds the paging query parameters.
type ListComplaintDetailsRequest struct {
	Limit  int `validate:"gte=0,lte=100"`
	Offset int `validate:"gte=0"`
}
