package models

import (
	"time"

	"github.com/google/uuid"
)

type ComplaintStatusType string

const (
	ComplaintStatusOpen       ComplaintStatusType = "OPEN"
	ComplaintStatusInProgress ComplaintStatusType = "IN_PROGRESS"
	ComplaintStatusResolved   ComplaintStatusType = "RESOLVED"
	ComplaintStatusRejected   ComplaintStatusType = "REJECTED"
	ComplaintStatusClosed     ComplaintStatusType = "CLOSED"
)

// ComplaintStatusFromLegacy maps the old nullable integer status column
// (null = open, 0 = in progress, 1 = resolved) onto the enumeration. Unknown
// codes are treated as open.
func ComplaintStatusFromLegacy(code *int) ComplaintStatusType {
	if code == nil {
		return ComplaintStatusOpen
	}
	switch *code {
	case 0:
		return ComplaintStatusInProgress
	case 1:
		return ComplaintStatusResolved
	default:
		return ComplaintStatusOpen
	}
}

// IsActive is true while the complaint still needs attention.
func (s ComplaintStatusType) IsActive() bool {
	return s == ComplaintStatusOpen || s == ComplaintStatusInProgress
}

type Complaint struct {
	ID          uuid.UUID           `json:"id"`
	BuildingID  uuid.UUID           `json:"building_id"`
	UserID      uuid.UUID           `json:"user_id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      ComplaintStatusType `json:"status"`

	// SubmitterName is the name snapshot taken when the complaint was filed.
	SubmitterName *string `json:"submitter_name,omitempty"`

	CreatedAt    time.Time  `json:"created_at"`
	ResolvedAt   *time.Time `json:"resolved_at,omitempty"`
	ResolvedByID *uuid.UUID `json:"resolved_by_id,omitempty"`
}

// ComplaintDetail joins a complaint with its building and submitting user.
// The user columns are empty when the user row no longer exists.
type ComplaintDetail struct {
	Complaint
	BuildingName       string `json:"building_name"`
	SubmitterFirstName string `json:"-"`
	SubmitterLastName  string `json:"-"`
}

// SubmitterFullName is the joined user's name, empty when the user is gone.
func (d *ComplaintDetail) SubmitterFullName() string {
	return JoinName(d.SubmitterFirstName, d.SubmitterLastName)
}
