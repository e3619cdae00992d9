package models

import (
	"time"

	"github.com/google/uuid"
)

type Meeting struct {
	ID             uuid.UUID `json:"id"`
	BuildingID     uuid.UUID `json:"building_id"`
	OrganizedByID  uuid.UUID `json:"organized_by_id"`
	Title          string    `json:"title"`
	Description    string    `json:"description,omitempty"`
	Location       string    `json:"location,omitempty"`
	MeetingDate    time.Time `json:"meeting_date"`
	IsCancelled    bool      `json:"is_cancelled"`
	AttendanceRate float64   `json:"attendance_rate"`
	CreatedAt      time.Time `json:"created_at"`
}

// MeetingListing is a meeting joined with its building name.
type MeetingListing struct {
	Meeting
	BuildingName string `json:"building_name"`
}
