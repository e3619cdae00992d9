package models

import (
	"time"

	"github.com/google/uuid"
)

// Survey stores its questions as a JSON text blob. Answer counts accumulate
// in survey_answer_counts; Results is a periodically rewritten snapshot of
// those counts kept for older clients, so the row is versioned.
type Survey struct {
	Versioned

	ID              uuid.UUID  `json:"id"`
	BuildingID      uuid.UUID  `json:"building_id"`
	CreatedByID     uuid.UUID  `json:"created_by_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Questions       string     `json:"questions"`
	Results         string     `json:"results"`
	TotalResponses  int        `json:"total_responses"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         time.Time  `json:"end_date"`
	IsActive        bool       `json:"is_active"`
	LastResponseAt  *time.Time `json:"last_response_at,omitempty"`
	ResultsSyncedAt *time.Time `json:"results_synced_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (s *Survey) GetID() string { return s.ID.String() }

// SurveyAnswerCount is one row of the per-answer aggregate table.
type SurveyAnswerCount struct {
	SurveyID   uuid.UUID `json:"survey_id"`
	QuestionID string    `json:"question_id"`
	Answer     string    `json:"answer"`
	Count      int       `json:"count"`
}

// SurveyListing is a survey joined with its building name.
type SurveyListing struct {
	Survey
	BuildingName string `json:"building_name"`
}
