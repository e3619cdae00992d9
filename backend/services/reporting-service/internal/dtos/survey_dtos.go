package dtos

import "time"

type QuestionStatistics struct {
	QuestionID    string         `json:"question_id"`
	Text          string         `json:"text"`
	AnswerCounts  map[string]int `json:"answer_counts"`
	PopularAnswer *string        `json:"popular_answer,omitempty"`
}

// SurveyStatistics is derived from a survey's accumulated answers.
// CompletionRate is the ratio of answered questions to total responses,
// not a percentage.
type SurveyStatistics struct {
	SurveyID                string                    `json:"survey_id"`
	Title                   string                    `json:"title"`
	TotalResponses          int                       `json:"total_responses"`
	CompletionRate          float64                   `json:"completion_rate"`
	PerQuestionAnswerCounts map[string]map[string]int `json:"per_question_answer_counts"`
	Questions               []QuestionStatistics      `json:"questions"`
	PopularAnswers          []string                  `json:"popular_answers"`
	LastResponseDate        *time.Time                `json:"last_response_date,omitempty"`
}

// SubmitSurveyResponseRequest maps question id to answer. A null answer is
// recorded as "null".
type SubmitSurveyResponseRequest struct {
	Answers map[string]*string `json:"answers" validate:"required,min=1,dive,keys,required,max=100,endkeys"`
}

type SurveyResponseAccepted struct {
	SurveyID       string `json:"survey_id"`
	TotalResponses int    `json:"total_responses"`
}
