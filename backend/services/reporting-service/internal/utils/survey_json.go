package utils

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	sharedutils "github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const questionsSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"properties": {
			"id":      {"type": ["string", "null"]},
			"text":    {"type": "string"},
			"type":    {"type": "string"},
			"options": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["text"]
	}
}`

const resultsSchema = `{
	"type": "object",
	"additionalProperties": {
		"type": "object",
		"additionalProperties": {"type": "integer", "minimum": 0}
	}
}`

var (
	compiledQuestionsSchema = jsonschema.MustCompileString("survey-questions.json", questionsSchema)
	compiledResultsSchema   = jsonschema.MustCompileString("survey-results.json", resultsSchema)
)

// NullAnswer is recorded when a submitted answer is missing.
const NullAnswer = "null"

// SurveyQuestion is one entry of a survey's questions blob.
type SurveyQuestion struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Type    string   `json:"type,omitempty"`
	Options []string `json:"options,omitempty"`
}

// SurveyResults maps question id -> answer text -> count.
type SurveyResults map[string]map[string]int

// ValidateSurveyQuestions checks raw against the questions schema.
func ValidateSurveyQuestions(raw string) error {
	return validateBlob(compiledQuestionsSchema, raw)
}

// ParseSurveyQuestions decodes a questions blob. Malformed or schema-invalid
// input yields an empty list. Entries without an id get "q<position>".
func ParseSurveyQuestions(raw string) []SurveyQuestion {
	if err := ValidateSurveyQuestions(raw); err != nil {
		sharedutils.Logger.WithError(err).Debug("Ignoring malformed survey questions blob")
		return []SurveyQuestion{}
	}
	var out []SurveyQuestion
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return []SurveyQuestion{}
	}
	for i := range out {
		if strings.TrimSpace(out[i].ID) == "" {
			out[i].ID = SyntheticQuestionID(i)
		}
	}
	return out
}

func SyntheticQuestionID(index int) string {
	return fmt.Sprintf("q%d", index+1)
}

// ParseSurveyResults decodes a results blob. Malformed or schema-invalid
// input yields an empty map.
func ParseSurveyResults(raw string) SurveyResults {
	if err := validateBlob(compiledResultsSchema, raw); err != nil {
		sharedutils.Logger.WithError(err).Debug("Ignoring malformed survey results blob")
		return SurveyResults{}
	}
	out := SurveyResults{}
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return SurveyResults{}
	}
	return out
}

// Encode renders results with sorted keys so unchanged counts produce an
// unchanged blob.
func (r SurveyResults) Encode() (string, error) {
	if r == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]map[string]int(r))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Add increments answer under questionID.
func (r SurveyResults) Add(questionID, answer string, n int) {
	answers, ok := r[questionID]
	if !ok {
		answers = map[string]int{}
		r[questionID] = answers
	}
	answers[answer] += n
}

// Popular returns the highest-count answer of a question. Ties go to the
// lexicographically smaller answer. ok is false when nothing was recorded.
func (r SurveyResults) Popular(questionID string) (answer string, count int, ok bool) {
	answers := r[questionID]
	keys := make([]string, 0, len(answers))
	for a := range answers {
		keys = append(keys, a)
	}
	sort.Strings(keys)
	for _, a := range keys {
		if c := answers[a]; !ok || c > count {
			answer, count, ok = a, c, true
		}
	}
	return answer, count, ok
}

func validateBlob(schema *jsonschema.Schema, raw string) error {
	if strings.TrimSpace(raw) == "" {
		return fmt.Errorf("empty blob")
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return fmt.Errorf("blob is not valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("blob schema validation failed: %w", err)
	}
	return nil
}
