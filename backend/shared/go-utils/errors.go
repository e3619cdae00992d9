package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors the engines return for missing records. Controllers
// never see these directly; services wrap them in an AppError.
var (
	ErrAdminNotFound     = errors.New("admin_not_found")
	ErrBuildingNotFound  = errors.New("building_not_found")
	ErrComplaintNotFound = errors.New("complaint_not_found")
	ErrSurveyNotFound    = errors.New("survey_not_found")

	ErrRowVersionConflict = errors.New("row_version_conflict")
)

// AppError carries an HTTP status and a public code from services to
// controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NotFound builds the 404 AppError for a missing record.
func NotFound(message string, err error) *AppError {
	return &AppError{
		StatusCode: http.StatusNotFound,
		Code:       ErrCodeNotFound,
		Message:    message,
		Err:        err,
	}
}

// HandleAppError writes err as JSON, falling back to a 500 for anything that
// is not an AppError.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
