package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	shared_dtos "github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-dtos"
	"github.com/Tunacodin/ApartmentManagementApp-Backend-sub001/backend/shared/go-utils"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// pathUUID reads a uuid path variable, returning a 400 AppError when it is
// missing or malformed.
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    fmt.Sprintf("Invalid %s", name),
			Err:        err,
		}
	}
	return id, nil
}

// queryInt reads an optional integer query parameter, 0 when absent.
func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeInvalidPayload,
			Message:    fmt.Sprintf("Query parameter '%s' must be an integer", name),
			Err:        err,
		}
	}
	return n, nil
}

// respondValidation writes a validation_error with one detail per failed
// field.
func respondValidation(w http.ResponseWriter, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", formatValidationErrors(verrs), err)
		return
	}
	utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
}

func formatValidationErrors(errs validator.ValidationErrors) []shared_dtos.ValidationErrorDetail {
	details := make([]shared_dtos.ValidationErrorDetail, 0, len(errs))
	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field '%s' is required", err.Field())
		case "uuid":
			message = fmt.Sprintf("Field '%s' must be a valid UUID", err.Field())
		case "min", "gte":
			message = fmt.Sprintf("Field '%s' must be at least %s", err.Field(), err.Param())
		case "max", "lte":
			message = fmt.Sprintf("Field '%s' must not exceed %s", err.Field(), err.Param())
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", err.Field(), err.Tag())
		}
		details = append(details, shared_dtos.ValidationErrorDetail{
			Field:   err.Field(),
			Message: message,
			Code:    "validation_" + err.Tag(),
		})
	}
	return details
}
