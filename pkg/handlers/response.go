package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bayanihan-labs/esg-engine/pkg/apperrors"
)

// ApiResponse wraps data in the envelope expected by API clients.
type ApiResponse struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// ServiceErrorResponse maps a service-layer error onto the HTTP status that
// fits it: missing entities and reference keys are 404, rejected input is
// 400, malformed measurements are 422, out-of-order wizard steps are 409, and
// anything unrecognized is a 500.
func ServiceErrorResponse(w http.ResponseWriter, err error, errorCode string) error {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return ErrorResponse(w, http.StatusNotFound, errorCode, err.Error())
	case errors.Is(err, apperrors.ErrValidation):
		return ErrorResponse(w, http.StatusBadRequest, errorCode, err.Error())
	case errors.Is(err, apperrors.ErrParse):
		return ErrorResponse(w, http.StatusUnprocessableEntity, errorCode, err.Error())
	case errors.Is(err, apperrors.ErrInvalidState):
		return ErrorResponse(w, http.StatusConflict, errorCode, err.Error())
	default:
		return ErrorResponse(w, http.StatusInternalServerError, errorCode, err.Error())
	}
}
