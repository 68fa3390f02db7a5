package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mlourenco/stockfolio-backend/internal/domain"
)

// Common error codes
const (
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeInternalError = "INTERNAL_ERROR"
)

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// APIError carries a machine-readable code and a human-readable message
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: APIError{Code: code, Message: message},
	})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// parseJSONBody parses a JSON request body
func parseJSONBody(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// mapServiceError maps service errors to an HTTP status and error code
func mapServiceError(err error) (int, string) {
	if errors.Is(err, domain.ErrNotFound) {
		return http.StatusNotFound, ErrCodeNotFound
	}
	return http.StatusInternalServerError, ErrCodeInternalError
}
