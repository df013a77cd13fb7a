package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/topio-market/topio-registry/internal/model"
	"github.com/topio-market/topio-registry/internal/pid"
)

// ErrorResponse is the error envelope returned by every failing endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("Failed to encode JSON response")
	}
}

// WriteError writes the standard error envelope.
func WriteError(w http.ResponseWriter, statusCode int, message string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Code:    statusCode,
		Message: message,
	})
}

// WriteValidationError writes a 422 Unprocessable Entity response.
func WriteValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnprocessableEntity, message)
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}

// WriteDomainError maps registry errors onto wire statuses. Malformed and
// unknown identifiers both read as 404; conflicts surface as 500, matching
// the storage-fault contract of the registration endpoints.
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		WriteValidationError(w, err.Error())
	case errors.Is(err, model.ErrInvalidReference):
		WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrNotFound), errors.Is(err, pid.ErrMalformed):
		WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrConflict):
		log.Error().Stack().Err(err).Str("path", r.URL.Path).Msg("registry conflict")
		WriteInternalError(w, "conflicting registration already exists")
	default:
		log.Error().Stack().Err(err).Str("path", r.URL.Path).Msg("registry request failed")
		WriteInternalError(w, "registry storage is unavailable, try again later")
	}
}
