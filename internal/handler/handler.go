package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"food-dispatch/internal/model"

	"github.com/rs/zerolog"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Log the error but don't expose it to the client
		return
	}
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, code, message string, logger zerolog.Logger) {
	logger.Error().Str("code", code).Str("error", message).Int("status", status).Msg("handler error")
	writeJSON(w, status, model.ErrorResponse{Error: code, Message: message})
}

// writeServiceError maps a service failure to an HTTP response. Typed domain
// errors become 4xx (or 503 for a geocoder outage); anything else is a 500.
func writeServiceError(w http.ResponseWriter, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if errors.As(err, &domainErr) {
		status := http.StatusBadRequest
		if domainErr.Code == model.ErrCodeGeocoderUnavailable {
			status = http.StatusServiceUnavailable
		}
		writeError(w, status, domainErr.Code, domainErr.Message, logger)
		return
	}

	writeError(w, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
}
