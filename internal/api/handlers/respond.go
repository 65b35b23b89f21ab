package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/vacationvibes/places-backend/internal/infrastructure/observability"
	apperrors "github.com/vacationvibes/places-backend/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps domain errors to HTTP status codes. Internal
// errors are logged and masked.
func respondWithAppError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("Unhandled error")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
		return
	}

	switch appErr.Type {
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeInvalidReference:
		respondWithError(w, http.StatusBadRequest, appErr.Message)
	case apperrors.ErrorTypeUnauthorized:
		respondWithError(w, http.StatusUnauthorized, appErr.Message)
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, appErr.Message)
	case apperrors.ErrorTypeConflict:
		respondWithError(w, http.StatusConflict, appErr.Message)
	case apperrors.ErrorTypeUnavailable:
		respondWithError(w, http.StatusServiceUnavailable, appErr.Message)
	default:
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("Internal error")
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}
