package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	pkgerrors "webgraphy-backend/pkg/errors"
)

// respondJSON writes data as a JSON response with the given status
func respondJSON(w http.ResponseWriter, logger *zap.Logger, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode response", zap.Error(err))
	}
}

// respondError maps an error to its HTTP status and writes an error payload.
// AppError types carry their own status; anything else is a 500.
func respondError(w http.ResponseWriter, logger *zap.Logger, err error) {
	status := http.StatusInternalServerError
	message := "internal server error"

	if appErr := pkgerrors.GetAppError(err); appErr != nil {
		status = appErr.HTTPStatus
		message = appErr.Message
	}

	respondJSON(w, logger, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}

// respondErrorMessage writes an error payload with an explicit status
func respondErrorMessage(w http.ResponseWriter, logger *zap.Logger, status int, message string) {
	respondJSON(w, logger, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"code":    status,
	})
}

// parseIntParam parses an optional integer query parameter, falling back to
// def when the parameter is absent. A malformed value is a validation error.
func parseIntParam(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.NewValidationError(name + " must be an integer")
	}

	return value, nil
}
