package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"scaffoldrent-backend/internal/logger"
	"scaffoldrent-backend/internal/repository"
	"scaffoldrent-backend/internal/service"
	"scaffoldrent-backend/internal/settlement"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

// writeError maps the error taxonomy onto HTTP statuses: bad input is 400,
// terminal-state conflicts are 409, unknown records are 404.
func writeError(w http.ResponseWriter, err error) {
	var validationErr *settlement.ValidationError
	var preconditionErr *settlement.PreconditionError

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validationErr.Error()})
	case errors.As(err, &preconditionErr):
		writeJSON(w, http.StatusConflict, errorResponse{Error: preconditionErr.Error()})
	case errors.Is(err, repository.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
	default:
		logger.Error("Request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &settlement.ValidationError{Reason: "invalid request body: " + err.Error()}
	}
	return nil
}
