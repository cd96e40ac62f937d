package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/hszk-dev/vidtube/internal/domain/model"
	"github.com/hszk-dev/vidtube/internal/domain/repository"
	"github.com/hszk-dev/vidtube/internal/pagination"
	"github.com/hszk-dev/vidtube/internal/usecase"
)

func JSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, "failed to encode response", http.StatusInternalServerError)
		}
	}
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func Error(w http.ResponseWriter, status int, err string, message string) {
	JSON(w, status, ErrorResponse{
		Error:   err,
		Message: message,
	})
}

// validationErrors are reported to the client verbatim as 400s.
var validationErrors = []error{
	model.ErrInvalidID,
	model.ErrInvalidUserID,
	model.ErrInvalidTarget,
	model.ErrEmptyContent,
	model.ErrEmptyTitle,
	model.ErrTitleTooLong,
	model.ErrEmptyName,
	model.ErrEmptyDescription,
	model.ErrMissingMedia,
	model.ErrNoChanges,
	usecase.ErrSelfSubscription,
}

// writeServiceError maps service errors onto the HTTP error contract.
// Missing, hidden and foreign resources all surface as the same 404.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			Error(w, http.StatusBadRequest, "invalid_request", target.Error())
			return
		}
	}

	switch {
	case errors.Is(err, usecase.ErrUnauthenticated):
		Error(w, http.StatusUnauthorized, "unauthenticated", "Authentication required")
	case errors.Is(err, repository.ErrNotFound):
		Error(w, http.StatusNotFound, "not_found", "Resource not found")
	default:
		slog.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		Error(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}

// pathID parses a UUID route parameter.
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	return model.ParseID(chi.URLParam(r, name))
}

// pageRequest reads page and limit query parameters. Malformed values fall
// back to the defaults like any other out-of-range value.
func pageRequest(r *http.Request) pagination.Request {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	return pagination.NewRequest(page, limit)
}

// decodeJSON decodes the request body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		Error(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return false
	}
	return true
}
