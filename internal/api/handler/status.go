package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/espin086/sales-forecast-api/internal/api/response"
	"github.com/espin086/sales-forecast-api/internal/forecast"
	"github.com/espin086/sales-forecast-api/internal/store"
	"github.com/espin086/sales-forecast-api/pkg/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// OverviewReader defines the service-summary interface the handler depends on.
type OverviewReader interface {
	Overview(ctx context.Context) (*forecast.Overview, error)
}

// JobReader defines the single-job lookup interface the handler depends on.
type JobReader interface {
	Job(ctx context.Context, id uuid.UUID) (*models.Job, error)
}

// NewStatusHandler returns an http.HandlerFunc for GET /status.
func NewStatusHandler(svc OverviewReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		overview, err := svc.Overview(r.Context())
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}
		response.JSON(w, overview)
	}
}

// NewJobStatusHandler returns an http.HandlerFunc for GET /status/{jobID}.
// Unknown and malformed ids both read as "no such job", matching how clients
// treat the identifier as opaque.
func NewJobStatusHandler(svc JobReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rawID := chi.URLParam(r, "jobID")
		id, err := uuid.Parse(rawID)
		if err != nil {
			response.Error(w, http.StatusNotFound, "JOB_NOT_FOUND",
				"Job not found", map[string]string{"job_id": rawID})
			return
		}

		job, err := svc.Job(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "JOB_NOT_FOUND",
					"Job not found", map[string]string{"job_id": rawID})
				return
			}
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		response.JSON(w, job)
	}
}
