package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/espin086/sales-forecast-api/internal/api/response"
	"github.com/espin086/sales-forecast-api/internal/forecast"
	"github.com/espin086/sales-forecast-api/internal/store"
	"github.com/espin086/sales-forecast-api/pkg/models"
)

// JobLister defines the listing interface the handler depends on.
type JobLister interface {
	ListJobs(ctx context.Context, filter store.JobFilter) (*forecast.ListResult, error)
}

// NewListJobsHandler returns an http.HandlerFunc for GET /jobs.
// Query parameters: status (one of pending, processing, completed, failed)
// and limit (a positive integer; absent or non-positive means no cap).
func NewListJobsHandler(svc JobLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := store.JobFilter{
			Status: r.URL.Query().Get("status"),
		}

		if filter.Status != "" && !models.IsValidJobStatus(filter.Status) {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"status must be one of pending, processing, completed, failed", nil)
			return
		}

		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil {
				response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
					"limit must be an integer", nil)
				return
			}
			filter.Limit = limit
		}

		result, err := svc.ListJobs(r.Context(), filter)
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		response.JSON(w, result)
	}
}
