package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/espin086/sales-forecast-api/internal/api/response"
	"github.com/espin086/sales-forecast-api/pkg/models"
)

// Submitter defines the submission interface the handler depends on.
type Submitter interface {
	Submit(ctx context.Context, input models.PredictionInput) (*models.Job, error)
}

// NewPredictHandler returns an http.HandlerFunc for POST /predict. It
// validates the payload, submits the job, and returns the job id immediately
// with the pending record; clients poll GET /status/{jobID} for the result.
func NewPredictHandler(svc Submitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var data map[string]any
		dec := json.NewDecoder(r.Body)
		dec.UseNumber()
		if err := dec.Decode(&data); err != nil || data == nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"No data provided or invalid JSON", nil)
			return
		}

		var missing []string
		for _, field := range []string{"date", "store", "item"} {
			if _, ok := data[field]; !ok {
				missing = append(missing, field)
			}
		}
		if len(missing) > 0 {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"Missing required fields: "+strings.Join(missing, ", "), nil)
			return
		}

		date, ok := data["date"].(string)
		if !ok {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"Invalid date format. Use YYYY-MM-DD", nil)
			return
		}
		if _, err := time.Parse("2006-01-02", date); err != nil {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"Invalid date format. Use YYYY-MM-DD", nil)
			return
		}

		storeID, ok := positiveInt(data["store"])
		if !ok {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"Store must be a positive integer", nil)
			return
		}

		itemID, ok := positiveInt(data["item"])
		if !ok {
			response.Error(w, http.StatusBadRequest, "INVALID_REQUEST",
				"Item must be a positive integer", nil)
			return
		}

		job, err := svc.Submit(r.Context(), models.PredictionInput{
			Date:  date,
			Store: storeID,
			Item:  itemID,
		})
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "INTERNAL_ERROR",
				"An unexpected error occurred", nil)
			return
		}

		response.JSON(w, submitResponse{
			JobID:       job.ID.String(),
			Status:      job.Status,
			SubmittedAt: job.SubmittedAt,
		})
	}
}

type submitResponse struct {
	JobID       string    `json:"job_id"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// positiveInt coerces a store or item id to a positive integer. Numbers and
// numeric strings are accepted; fractional values truncate toward zero, so
// 1.5 and "1.5" both resolve to 1. Zero, negatives, and non-numeric values
// are rejected.
func positiveInt(v any) (int, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}

	i := int(f)
	if i <= 0 {
		return 0, false
	}
	return i, true
}
