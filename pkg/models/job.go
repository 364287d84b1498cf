// Package models contains shared data models used across the forecast API codebase.
package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// JobStatuses lists every job status in lifecycle order. Reporting iterates
// this so counts always include statuses with zero jobs.
var JobStatuses = []string{
	JobStatusPending,
	JobStatusProcessing,
	JobStatusCompleted,
	JobStatusFailed,
}

// IsValidJobStatus reports whether s is one of the known job statuses.
func IsValidJobStatus(s string) bool {
	for _, status := range JobStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminalJobStatus reports whether s permits no further transitions.
func IsTerminalJobStatus(s string) bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// PredictionInput is a validated prediction request: which store, which item,
// and the date to forecast sales for. The job machinery treats it as opaque —
// only the predictor interprets it.
type PredictionInput struct {
	Date  string `json:"date"`
	Store int    `json:"store"`
	Item  int    `json:"item"`
}

// PredictionResult is the model output for a completed job, echoing the input
// alongside the forecast.
type PredictionResult struct {
	PredictedSales float64 `json:"predicted_sales"`
	Date           string  `json:"date"`
	Store          int     `json:"store"`
	Item           int     `json:"item"`
}

// Job tracks one async prediction request. The API returns a job_id on
// POST /predict; the client polls GET /status/{job_id} until the status is
// completed or failed. Exactly one of Result/Error is set once terminal.
type Job struct {
	ID          uuid.UUID         `json:"job_id"`
	Status      string            `json:"status"`
	Input       PredictionInput   `json:"-"`
	SubmittedAt time.Time         `json:"submitted_at"`
	CompletedAt *time.Time        `json:"completed_at,omitempty"`
	Result      *PredictionResult `json:"result,omitempty"`
	Error       *string           `json:"error,omitempty"`
}
