package store

import (
	"context"
	"errors"

	"github.com/espin086/sales-forecast-api/pkg/models"
	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")
var ErrInvalidTransition = errors.New("invalid job status transition")

// Store is the job record access interface. All job state goes through here;
// no other component holds job records of its own.
type Store interface {
	// CreateJob allocates a new id and inserts a pending record. Safe under
	// concurrent calls; no two calls ever receive the same id.
	CreateJob(ctx context.Context, input models.PredictionInput) (*models.Job, error)
	// GetJob returns a snapshot of one record, or ErrNotFound.
	GetJob(ctx context.Context, id uuid.UUID) (*models.Job, error)
	// UpdateJobStatus applies one forward transition atomically. Terminal
	// transitions set completed_at exactly once; options attach the result or
	// error message. Returns ErrNotFound for unknown ids and
	// ErrInvalidTransition for backward or post-terminal transitions.
	UpdateJobStatus(ctx context.Context, id uuid.UUID, status string, opts ...JobUpdateOption) error
	// ListJobs returns a point-in-time snapshot in insertion order, optionally
	// filtered by status and truncated to the filter's limit. The int is the
	// total number of jobs in the store regardless of filtering.
	ListJobs(ctx context.Context, filter JobFilter) ([]*models.Job, int, error)
	// CountJobs returns the number of jobs per status, with an entry for every
	// known status.
	CountJobs(ctx context.Context) (map[string]int, error)
}

// JobFilter narrows a ListJobs call. Zero values mean no filtering: an empty
// Status matches everything, a Limit <= 0 returns all matching jobs.
type JobFilter struct {
	Status string
	Limit  int
}

type jobUpdateParams struct {
	Result       *models.PredictionResult
	ErrorMessage *string
}

type JobUpdateOption func(*jobUpdateParams)

// WithResult attaches the model output to a completed transition.
func WithResult(result models.PredictionResult) JobUpdateOption {
	return func(p *jobUpdateParams) {
		p.Result = &result
	}
}

// WithErrorMessage attaches the failure reason to a failed transition.
func WithErrorMessage(msg string) JobUpdateOption {
	return func(p *jobUpdateParams) {
		p.ErrorMessage = &msg
	}
}
