// Package forecast holds the submission gateway and the read-side status and
// listing projections over the job store.
package forecast

import (
	"context"
	"fmt"

	"github.com/espin086/sales-forecast-api/internal/queue"
	"github.com/espin086/sales-forecast-api/internal/store"
	"github.com/espin086/sales-forecast-api/pkg/models"
	"github.com/google/uuid"
)

// Service accepts prediction submissions and serves job status and listings.
// Stateless beyond the injected store and queue; safe for concurrent use.
type Service struct {
	store     store.Store
	queue     *queue.Queue
	predictor models.Predictor
}

// ListResult is the listing projection: the filtered/limited jobs plus totals.
type ListResult struct {
	TotalJobs    int         `json:"total_jobs"`
	FilteredJobs int         `json:"filtered_jobs"`
	Jobs         []ListedJob `json:"jobs"`
}

// ListedJob is one listing entry. Unlike the poll response it echoes the
// submitted payload, so a pending or processing job is identifiable in a
// listing without waiting for its result.
type ListedJob struct {
	*models.Job
	Data models.PredictionInput `json:"data"`
}

// Overview is the service-level summary.
type Overview struct {
	Status       string         `json:"status"`
	ModelLoaded  bool           `json:"model_loaded"`
	ActiveJobs   int            `json:"active_jobs"`
	JobsByStatus map[string]int `json:"jobs_by_status"`
}

func NewService(st store.Store, q *queue.Queue, predictor models.Predictor) *Service {
	return &Service{
		store:     st,
		queue:     q,
		predictor: predictor,
	}
}

// Submit creates a pending job and hands its id to the worker. The record is
// in the store before the id is returned, so an immediate poll never sees
// NotFound.
func (s *Service) Submit(ctx context.Context, input models.PredictionInput) (*models.Job, error) {
	job, err := s.store.CreateJob(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}

	s.queue.Enqueue(job.ID)

	return job, nil
}

// Job returns one job snapshot, or store.ErrNotFound.
func (s *Service) Job(ctx context.Context, id uuid.UUID) (*models.Job, error) {
	return s.store.GetJob(ctx, id)
}

// ListJobs returns jobs in insertion order, optionally filtered and limited.
func (s *Service) ListJobs(ctx context.Context, filter store.JobFilter) (*ListResult, error) {
	jobs, total, err := s.store.ListJobs(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing jobs: %w", err)
	}

	entries := make([]ListedJob, 0, len(jobs))
	for _, job := range jobs {
		entries = append(entries, ListedJob{Job: job, Data: job.Input})
	}

	return &ListResult{
		TotalJobs:    total,
		FilteredJobs: len(jobs),
		Jobs:         entries,
	}, nil
}

// Overview reports service health and job counts by status.
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	counts, err := s.store.CountJobs(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting jobs: %w", err)
	}

	active := 0
	for _, n := range counts {
		active += n
	}

	return &Overview{
		Status:       "online",
		ModelLoaded:  s.predictor != nil,
		ActiveJobs:   active,
		JobsByStatus: counts,
	}, nil
}
