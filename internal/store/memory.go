package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/espin086/sales-forecast-api/pkg/models"
	"github.com/google/uuid"
)

// legalTransitions encodes the only lifecycle a job may follow:
// pending -> processing -> completed|failed. Completed and failed are terminal.
var legalTransitions = map[string][]string{
	models.JobStatusPending:    {models.JobStatusProcessing},
	models.JobStatusProcessing: {models.JobStatusCompleted, models.JobStatusFailed},
}

// MemoryStore implements Store with an in-process map. Jobs live for the
// lifetime of the process; there is no deletion. One mutex guards the map and
// insertion order, held only for the duration of the map mutation — never
// across a predictor call.
type MemoryStore struct {
	mu    sync.RWMutex
	jobs  map[uuid.UUID]*models.Job
	order []uuid.UUID
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs: make(map[uuid.UUID]*models.Job),
	}
}

func (s *MemoryStore) CreateJob(_ context.Context, input models.PredictionInput) (*models.Job, error) {
	job := &models.Job{
		ID:          uuid.New(),
		Status:      models.JobStatusPending,
		Input:       input,
		SubmittedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.order = append(s.order, job.ID)
	s.mu.Unlock()

	return cloneJob(job), nil
}

func (s *MemoryStore) GetJob(_ context.Context, id uuid.UUID) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneJob(job), nil
}

func (s *MemoryStore) UpdateJobStatus(_ context.Context, id uuid.UUID, status string, opts ...JobUpdateOption) error {
	var params jobUpdateParams
	for _, opt := range opts {
		opt(&params)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return ErrNotFound
	}

	if !transitionAllowed(job.Status, status) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, job.Status, status)
	}

	job.Status = status
	if models.IsTerminalJobStatus(status) {
		now := time.Now().UTC()
		job.CompletedAt = &now
		job.Result = params.Result
		job.Error = params.ErrorMessage
	}

	return nil
}

func (s *MemoryStore) ListJobs(_ context.Context, filter JobFilter) ([]*models.Job, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]*models.Job, 0, len(s.order))
	for _, id := range s.order {
		job := s.jobs[id]
		if filter.Status != "" && job.Status != filter.Status {
			continue
		}
		if filter.Limit > 0 && len(jobs) >= filter.Limit {
			break
		}
		jobs = append(jobs, cloneJob(job))
	}

	return jobs, len(s.order), nil
}

func (s *MemoryStore) CountJobs(_ context.Context) (map[string]int, error) {
	counts := make(map[string]int, len(models.JobStatuses))
	for _, status := range models.JobStatuses {
		counts[status] = 0
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, job := range s.jobs {
		counts[job.Status]++
	}
	return counts, nil
}

func transitionAllowed(from, to string) bool {
	for _, next := range legalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// cloneJob copies a record so callers can never mutate store-owned state.
func cloneJob(job *models.Job) *models.Job {
	clone := *job
	if job.CompletedAt != nil {
		t := *job.CompletedAt
		clone.CompletedAt = &t
	}
	if job.Result != nil {
		r := *job.Result
		clone.Result = &r
	}
	if job.Error != nil {
		e := *job.Error
		clone.Error = &e
	}
	return &clone
}

// Compile-time check that MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)
