package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/espin086/sales-forecast-api/internal/store"
	"github.com/espin086/sales-forecast-api/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testInput(storeID, itemID int) models.PredictionInput {
	return models.PredictionInput{Date: "2023-01-01", Store: storeID, Item: itemID}
}

// --- CreateJob / GetJob ---

func TestCreateJob_ThenGet(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreateJob(ctx, testInput(1, 1))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, models.JobStatusPending, created.Status)
	assert.False(t, created.SubmittedAt.IsZero())
	assert.Nil(t, created.CompletedAt)
	assert.Nil(t, created.Result)
	assert.Nil(t, created.Error)

	got, err := s.GetJob(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, testInput(1, 1), got.Input)
}

func TestGetJob_NotFound(t *testing.T) {
	s := store.NewMemoryStore()

	_, err := s.GetJob(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCreateJob_ConcurrentDistinctIDs(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	const n = 100
	ids := make(chan uuid.UUID, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			job, err := s.CreateJob(ctx, testInput(1, 1))
			assert.NoError(t, err)
			ids <- job.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[uuid.UUID]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true

		_, err := s.GetJob(ctx, id)
		assert.NoError(t, err)
	}
	assert.Len(t, seen, n)
}

func TestGetJob_CallerCannotMutateStoreState(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	created, err := s.CreateJob(ctx, testInput(1, 1))
	require.NoError(t, err)

	got, err := s.GetJob(ctx, created.ID)
	require.NoError(t, err)
	got.Status = models.JobStatusFailed

	again, err := s.GetJob(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusPending, again.Status)
}

// --- UpdateJobStatus ---

func TestUpdateJobStatus_FullLifecycle(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	job, err := s.CreateJob(ctx, testInput(1, 1))
	require.NoError(t, err)

	require.NoError(t, s.UpdateJobStatus(ctx, job.ID, models.JobStatusProcessing))

	result := models.PredictionResult{PredictedSales: 45.67, Date: "2023-01-01", Store: 1, Item: 1}
	require.NoError(t, s.UpdateJobStatus(ctx, job.ID, models.JobStatusCompleted, store.WithResult(result)))

	got, err := s.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, got.Status)
	require.NotNil(t, got.CompletedAt)
	require.NotNil(t, got.Result)
	assert.Equal(t, result, *got.Result)
	assert.Nil(t, got.Error)
}

func TestUpdateJobStatus_FailedSetsErrorNotResult(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	job, err := s.CreateJob(ctx, testInput(1, 1))
	require.NoError(t, err)

	require.NoError(t, s.UpdateJobStatus(ctx, job.ID, models.JobStatusProcessing))
	require.NoError(t, s.UpdateJobStatus(ctx, job.ID, models.JobStatusFailed,
		store.WithErrorMessage("feature X missing")))

	got, err := s.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusFailed, got.Status)
	require.NotNil(t, got.Error)
	assert.Equal(t, "feature X missing", *got.Error)
	assert.Nil(t, got.Result)
	assert.NotNil(t, got.CompletedAt)
}

func TestUpdateJobStatus_NotFound(t *testing.T) {
	s := store.NewMemoryStore()

	err := s.UpdateJobStatus(context.Background(), uuid.New(), models.JobStatusProcessing)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateJobStatus_RejectsSkippingProcessing(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	job, err := s.CreateJob(ctx, testInput(1, 1))
	require.NoError(t, err)

	err = s.UpdateJobStatus(ctx, job.ID, models.JobStatusCompleted)
	assert.ErrorIs(t, err, store.ErrInvalidTransition)
}

func TestUpdateJobStatus_RejectsBackwardTransition(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	job, err := s.CreateJob(ctx, testInput(1, 1))
	require.NoError(t, err)
	require.NoError(t, s.UpdateJobStatus(ctx, job.ID, models.JobStatusProcessing))

	err = s.UpdateJobStatus(ctx, job.ID, models.JobStatusPending)
	assert.ErrorIs(t, err, store.ErrInvalidTransition)
}

func TestUpdateJobStatus_TerminalIsFrozen(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	job, err := s.CreateJob(ctx, testInput(1, 1))
	require.NoError(t, err)
	require.NoError(t, s.UpdateJobStatus(ctx, job.ID, models.JobStatusProcessing))
	require.NoError(t, s.UpdateJobStatus(ctx, job.ID, models.JobStatusCompleted,
		store.WithResult(models.PredictionResult{PredictedSales: 1})))

	before, err := s.GetJob(ctx, job.ID)
	require.NoError(t, err)

	for _, status := range models.JobStatuses {
		err := s.UpdateJobStatus(ctx, job.ID, status)
		assert.ErrorIs(t, err, store.ErrInvalidTransition, "transition to %s", status)
	}

	// Repeated reads on a terminal job return identical data.
	after, err := s.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

// --- ListJobs ---

func createN(t *testing.T, s store.Store, n int) []uuid.UUID {
	t.Helper()
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		job, err := s.CreateJob(context.Background(), testInput(i+1, 1))
		require.NoError(t, err)
		ids = append(ids, job.ID)
	}
	return ids
}

func TestListJobs_InsertionOrder(t *testing.T) {
	s := store.NewMemoryStore()
	ids := createN(t, s, 5)

	jobs, total, err := s.ListJobs(context.Background(), store.JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.Len(t, jobs, 5)
	for i, job := range jobs {
		assert.Equal(t, ids[i], job.ID)
	}
}

func TestListJobs_StatusFilterIsOrderedSubsequence(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	ids := createN(t, s, 4)

	// Complete the second and fourth jobs.
	for _, i := range []int{1, 3} {
		require.NoError(t, s.UpdateJobStatus(ctx, ids[i], models.JobStatusProcessing))
		require.NoError(t, s.UpdateJobStatus(ctx, ids[i], models.JobStatusCompleted,
			store.WithResult(models.PredictionResult{PredictedSales: 1})))
	}

	jobs, total, err := s.ListJobs(ctx, store.JobFilter{Status: models.JobStatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, jobs, 2)
	assert.Equal(t, ids[1], jobs[0].ID)
	assert.Equal(t, ids[3], jobs[1].ID)
	for _, job := range jobs {
		assert.Equal(t, models.JobStatusCompleted, job.Status)
	}
}

func TestListJobs_Limit(t *testing.T) {
	s := store.NewMemoryStore()
	ids := createN(t, s, 5)

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"limit below count", 3, 3},
		{"limit above count", 10, 5},
		{"zero limit returns all", 0, 5},
		{"negative limit returns all", -1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jobs, total, err := s.ListJobs(context.Background(), store.JobFilter{Limit: tt.limit})
			require.NoError(t, err)
			assert.Equal(t, 5, total)
			require.Len(t, jobs, tt.want)
			for i, job := range jobs {
				assert.Equal(t, ids[i], job.ID)
			}
		})
	}
}

func TestListJobs_Empty(t *testing.T) {
	s := store.NewMemoryStore()

	jobs, total, err := s.ListJobs(context.Background(), store.JobFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, total)
	assert.Empty(t, jobs)
}

// --- CountJobs ---

func TestCountJobs_IncludesAllStatuses(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	counts, err := s.CountJobs(ctx)
	require.NoError(t, err)
	require.Len(t, counts, len(models.JobStatuses))
	for _, status := range models.JobStatuses {
		assert.Equal(t, 0, counts[status])
	}
}

func TestCountJobs_SumsToTotal(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()
	ids := createN(t, s, 5)

	require.NoError(t, s.UpdateJobStatus(ctx, ids[0], models.JobStatusProcessing))
	require.NoError(t, s.UpdateJobStatus(ctx, ids[1], models.JobStatusProcessing))
	require.NoError(t, s.UpdateJobStatus(ctx, ids[1], models.JobStatusFailed,
		store.WithErrorMessage("boom")))

	counts, err := s.CountJobs(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, counts[models.JobStatusPending])
	assert.Equal(t, 1, counts[models.JobStatusProcessing])
	assert.Equal(t, 0, counts[models.JobStatusCompleted])
	assert.Equal(t, 1, counts[models.JobStatusFailed])

	total := 0
	for _, n := range counts {
		total += n
	}
	assert.Equal(t, 5, total)
}
