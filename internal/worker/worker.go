// Package worker runs the single background execution unit that drains the
// work queue and drives each job to a terminal state.
package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/espin086/sales-forecast-api/internal/cache"
	"github.com/espin086/sales-forecast-api/internal/model"
	"github.com/espin086/sales-forecast-api/internal/queue"
	"github.com/espin086/sales-forecast-api/internal/store"
	"github.com/espin086/sales-forecast-api/pkg/models"
	"github.com/google/uuid"
)

// Worker dequeues job ids in FIFO order and processes them serially:
// mark processing, invoke the predictor, mark completed or failed. Predictor
// failures and panics are contained per job; nothing here ever stops the loop
// except context cancellation.
type Worker struct {
	store     store.Store
	queue     *queue.Queue
	cache     cache.Cache
	predictor models.Predictor

	// inferenceTimeout bounds each predictor call.
	inferenceTimeout time.Duration
	// resultTTL bounds cached forecasts.
	resultTTL time.Duration
}

func New(st store.Store, q *queue.Queue, ca cache.Cache, predictor models.Predictor, inferenceTimeout, resultTTL time.Duration) *Worker {
	return &Worker{
		store:            st,
		queue:            q,
		cache:            ca,
		predictor:        predictor,
		inferenceTimeout: inferenceTimeout,
		resultTTL:        resultTTL,
	}
}

// Run blocks, processing jobs until ctx is cancelled. Cancellation is
// cooperative: the in-flight job finishes before Run returns.
func (w *Worker) Run(ctx context.Context) {
	slog.Info("worker started", "predictor", w.predictor.Name())
	for {
		id, err := w.queue.Dequeue(ctx)
		if err != nil {
			slog.Info("worker stopped", "reason", err)
			return
		}
		w.process(id)
	}
}

// process drives one job to a terminal state. Runs with a background context
// so a shutdown signal never abandons a job mid-transition.
func (w *Worker) process(id uuid.UUID) {
	ctx := context.Background()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic while processing job", "error", r, "job_id", id)
			w.fail(ctx, id, fmt.Sprintf("panic: %v", r))
		}
	}()

	job, err := w.store.GetJob(ctx, id)
	if err != nil {
		// A queued id always references a created job; treat as internal fault.
		slog.Error("dequeued unknown job", "error", err, "job_id", id)
		return
	}

	if err := w.store.UpdateJobStatus(ctx, id, models.JobStatusProcessing); err != nil {
		slog.Error("failed to mark job processing", "error", err, "job_id", id)
		return
	}

	result, err := w.predict(ctx, job.Input)
	if err != nil {
		w.fail(ctx, id, err.Error())
		slog.Info("job failed", "job_id", id, "error", err.Error())
		return
	}

	if err := w.store.UpdateJobStatus(ctx, id, models.JobStatusCompleted, store.WithResult(result)); err != nil {
		slog.Error("failed to mark job completed", "error", err, "job_id", id)
		return
	}
	slog.Info("job completed", "job_id", id, "predicted_sales", result.PredictedSales)
}

// predict resolves a forecast for the input: cached result if present,
// otherwise a predictor call bounded by the inference timeout. The store lock
// is never held here; reads and listings stay responsive while the model runs.
func (w *Worker) predict(ctx context.Context, input models.PredictionInput) (models.PredictionResult, error) {
	key := cache.PredictionKey(input)
	if raw, found, err := w.cache.Get(ctx, key); err == nil && found {
		var cached models.PredictionResult
		if err := json.Unmarshal(raw, &cached); err == nil {
			return cached, nil
		}
	}

	features, err := model.Features(input)
	if err != nil {
		return models.PredictionResult{}, err
	}

	predictCtx, cancel := context.WithTimeout(ctx, w.inferenceTimeout)
	defer cancel()

	value, err := w.predictor.Predict(predictCtx, features)
	if err != nil {
		return models.PredictionResult{}, err
	}

	result := models.PredictionResult{
		PredictedSales: value,
		Date:           input.Date,
		Store:          input.Store,
		Item:           input.Item,
	}

	if raw, err := json.Marshal(result); err == nil {
		// Fail open on cache errors; the forecast is already in hand.
		_ = w.cache.Set(ctx, key, raw, w.resultTTL)
	}

	return result, nil
}

// fail marks a job failed, logging if even that transition cannot be applied.
func (w *Worker) fail(ctx context.Context, id uuid.UUID, msg string) {
	if err := w.store.UpdateJobStatus(ctx, id, models.JobStatusFailed, store.WithErrorMessage(msg)); err != nil {
		slog.Error("failed to mark job failed", "error", err, "job_id", id)
	}
}
