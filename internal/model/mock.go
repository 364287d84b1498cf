package model

import (
	"context"

	"github.com/espin086/sales-forecast-api/pkg/models"
)

// MockPredictor satisfies models.Predictor for development and tests.
type MockPredictor struct {
	Name_       string
	PredictFunc func(ctx context.Context, features models.FeatureVector) (float64, error)
}

func (m *MockPredictor) Name() string { return m.Name_ }

func (m *MockPredictor) Predict(ctx context.Context, features models.FeatureVector) (float64, error) {
	if m.PredictFunc != nil {
		return m.PredictFunc(ctx, features)
	}
	return 0, nil
}

// NewMockPredictor returns a MockPredictor with a deterministic forecast so
// the full submit/poll flow can be exercised without a model server.
func NewMockPredictor() *MockPredictor {
	return &MockPredictor{
		Name_: "mock",
		PredictFunc: func(_ context.Context, features models.FeatureVector) (float64, error) {
			base := 20.0 + features["store"]*1.5 + features["item"]*0.75
			if features["is_weekend"] == 1 {
				base *= 1.2
			}
			return base + features["month"], nil
		},
	}
}

// NewFailingPredictor returns a MockPredictor that always returns the given error.
func NewFailingPredictor(err error) *MockPredictor {
	return &MockPredictor{
		Name_: "mock-failing",
		PredictFunc: func(_ context.Context, _ models.FeatureVector) (float64, error) {
			return 0, err
		},
	}
}

// NewTimeoutPredictor returns a MockPredictor that blocks until context is cancelled.
func NewTimeoutPredictor() *MockPredictor {
	return &MockPredictor{
		Name_: "mock-timeout",
		PredictFunc: func(ctx context.Context, _ models.FeatureVector) (float64, error) {
			<-ctx.Done()
			return 0, ErrInferenceTimeout
		},
	}
}

// Compile-time check that MockPredictor implements Predictor.
var _ models.Predictor = (*MockPredictor)(nil)
