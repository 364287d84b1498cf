package models

import "context"

// FeatureVector is the engineered feature set handed to the model, keyed by
// feature name.
type FeatureVector map[string]float64

// Predictor is the boundary to the trained forecasting model. Never call a
// specific model backend directly — always inject this interface.
//
// The worker calls Predict serially, so implementations need not be safe for
// concurrent use, but they must not carry mutable state between calls.
type Predictor interface {
	// Predict maps an engineered feature vector to a sales forecast.
	Predict(ctx context.Context, features FeatureVector) (float64, error)
	// Name returns the backend identifier (e.g., "mlserver", "mock").
	Name() string
}
