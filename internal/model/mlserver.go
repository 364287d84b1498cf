package model

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/espin086/sales-forecast-api/internal/config"
	"github.com/espin086/sales-forecast-api/pkg/models"
)

// MLServerPredictor implements models.Predictor against an HTTP inference
// server hosting the trained sales model.
type MLServerPredictor struct {
	cfg    config.MLServerConfig
	client *http.Client
}

func NewMLServerPredictor(cfg config.MLServerConfig) *MLServerPredictor {
	return &MLServerPredictor{
		cfg: cfg,
		// No client-level timeout; each call is bounded through ctx.
		client: &http.Client{},
	}
}

func (p *MLServerPredictor) Name() string { return "mlserver" }

type predictRequest struct {
	Model    string               `json:"model"`
	Features models.FeatureVector `json:"features"`
}

type predictResponse struct {
	Prediction *float64 `json:"prediction"`
}

func (p *MLServerPredictor) Predict(ctx context.Context, features models.FeatureVector) (float64, error) {
	body, err := json.Marshal(predictRequest{
		Model:    p.cfg.Model,
		Features: features,
	})
	if err != nil {
		return 0, fmt.Errorf("marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("build predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return 0, fmt.Errorf("%w: no response within deadline", ErrInferenceTimeout)
		}
		return 0, fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode >= http.StatusInternalServerError {
			return 0, fmt.Errorf("%w: status %d", ErrModelUnavailable, resp.StatusCode)
		}
		return 0, fmt.Errorf("%w: status %d", ErrInvalidResponse, resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if out.Prediction == nil {
		return 0, fmt.Errorf("%w: missing prediction field", ErrInvalidResponse)
	}

	return *out.Prediction, nil
}

// Compile-time check that MLServerPredictor implements Predictor.
var _ models.Predictor = (*MLServerPredictor)(nil)
