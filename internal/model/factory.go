package model

import (
	"fmt"

	"github.com/espin086/sales-forecast-api/internal/config"
	"github.com/espin086/sales-forecast-api/pkg/models"
)

// NewPredictor constructs the appropriate model backend based on config.
// Called once at server startup.
func NewPredictor(cfg config.ModelConfig) (models.Predictor, error) {
	switch cfg.Provider {
	case "mlserver":
		return NewMLServerPredictor(cfg.MLServer), nil
	case "mock":
		return NewMockPredictor(), nil
	default:
		return nil, fmt.Errorf("unknown model provider %q: must be one of mlserver, mock", cfg.Provider)
	}
}
