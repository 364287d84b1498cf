// Package model is the boundary to the trained sales-forecasting model:
// feature engineering, backend selection, and the Predictor implementations.
package model

import (
	"fmt"
	"time"

	"github.com/espin086/sales-forecast-api/pkg/models"
)

const dateLayout = "2006-01-02"

// Features engineers the feature vector the model was trained on from a
// prediction input. The set must stay in sync with the trainer: store, item,
// calendar parts of the date, plus the weekend and month-boundary flags.
func Features(input models.PredictionInput) (models.FeatureVector, error) {
	date, err := time.Parse(dateLayout, input.Date)
	if err != nil {
		return nil, fmt.Errorf("parse date %q: %w", input.Date, err)
	}

	return models.FeatureVector{
		"store":          float64(input.Store),
		"item":           float64(input.Item),
		"year":           float64(date.Year()),
		"month":          float64(date.Month()),
		"day":            float64(date.Day()),
		"dayofweek":      float64(dayOfWeek(date)),
		"is_weekend":     boolFeature(dayOfWeek(date) >= 5),
		"is_month_start": boolFeature(date.Day() == 1),
		"is_month_end":   boolFeature(date.AddDate(0, 0, 1).Day() == 1),
	}, nil
}

// dayOfWeek maps to the training convention: Monday=0 .. Sunday=6.
func dayOfWeek(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
