package cache

import (
	"fmt"

	"github.com/espin086/sales-forecast-api/pkg/models"
)

// PredictionKey identifies a cached forecast. Identical inputs always yield
// the same forecast, so date/store/item is the full cache identity.
func PredictionKey(input models.PredictionInput) string {
	return fmt.Sprintf("prediction:%s:%d:%d", input.Date, input.Store, input.Item)
}

func RateLimitKey(clientAddr string) string {
	return fmt.Sprintf("ratelimit:%s", clientAddr)
}
