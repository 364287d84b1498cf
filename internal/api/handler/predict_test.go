package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/espin086/sales-forecast-api/internal/api/handler"
	"github.com/espin086/sales-forecast-api/internal/forecast"
	"github.com/espin086/sales-forecast-api/internal/model"
	"github.com/espin086/sales-forecast-api/internal/queue"
	"github.com/espin086/sales-forecast-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPredictHandler(t *testing.T) (http.HandlerFunc, *queue.Queue) {
	t.Helper()
	q := queue.New()
	svc := forecast.NewService(store.NewMemoryStore(), q, model.NewMockPredictor())
	return handler.NewPredictHandler(svc), q
}

func postPredict(t *testing.T, h http.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Message
}

func TestPredict_ReturnsPendingJob(t *testing.T) {
	h, q := newPredictHandler(t)

	rec := postPredict(t, h, `{"date": "2023-01-01", "store": 1, "item": 1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		JobID       string `json:"job_id"`
		Status      string `json:"status"`
		SubmittedAt string `json:"submitted_at"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	_, err := uuid.Parse(resp.JobID)
	assert.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.NotEmpty(t, resp.SubmittedAt)
	assert.Equal(t, 1, q.Len())
}

func TestPredict_CoercesIDVariants(t *testing.T) {
	h, _ := newPredictHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"whole floats", `{"date": "2023-01-01", "store": 2.0, "item": 3.0}`},
		{"numeric strings", `{"date": "2023-01-01", "store": "2", "item": "3"}`},
		{"fractional truncates", `{"date": "2023-01-01", "store": 1.5, "item": 1}`},
		{"fractional string truncates", `{"date": "2023-01-01", "store": "1.5", "item": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postPredict(t, h, tt.body)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestPredict_InvalidJSON(t *testing.T) {
	h, q := newPredictHandler(t)

	rec := postPredict(t, h, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No data provided or invalid JSON", errorMessage(t, rec))
	assert.Equal(t, 0, q.Len())
}

func TestPredict_MissingFields(t *testing.T) {
	h, _ := newPredictHandler(t)

	rec := postPredict(t, h, `{"date": "2023-01-01"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Missing required fields: store, item", errorMessage(t, rec))
}

func TestPredict_InvalidDate(t *testing.T) {
	h, _ := newPredictHandler(t)

	tests := []string{"2023/01/01", "01-01-2023", "2023-13-01", "tomorrow"}
	for _, date := range tests {
		t.Run(date, func(t *testing.T) {
			rec := postPredict(t, h, `{"date": "`+date+`", "store": 1, "item": 1}`)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Invalid date format. Use YYYY-MM-DD", errorMessage(t, rec))
		})
	}
}

func TestPredict_InvalidStore(t *testing.T) {
	h, _ := newPredictHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{"zero", `{"date": "2023-01-01", "store": 0, "item": 1}`},
		{"negative", `{"date": "2023-01-01", "store": -1, "item": 1}`},
		{"fractional below one", `{"date": "2023-01-01", "store": 0.5, "item": 1}`},
		{"non-numeric string", `{"date": "2023-01-01", "store": "one", "item": 1}`},
		{"null", `{"date": "2023-01-01", "store": null, "item": 1}`},
		{"boolean", `{"date": "2023-01-01", "store": true, "item": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postPredict(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestPredict_InvalidItem(t *testing.T) {
	h, _ := newPredictHandler(t)

	rec := postPredict(t, h, `{"date": "2023-01-01", "store": 1, "item": 0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Item must be a positive integer", errorMessage(t, rec))
}
