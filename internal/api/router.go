package api

import (
	"net/http"

	mw "github.com/espin086/sales-forecast-api/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

// Dependencies holds all handler and middleware dependencies for the router.
type Dependencies struct {
	RateLimit *mw.RateLimit

	StatusHandler    http.HandlerFunc
	JobStatusHandler http.HandlerFunc
	PredictHandler   http.HandlerFunc
	ListJobsHandler  http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.Logger)
	r.Use(mw.Recovery)

	r.Get("/status", deps.StatusHandler)
	r.Get("/status/{jobID}", deps.JobStatusHandler)
	r.Get("/jobs", deps.ListJobsHandler)

	// Submission is the costly path; rate limit it.
	r.Group(func(r chi.Router) {
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.Limit)
		}
		r.Post("/predict", deps.PredictHandler)
	})

	return r
}
