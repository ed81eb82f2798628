package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/health", s.handleHealth)
	r.Get("/ready", s.handleReady)

	r.Route("/api", func(r chi.Router) {
		r.Get("/learners", s.handleListLearners)
		r.Post("/learners", s.handleCreateLearner)
		r.Post("/learners/{id}/select", s.handleSelectLearner)
		r.Post("/learners/{id}/delete", s.handleDeleteLearner)

		// Everything below needs an active learner.
		r.Group(func(r chi.Router) {
			r.Use(s.learnerMiddleware)

			r.Get("/words", s.handleListWords)
			r.Post("/words", s.handleCreateWord)
			r.Post("/import", s.handleImport)

			r.Get("/session", s.handleSession)
			r.Post("/reviews", s.handleReview)
			r.Post("/reviews/batch", s.handleReviewBatch)
			r.Get("/classify", s.handleClassify)
			r.Post("/progress/reset", s.handleResetProgress)

			r.Get("/stats", s.handleStats)
			r.Get("/stats/daily", s.handleDailyStats)
		})
	})

	return r
}
