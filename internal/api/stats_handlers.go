package api

import (
	"net/http"
	"strconv"
)

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())

	stats, err := s.StatsService.LearnerStats(r.Context(), learner.ID)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}

func (s *Server) handleDailyStats(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())

	days := 30
	if raw := r.URL.Query().Get("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			days = n
		}
	}

	counts, err := s.StatsService.ReviewsPerDay(r.Context(), learner.ID, days)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"days": counts})
}
