package api

import (
	"net/http"
	"strconv"

	"github.com/pmarks/vocabflash/internal/errors"
	"github.com/pmarks/vocabflash/internal/models"
)

func (s *Server) handleReview(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())

	var req models.AnswerOutcome
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	progress, transition, err := s.ProgressService.ApplyAnswer(r.Context(), learner.ID, req.WordID, req.Correct, req.Mode)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"progress":   progress,
		"transition": transition,
		"direction":  transition.Direction(),
	})
}

func (s *Server) handleReviewBatch(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())

	var req struct {
		Outcomes []models.AnswerOutcome `json:"outcomes"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}
	if len(req.Outcomes) == 0 {
		handleError(w, r, errors.NewBadRequestError("outcomes cannot be empty"))
		return
	}

	report, err := s.ProgressService.ApplyAnswerBatch(r.Context(), learner.ID, req.Outcomes)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, report)
}

// handleClassify exposes the mastery classifier for ad hoc queries.
func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	total, err := queryInt(r, "total_reviews")
	if err != nil {
		handleError(w, r, err)
		return
	}
	correct, err := queryInt(r, "correct_answers")
	if err != nil {
		handleError(w, r, err)
		return
	}
	streak, err := queryInt(r, "streak")
	if err != nil {
		handleError(w, r, err)
		return
	}

	status, err := s.ProgressService.Classify(total, correct, streak)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"status": status})
}

func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())

	if err := s.ProgressService.ResetProgress(r.Context(), learner.ID); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"reset": true})
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, errors.NewBadRequestError("missing query parameter: " + name)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewBadRequestError("invalid " + name + ": " + raw)
	}
	return n, nil
}
