package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pmarks/vocabflash/internal/errors"
	"github.com/pmarks/vocabflash/internal/logger"
)

func (s *Server) handleListLearners(w http.ResponseWriter, r *http.Request) {
	learners, err := s.LearnerService.ListLearners(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"learners": learners})
}

func (s *Server) handleCreateLearner(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	learner, err := s.LearnerService.CreateLearner(r.Context(), req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}

	setLearnerCookie(w, learner.ID)
	respondJSON(w, r, http.StatusCreated, learner)
}

func (s *Server) handleSelectLearner(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	learner, err := s.LearnerService.GetLearner(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.LearnerService.TouchLearner(r.Context(), id); err != nil {
		logger.FromContext(r.Context()).Warn("failed to touch learner %d: %v", id, err)
	}

	setLearnerCookie(w, learner.ID)
	respondJSON(w, r, http.StatusOK, learner)
}

func (s *Server) handleDeleteLearner(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.LearnerService.DeleteLearner(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	clearLearnerCookie(w)
	respondJSON(w, r, http.StatusOK, map[string]any{"deleted": id})
}

func pathID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return 0, errors.NewBadRequestError("invalid id: " + raw)
	}
	return id, nil
}
