package api

import (
	"net/http"
	"strconv"

	"github.com/pmarks/vocabflash/internal/errors"
)

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	learner := learnerFromContext(r.Context())
	pattern := r.URL.Query().Get("pattern")

	size := 0
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			handleError(w, r, errors.NewBadRequestError("invalid size: "+raw))
			return
		}
		size = n
	}

	session, err := s.SessionService.BuildSession(r.Context(), learner.ID, size, pattern)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, session)
}
