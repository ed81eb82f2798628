package api

import (
	"net/http"
	"strconv"

	"github.com/pmarks/vocabflash/internal/errors"
	"github.com/pmarks/vocabflash/internal/models"
)

func (s *Server) handleListWords(w http.ResponseWriter, r *http.Request) {
	filter := models.WordFilter{
		Topic:  r.URL.Query().Get("topic"),
		Search: r.URL.Query().Get("q"),
	}
	if raw := r.URL.Query().Get("difficulty"); raw != "" {
		d, err := strconv.Atoi(raw)
		if err != nil {
			handleError(w, r, errors.NewBadRequestError("invalid difficulty: "+raw))
			return
		}
		filter.Difficulty = d
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			filter.Limit = n
		}
	}
	if raw := r.URL.Query().Get("offset"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			filter.Offset = n
		}
	}

	words, total, err := s.WordService.ListWords(r.Context(), filter)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"words": words,
		"total": total,
	})
}

func (s *Server) handleCreateWord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Term        string `json:"term"`
		Translation string `json:"translation"`
		Topic       string `json:"topic"`
		Difficulty  int    `json:"difficulty"`
		Example     string `json:"example"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	word, err := s.WordService.CreateWord(r.Context(), models.Word{
		Term:        req.Term,
		Translation: req.Translation,
		Topic:       req.Topic,
		Difficulty:  req.Difficulty,
		Example:     req.Example,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, word)
}

// handleImport queues a background import of an uploaded xlsx workbook.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid multipart form"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("missing file field"))
		return
	}
	defer file.Close()

	if err := s.ImportService.QueueImport(r.Context(), file); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusAccepted, map[string]any{
		"queued":   true,
		"filename": header.Filename,
	})
}
