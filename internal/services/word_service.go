package services

import (
	"context"
	"strings"

	"github.com/pmarks/vocabflash/internal/errors"
	"github.com/pmarks/vocabflash/internal/logger"
	"github.com/pmarks/vocabflash/internal/models"
	"github.com/pmarks/vocabflash/internal/repository"
)

// WordService handles the vocabulary catalogue
type WordService interface {
	GetWord(ctx context.Context, id int64) (*models.Word, error)
	ListWords(ctx context.Context, filter models.WordFilter) ([]models.Word, int, error)
	CreateWord(ctx context.Context, word models.Word) (*models.Word, error)
}

type wordService struct {
	wordRepo repository.WordRepository
}

// NewWordService creates a new WordService
func NewWordService(wordRepo repository.WordRepository) WordService {
	return &wordService{wordRepo: wordRepo}
}

func (s *wordService) GetWord(ctx context.Context, id int64) (*models.Word, error) {
	word, err := s.wordRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.NewPersistenceError("word fetch", err)
	}
	if word == nil {
		return nil, errors.NewNotFoundError("word", id)
	}
	return word, nil
}

func (s *wordService) ListWords(ctx context.Context, filter models.WordFilter) ([]models.Word, int, error) {
	words, err := s.wordRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewPersistenceError("word list", err)
	}
	total, err := s.wordRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, errors.NewPersistenceError("word count", err)
	}
	return words, total, nil
}

func (s *wordService) CreateWord(ctx context.Context, word models.Word) (*models.Word, error) {
	word.Term = strings.TrimSpace(word.Term)
	word.Translation = strings.TrimSpace(word.Translation)
	if word.Term == "" {
		return nil, errors.NewValidationError("term", "cannot be empty")
	}
	if word.Translation == "" {
		return nil, errors.NewValidationError("translation", "cannot be empty")
	}
	if word.Difficulty < 0 || word.Difficulty > 5 {
		return nil, errors.NewValidationError("difficulty", "must be between 0 and 5")
	}

	id, err := s.wordRepo.Insert(ctx, word)
	if err != nil {
		return nil, errors.NewPersistenceError("word insert", err)
	}
	word.ID = id

	logger.FromContext(ctx).Debug("word created: id=%d, term=%s", id, word.Term)
	return &word, nil
}
