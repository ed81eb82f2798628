package services

import (
	"context"
	"time"

	"github.com/pmarks/vocabflash/internal/errors"
	"github.com/pmarks/vocabflash/internal/models"
	"github.com/pmarks/vocabflash/internal/repository"
)

// StatsService exposes aggregated learner statistics
type StatsService interface {
	LearnerStats(ctx context.Context, learnerID int64) (*models.LearnerStats, error)
	ReviewsPerDay(ctx context.Context, learnerID int64, days int) ([]models.DailyReviewCount, error)
}

type statsService struct {
	statsRepo repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(statsRepo repository.StatsRepository) StatsService {
	return &statsService{statsRepo: statsRepo}
}

func (s *statsService) LearnerStats(ctx context.Context, learnerID int64) (*models.LearnerStats, error) {
	stats, err := s.statsRepo.LearnerStats(ctx, learnerID, time.Now())
	if err != nil {
		return nil, errors.NewPersistenceError("learner stats", err)
	}
	return stats, nil
}

func (s *statsService) ReviewsPerDay(ctx context.Context, learnerID int64, days int) ([]models.DailyReviewCount, error) {
	if days < 1 || days > 365 {
		return nil, errors.NewValidationError("days", "must be between 1 and 365")
	}
	counts, err := s.statsRepo.ReviewsPerDay(ctx, learnerID, days)
	if err != nil {
		return nil, errors.NewPersistenceError("review counts", err)
	}
	return counts, nil
}
