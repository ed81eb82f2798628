package services

import (
	"context"
	"strings"
	"time"

	"github.com/pmarks/vocabflash/internal/errors"
	"github.com/pmarks/vocabflash/internal/logger"
	"github.com/pmarks/vocabflash/internal/models"
	"github.com/pmarks/vocabflash/internal/repository"
)

// LearnerService handles learner accounts
type LearnerService interface {
	GetLearner(ctx context.Context, id int64) (*models.Learner, error)
	ListLearners(ctx context.Context) ([]models.Learner, error)
	CreateLearner(ctx context.Context, name string) (*models.Learner, error)
	TouchLearner(ctx context.Context, id int64) error
	DeleteLearner(ctx context.Context, id int64) error
}

type learnerService struct {
	learnerRepo repository.LearnerRepository
}

// NewLearnerService creates a new LearnerService
func NewLearnerService(learnerRepo repository.LearnerRepository) LearnerService {
	return &learnerService{learnerRepo: learnerRepo}
}

func (s *learnerService) GetLearner(ctx context.Context, id int64) (*models.Learner, error) {
	learner, err := s.learnerRepo.Get(ctx, id)
	if err != nil {
		return nil, errors.NewPersistenceError("learner fetch", err)
	}
	if learner == nil {
		return nil, errors.NewNotFoundError("learner", id)
	}
	return learner, nil
}

func (s *learnerService) ListLearners(ctx context.Context) ([]models.Learner, error) {
	learners, err := s.learnerRepo.List(ctx)
	if err != nil {
		return nil, errors.NewPersistenceError("learner list", err)
	}
	return learners, nil
}

func (s *learnerService) CreateLearner(ctx context.Context, name string) (*models.Learner, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("name", "cannot be empty")
	}
	if len(name) > 100 {
		return nil, errors.NewValidationError("name", "cannot exceed 100 characters")
	}

	learner, err := s.learnerRepo.Create(ctx, name)
	if err != nil {
		return nil, errors.NewPersistenceError("learner create", err)
	}

	logger.FromContext(ctx).Info("learner created: id=%d, name=%s", learner.ID, learner.Name)
	return learner, nil
}

func (s *learnerService) TouchLearner(ctx context.Context, id int64) error {
	if err := s.learnerRepo.Touch(ctx, id, time.Now()); err != nil {
		return errors.NewPersistenceError("learner touch", err)
	}
	return nil
}

func (s *learnerService) DeleteLearner(ctx context.Context, id int64) error {
	learner, err := s.learnerRepo.Get(ctx, id)
	if err != nil {
		return errors.NewPersistenceError("learner fetch", err)
	}
	if learner == nil {
		return errors.NewNotFoundError("learner", id)
	}

	if err := s.learnerRepo.Delete(ctx, id); err != nil {
		return errors.NewPersistenceError("learner delete", err)
	}

	logger.FromContext(ctx).Info("learner deleted: id=%d", id)
	return nil
}
