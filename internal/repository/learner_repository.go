package repository

import (
	"context"
	"time"

	"github.com/pmarks/vocabflash/internal/models"
)

// LearnerRepository handles learner data access
type LearnerRepository interface {
	Get(ctx context.Context, id int64) (*models.Learner, error)
	List(ctx context.Context) ([]models.Learner, error)
	Create(ctx context.Context, name string) (*models.Learner, error)
	Touch(ctx context.Context, id int64, t time.Time) error
	Delete(ctx context.Context, id int64) error
}
