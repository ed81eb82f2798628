package repository

import (
	"context"

	"github.com/pmarks/vocabflash/internal/models"
)

// WordRepository handles word catalogue data access
type WordRepository interface {
	Get(ctx context.Context, id int64) (*models.Word, error)
	List(ctx context.Context, filter models.WordFilter) ([]models.Word, error)
	Count(ctx context.Context, filter models.WordFilter) (int, error)
	Insert(ctx context.Context, word models.Word) (int64, error)
	InsertBatch(ctx context.Context, words []models.Word) ([]int64, error)
}
