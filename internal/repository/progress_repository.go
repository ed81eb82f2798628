package repository

import (
	"context"
	"time"

	"github.com/pmarks/vocabflash/internal/models"
)

// ProgressRepository handles per-learner word scheduling state.
//
// Get returns (nil, nil) when no record exists; progress records are created
// lazily on the first recorded answer.
type ProgressRepository interface {
	Get(ctx context.Context, learnerID, wordID int64) (*models.WordProgress, error)
	Upsert(ctx context.Context, progress models.WordProgress) error

	// CountByStatus returns availability per status for session composition.
	// The new count includes words with no progress record yet.
	CountByStatus(ctx context.Context, learnerID int64) (map[models.Status]int, error)

	// NewCandidates returns unseen and still-new words, newest first.
	NewCandidates(ctx context.Context, learnerID int64, limit int) ([]models.SessionItem, error)

	// DueCandidates returns words in the given status ordered by recommended
	// review date ascending, most overdue first.
	DueCandidates(ctx context.Context, learnerID int64, status models.Status, limit int) ([]models.SessionItem, error)

	InsertReviewHistory(ctx context.Context, h models.ReviewHistory) error

	// Reset deletes all progress for a learner. This is the only path that
	// ever removes progress records.
	Reset(ctx context.Context, learnerID int64) error

	// InTx runs fn against a repository bound to a single transaction,
	// committing on nil and rolling back on error. Nested calls reuse the
	// surrounding transaction.
	InTx(ctx context.Context, fn func(ProgressRepository) error) error
}

// StatsRepository handles aggregated learner statistics
type StatsRepository interface {
	LearnerStats(ctx context.Context, learnerID int64, now time.Time) (*models.LearnerStats, error)
	ReviewsPerDay(ctx context.Context, learnerID int64, days int) ([]models.DailyReviewCount, error)
}
