package sqlite

import (
	"context"
	"database/sql"
	"strconv"
	"time"

	"github.com/pmarks/vocabflash/internal/logger"
	"github.com/pmarks/vocabflash/internal/models"
	"github.com/pmarks/vocabflash/internal/repository"
)

type statsRepository struct {
	db       *sql.DB
	progress repository.ProgressRepository
}

// NewStatsRepository creates a new StatsRepository implementation
func NewStatsRepository(db *sql.DB) repository.StatsRepository {
	return &statsRepository{db: db, progress: NewProgressRepository(db)}
}

func (r *statsRepository) LearnerStats(ctx context.Context, learnerID int64, now time.Time) (*models.LearnerStats, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")

	counts, err := r.progress.CountByStatus(ctx, learnerID)
	if err != nil {
		return nil, err
	}

	stats := &models.LearnerStats{
		LearnerID:    learnerID,
		StatusCounts: counts,
	}

	err = r.db.QueryRowContext(ctx, `
SELECT COALESCE(SUM(total_reviews), 0), COALESCE(SUM(correct_answers), 0)
FROM word_progress
WHERE learner_id = ?
`, learnerID).Scan(&stats.TotalReviews, &stats.CorrectAnswers)
	if err != nil {
		log.Error("failed to sum review counters: %v", err)
		return nil, err
	}
	if stats.TotalReviews > 0 {
		stats.Accuracy = float64(stats.CorrectAnswers) / float64(stats.TotalReviews)
	}

	err = r.db.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM word_progress
WHERE learner_id = ? AND status != 'new' AND recommended_review_at <= ?
`, learnerID, now).Scan(&stats.DueToday)
	if err != nil {
		log.Error("failed to count due words: %v", err)
		return nil, err
	}

	return stats, nil
}

func (r *statsRepository) ReviewsPerDay(ctx context.Context, learnerID int64, days int) ([]models.DailyReviewCount, error) {
	log := logger.FromContext(ctx).WithPrefix("stats_repo")
	if days <= 0 {
		days = 30
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT date(reviewed_at), COUNT(*), SUM(CASE WHEN correct THEN 1 ELSE 0 END)
FROM review_history
WHERE learner_id = ? AND reviewed_at >= date('now', ?)
GROUP BY date(reviewed_at)
ORDER BY date(reviewed_at)
`, learnerID, "-"+strconv.Itoa(days)+" days")
	if err != nil {
		log.Error("failed to query reviews per day: %v", err)
		return nil, err
	}
	defer rows.Close()

	var out []models.DailyReviewCount
	for rows.Next() {
		var d models.DailyReviewCount
		if err := rows.Scan(&d.Day, &d.Reviews, &d.Correct); err != nil {
			log.Error("failed to scan daily review row: %v", err)
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}
