package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"github.com/pmarks/vocabflash/internal/logger"
	"github.com/pmarks/vocabflash/internal/models"
	"github.com/pmarks/vocabflash/internal/repository"
)

const progressColumns = `id, learner_id, word_id, total_reviews, correct_answers, streak, repetitions,
ease_factor, interval_days, next_review_at, recommended_review_at, status, previous_status,
last_answer_correct, recognition_reviews, recognition_correct, production_reviews, production_correct,
created_at, updated_at`

type progressRepository struct {
	db *sql.DB // nil when bound to a transaction
	q  queryer
}

// NewProgressRepository creates a new ProgressRepository implementation
func NewProgressRepository(db *sql.DB) repository.ProgressRepository {
	return &progressRepository{db: db, q: db}
}

func scanProgress(scan func(dest ...any) error) (models.WordProgress, error) {
	var p models.WordProgress
	var status, previous string
	err := scan(&p.ID, &p.LearnerID, &p.WordID, &p.TotalReviews, &p.CorrectAnswers, &p.Streak,
		&p.Repetitions, &p.EaseFactor, &p.IntervalDays, &p.NextReviewAt, &p.RecommendedReviewAt,
		&status, &previous, &p.LastAnswerCorrect, &p.RecognitionReviews, &p.RecognitionCorrect,
		&p.ProductionReviews, &p.ProductionCorrect, &p.CreatedAt, &p.UpdatedAt)
	p.Status = models.Status(status)
	p.PreviousStatus = models.Status(previous)
	return p, err
}

func (r *progressRepository) Get(ctx context.Context, learnerID, wordID int64) (*models.WordProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	row := r.q.QueryRowContext(ctx, `
SELECT `+progressColumns+`
FROM word_progress
WHERE learner_id = ? AND word_id = ?
`, learnerID, wordID)

	p, err := scanProgress(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Error("failed to get progress: %v", err)
		return nil, err
	}
	return &p, nil
}

func (r *progressRepository) Upsert(ctx context.Context, p models.WordProgress) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("upserting progress: learner_id=%d, word_id=%d, status=%s", p.LearnerID, p.WordID, p.Status)

	_, err := r.q.ExecContext(ctx, `
INSERT INTO word_progress (
    learner_id, word_id, total_reviews, correct_answers, streak, repetitions,
    ease_factor, interval_days, next_review_at, recommended_review_at, status, previous_status,
    last_answer_correct, recognition_reviews, recognition_correct, production_reviews, production_correct,
    updated_at
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
ON CONFLICT(learner_id, word_id) DO UPDATE SET
    total_reviews = excluded.total_reviews,
    correct_answers = excluded.correct_answers,
    streak = excluded.streak,
    repetitions = excluded.repetitions,
    ease_factor = excluded.ease_factor,
    interval_days = excluded.interval_days,
    next_review_at = excluded.next_review_at,
    recommended_review_at = excluded.recommended_review_at,
    status = excluded.status,
    previous_status = excluded.previous_status,
    last_answer_correct = excluded.last_answer_correct,
    recognition_reviews = excluded.recognition_reviews,
    recognition_correct = excluded.recognition_correct,
    production_reviews = excluded.production_reviews,
    production_correct = excluded.production_correct,
    updated_at = CURRENT_TIMESTAMP
`, p.LearnerID, p.WordID, p.TotalReviews, p.CorrectAnswers, p.Streak, p.Repetitions,
		p.EaseFactor, p.IntervalDays, p.NextReviewAt, p.RecommendedReviewAt, string(p.Status), string(p.PreviousStatus),
		p.LastAnswerCorrect, p.RecognitionReviews, p.RecognitionCorrect, p.ProductionReviews, p.ProductionCorrect)
	if err != nil {
		log.Error("failed to upsert progress: %v", err)
	}
	return err
}

func (r *progressRepository) CountByStatus(ctx context.Context, learnerID int64) (map[models.Status]int, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	counts := make(map[models.Status]int, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		counts[s] = 0
	}

	rows, err := r.q.QueryContext(ctx, `
SELECT status, COUNT(*)
FROM word_progress
WHERE learner_id = ?
GROUP BY status
`, learnerID)
	if err != nil {
		log.Error("failed to count progress by status: %v", err)
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[models.Status(status)] += count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Words the learner has never answered count as new.
	var unseen int
	err = r.q.QueryRowContext(ctx, `
SELECT COUNT(*)
FROM words w
WHERE NOT EXISTS (
    SELECT 1 FROM word_progress p WHERE p.word_id = w.id AND p.learner_id = ?
)
`, learnerID).Scan(&unseen)
	if err != nil {
		log.Error("failed to count unseen words: %v", err)
		return nil, err
	}
	counts[models.StatusNew] += unseen

	return counts, nil
}

func (r *progressRepository) NewCandidates(ctx context.Context, learnerID int64, limit int) ([]models.SessionItem, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("fetching new candidates: learner_id=%d, limit=%d", learnerID, limit)

	rows, err := r.q.QueryContext(ctx, `
SELECT w.id, w.term, w.translation, w.topic, w.difficulty, w.example, w.created_at,
       p.id, p.total_reviews, p.correct_answers, p.streak, p.repetitions,
       p.ease_factor, p.interval_days, p.status
FROM words w
LEFT JOIN word_progress p ON p.word_id = w.id AND p.learner_id = ?
WHERE p.id IS NULL OR p.status = 'new'
ORDER BY w.created_at DESC, w.id DESC
LIMIT ?
`, learnerID, limit)
	if err != nil {
		log.Error("failed to query new candidates: %v", err)
		return nil, err
	}
	defer rows.Close()

	var items []models.SessionItem
	for rows.Next() {
		var item models.SessionItem
		var progressID sql.NullInt64
		var totalReviews, correctAnswers, streak, repetitions, intervalDays sql.NullInt64
		var easeFactor sql.NullFloat64
		var status sql.NullString
		err := rows.Scan(&item.Word.ID, &item.Word.Term, &item.Word.Translation, &item.Word.Topic,
			&item.Word.Difficulty, &item.Word.Example, &item.Word.CreatedAt,
			&progressID, &totalReviews, &correctAnswers, &streak, &repetitions,
			&easeFactor, &intervalDays, &status)
		if err != nil {
			log.Error("failed to scan new candidate row: %v", err)
			return nil, err
		}
		if progressID.Valid {
			item.Progress = &models.WordProgress{
				ID:             progressID.Int64,
				LearnerID:      learnerID,
				WordID:         item.Word.ID,
				TotalReviews:   int(totalReviews.Int64),
				CorrectAnswers: int(correctAnswers.Int64),
				Streak:         int(streak.Int64),
				Repetitions:    int(repetitions.Int64),
				EaseFactor:     easeFactor.Float64,
				IntervalDays:   int(intervalDays.Int64),
				Status:         models.Status(status.String),
			}
		}
		items = append(items, item)
	}
	log.Debug("found %d new candidates", len(items))
	return items, rows.Err()
}

func (r *progressRepository) DueCandidates(ctx context.Context, learnerID int64, status models.Status, limit int) ([]models.SessionItem, error) {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Debug("fetching due candidates: learner_id=%d, status=%s, limit=%d", learnerID, status, limit)

	rows, err := r.q.QueryContext(ctx, `
SELECT w.id, w.term, w.translation, w.topic, w.difficulty, w.example, w.created_at,
       `+prefixedProgressColumns("p")+`
FROM word_progress p
JOIN words w ON w.id = p.word_id
WHERE p.learner_id = ? AND p.status = ?
ORDER BY p.recommended_review_at ASC, p.id ASC
LIMIT ?
`, learnerID, string(status), limit)
	if err != nil {
		log.Error("failed to query due candidates: %v", err)
		return nil, err
	}
	defer rows.Close()

	var items []models.SessionItem
	for rows.Next() {
		var item models.SessionItem
		var p models.WordProgress
		var statusStr, previousStr string
		err := rows.Scan(&item.Word.ID, &item.Word.Term, &item.Word.Translation, &item.Word.Topic,
			&item.Word.Difficulty, &item.Word.Example, &item.Word.CreatedAt,
			&p.ID, &p.LearnerID, &p.WordID, &p.TotalReviews, &p.CorrectAnswers, &p.Streak,
			&p.Repetitions, &p.EaseFactor, &p.IntervalDays, &p.NextReviewAt, &p.RecommendedReviewAt,
			&statusStr, &previousStr, &p.LastAnswerCorrect, &p.RecognitionReviews, &p.RecognitionCorrect,
			&p.ProductionReviews, &p.ProductionCorrect, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			log.Error("failed to scan due candidate row: %v", err)
			return nil, err
		}
		p.Status = models.Status(statusStr)
		p.PreviousStatus = models.Status(previousStr)
		item.Progress = &p
		items = append(items, item)
	}
	log.Debug("found %d %s candidates", len(items), status)
	return items, rows.Err()
}

func (r *progressRepository) InsertReviewHistory(ctx context.Context, h models.ReviewHistory) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")

	_, err := r.q.ExecContext(ctx, `
INSERT INTO review_history (learner_id, word_id, correct, mode, response_time_ms)
VALUES (?, ?, ?, ?, ?)
`, h.LearnerID, h.WordID, h.Correct, h.Mode, h.ResponseTimeMs)
	if err != nil {
		log.Error("failed to insert review history: %v", err)
	}
	return err
}

func (r *progressRepository) Reset(ctx context.Context, learnerID int64) error {
	log := logger.FromContext(ctx).WithPrefix("progress_repo")
	log.Info("resetting all progress: learner_id=%d", learnerID)

	_, err := r.q.ExecContext(ctx, `DELETE FROM word_progress WHERE learner_id = ?`, learnerID)
	if err != nil {
		log.Error("failed to reset progress: %v", err)
	}
	return err
}

func (r *progressRepository) InTx(ctx context.Context, fn func(repository.ProgressRepository) error) error {
	if r.db == nil {
		// Already transaction-bound; reuse it.
		return fn(r)
	}
	return inTx(ctx, r.db, func(tx *sql.Tx) error {
		return fn(&progressRepository{q: tx})
	})
}

func prefixedProgressColumns(alias string) string {
	return alias + `.id, ` + alias + `.learner_id, ` + alias + `.word_id, ` + alias + `.total_reviews, ` +
		alias + `.correct_answers, ` + alias + `.streak, ` + alias + `.repetitions, ` + alias + `.ease_factor, ` +
		alias + `.interval_days, ` + alias + `.next_review_at, ` + alias + `.recommended_review_at, ` +
		alias + `.status, ` + alias + `.previous_status, ` + alias + `.last_answer_correct, ` +
		alias + `.recognition_reviews, ` + alias + `.recognition_correct, ` + alias + `.production_reviews, ` +
		alias + `.production_correct, ` + alias + `.created_at, ` + alias + `.updated_at`
}
