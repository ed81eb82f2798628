package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/pmarks/vocabflash/internal/errors"
	"github.com/pmarks/vocabflash/internal/logger"
	"github.com/pmarks/vocabflash/internal/models"
	"github.com/pmarks/vocabflash/internal/repository"
	"github.com/pmarks/vocabflash/internal/srs"
)

// Review modes. Recognition shows the word and asks for the translation,
// production the other way around.
const (
	ModeRecognition = "recognition"
	ModeProduction  = "production"
)

// ProgressService folds answers into per-word scheduling state
type ProgressService interface {
	ApplyAnswer(ctx context.Context, learnerID, wordID int64, correct bool, mode string) (*models.WordProgress, *models.Transition, error)
	ApplyAnswerBatch(ctx context.Context, learnerID int64, outcomes []models.AnswerOutcome) (*models.BatchReport, error)
	Classify(totalReviews, correctAnswers, streak int) (models.Status, error)
	ResetProgress(ctx context.Context, learnerID int64) error
}

type progressService struct {
	progressRepo repository.ProgressRepository
	wordRepo     repository.WordRepository
	strategy     srs.Strategy
	recommender  *srs.StreakBucketStrategy
	thresholds   srs.Thresholds
}

// NewProgressService creates a new ProgressService. The strategy drives the
// primary review schedule; the streak-bucket policy always stamps the
// recommended review date used for urgency ordering.
func NewProgressService(progressRepo repository.ProgressRepository, wordRepo repository.WordRepository, strategy srs.Strategy) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		wordRepo:     wordRepo,
		strategy:     strategy,
		recommender:  srs.NewStreakBucketStrategy(),
		thresholds:   srs.DefaultThresholds(),
	}
}

func (s *progressService) ApplyAnswer(ctx context.Context, learnerID, wordID int64, correct bool, mode string) (*models.WordProgress, *models.Transition, error) {
	log := logger.FromContext(ctx)
	log.Debug("applying answer: learner_id=%d, word_id=%d, correct=%v, mode=%s", learnerID, wordID, correct, mode)

	// The word lookup must finish before the transaction opens: the sqlite
	// pool holds a single connection, and a query through another repository
	// while the transaction owns it would wait on that connection forever.
	word, err := s.wordRepo.Get(ctx, wordID)
	if err != nil {
		return nil, nil, errors.NewPersistenceError("word lookup", err)
	}
	if word == nil {
		return nil, nil, errors.NewNotFoundError("word", wordID)
	}

	outcome := models.AnswerOutcome{WordID: wordID, Correct: correct, Mode: mode}

	var updated *models.WordProgress
	var transition *models.Transition
	err = s.progressRepo.InTx(ctx, func(repo repository.ProgressRepository) error {
		result, err := s.applyOne(ctx, repo, learnerID, outcome, time.Now())
		if err != nil {
			return err
		}
		updated = &result.progress
		transition = &result.transition
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	s.recordHistory(ctx, learnerID, outcome)

	log.Debug("answer applied: status %s -> %s, interval=%d days",
		transition.From, transition.To, updated.IntervalDays)
	return updated, transition, nil
}

func (s *progressService) ApplyAnswerBatch(ctx context.Context, learnerID int64, outcomes []models.AnswerOutcome) (*models.BatchReport, error) {
	log := logger.FromContext(ctx)
	log.Debug("applying answer batch: learner_id=%d, outcomes=%d", learnerID, len(outcomes))

	report := &models.BatchReport{}
	now := time.Now()

	// Word lookups run before the transaction opens so they never contend
	// with it for the single pooled connection.
	resolved := make([]models.AnswerOutcome, 0, len(outcomes))
	for _, outcome := range outcomes {
		if outcome.WordID == 0 {
			log.Warn("rejecting outcome in batch: empty word id")
			report.Rejected++
			continue
		}
		word, err := s.wordRepo.Get(ctx, outcome.WordID)
		if err != nil {
			return nil, errors.NewPersistenceError("word lookup", err)
		}
		if word == nil {
			// Unknown word ids are skipped, not an error.
			report.Skipped++
			continue
		}
		resolved = append(resolved, outcome)
	}

	var applied []models.AnswerOutcome
	err := s.progressRepo.InTx(ctx, func(repo repository.ProgressRepository) error {
		for _, outcome := range resolved {
			result, err := s.applyOne(ctx, repo, learnerID, outcome, now)
			if err != nil {
				var appErr *errors.AppError
				if stderrors.As(err, &appErr) && appErr.Code == errors.ErrCodeValidation {
					// A malformed outcome rejects just that outcome.
					log.Warn("rejecting outcome in batch: %v", err)
					report.Rejected++
					continue
				}
				// Storage failures abort and roll back the whole batch.
				return err
			}

			report.Processed++
			applied = append(applied, outcome)
			t := result.transition
			switch t.Direction() {
			case models.TransitionUpgrade:
				report.Upgrades = append(report.Upgrades, t)
			case models.TransitionDowngrade:
				report.Downgrades = append(report.Downgrades, t)
			default:
				report.Maintained = append(report.Maintained, t)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, outcome := range applied {
		s.recordHistory(ctx, learnerID, outcome)
	}

	log.Info("batch applied: processed=%d, skipped=%d, rejected=%d, upgrades=%d, downgrades=%d",
		report.Processed, report.Skipped, report.Rejected, len(report.Upgrades), len(report.Downgrades))
	return report, nil
}

type applyResult struct {
	progress   models.WordProgress
	transition models.Transition
}

// applyOne folds a single answer into the progress record inside the caller's
// transaction: counters first, then scheduling, then classification, all on
// the same post-answer values. The word id must already be resolved against
// the catalogue; applyOne itself only touches word_progress.
func (s *progressService) applyOne(ctx context.Context, repo repository.ProgressRepository, learnerID int64, outcome models.AnswerOutcome, now time.Time) (applyResult, error) {
	if outcome.WordID == 0 {
		return applyResult{}, errors.NewValidationError("word_id", "cannot be empty")
	}

	current, err := repo.Get(ctx, learnerID, outcome.WordID)
	if err != nil {
		return applyResult{}, errors.NewPersistenceError("progress fetch", err)
	}
	if current == nil {
		fresh := models.NewWordProgress(learnerID, outcome.WordID)
		current = &fresh
	}
	previous := current.Status

	updated, err := s.strategy.NextState(*current, outcome.Correct, now)
	if err != nil {
		return applyResult{}, err
	}

	switch outcome.Mode {
	case ModeRecognition:
		updated.RecognitionReviews++
		if outcome.Correct {
			updated.RecognitionCorrect++
		}
	case ModeProduction:
		updated.ProductionReviews++
		if outcome.Correct {
			updated.ProductionCorrect++
		}
	}

	updated.PreviousStatus = previous
	updated.Status = s.thresholds.Classify(updated.TotalReviews, updated.CorrectAnswers, updated.Streak)

	// The recommended date uses the bucket policy on the post-answer state,
	// including the freshly classified status for its learning cap.
	recDays := s.recommender.IntervalFor(updated)
	updated.RecommendedReviewAt = srs.StartOfDay(now).AddDate(0, 0, recDays)

	if err := repo.Upsert(ctx, updated); err != nil {
		return applyResult{}, errors.NewPersistenceError("progress update", err)
	}

	return applyResult{
		progress:   updated,
		transition: models.Transition{WordID: outcome.WordID, From: previous, To: updated.Status},
	}, nil
}

// recordHistory appends to the review log outside the progress transaction.
// History is informational, so a failure here never fails the review.
func (s *progressService) recordHistory(ctx context.Context, learnerID int64, outcome models.AnswerOutcome) {
	h := models.ReviewHistory{
		LearnerID:      learnerID,
		WordID:         outcome.WordID,
		Correct:        outcome.Correct,
		Mode:           outcome.Mode,
		ResponseTimeMs: outcome.ResponseTimeMs,
	}
	if err := s.progressRepo.InsertReviewHistory(ctx, h); err != nil {
		logger.FromContext(ctx).Warn("failed to store review history: %v", err)
	}
}

func (s *progressService) Classify(totalReviews, correctAnswers, streak int) (models.Status, error) {
	if totalReviews < 0 || correctAnswers < 0 || streak < 0 {
		return "", errors.NewValidationError("counters", "cannot be negative")
	}
	if correctAnswers > totalReviews {
		return "", errors.NewValidationError("correct_answers", "cannot exceed total reviews")
	}
	return s.thresholds.Classify(totalReviews, correctAnswers, streak), nil
}

func (s *progressService) ResetProgress(ctx context.Context, learnerID int64) error {
	log := logger.FromContext(ctx)
	log.Info("resetting progress: learner_id=%d", learnerID)

	if err := s.progressRepo.Reset(ctx, learnerID); err != nil {
		return errors.NewPersistenceError("progress reset", err)
	}
	return nil
}
