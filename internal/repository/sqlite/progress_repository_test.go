package sqlite_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/pmarks/vocabflash/internal/models"
	"github.com/pmarks/vocabflash/internal/repository"
	"github.com/pmarks/vocabflash/internal/repository/sqlite"
	"github.com/pmarks/vocabflash/internal/testutil"
)

type ProgressRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.ProgressRepository
}

func (s *ProgressRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewProgressRepository(s.db)
}

func (s *ProgressRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *ProgressRepositorySuite) seedLearnerAndWords(wordCount int) (int64, []int64) {
	ctx := context.Background()

	res, err := s.db.ExecContext(ctx, `INSERT INTO learners (name) VALUES (?)`, "anna")
	s.Require().NoError(err)
	learnerID, err := res.LastInsertId()
	s.Require().NoError(err)

	wordIDs := make([]int64, 0, wordCount)
	for i := 0; i < wordCount; i++ {
		res, err := s.db.ExecContext(ctx, `INSERT INTO words (term, translation) VALUES (?, ?)`,
			fmt.Sprintf("term-%d", i), fmt.Sprintf("translation-%d", i))
		s.Require().NoError(err)
		id, err := res.LastInsertId()
		s.Require().NoError(err)
		wordIDs = append(wordIDs, id)
	}
	return learnerID, wordIDs
}

func (s *ProgressRepositorySuite) progressFor(learnerID, wordID int64, status models.Status) models.WordProgress {
	p := models.NewWordProgress(learnerID, wordID)
	p.Status = status
	p.NextReviewAt = time.Now()
	p.RecommendedReviewAt = time.Now()
	return p
}

func (s *ProgressRepositorySuite) TestUpsertAndGet() {
	ctx := context.Background()
	learnerID, wordIDs := s.seedLearnerAndWords(1)

	p := s.progressFor(learnerID, wordIDs[0], models.StatusLearning)
	p.TotalReviews = 4
	p.CorrectAnswers = 3
	p.Streak = 2
	p.Repetitions = 2
	p.EaseFactor = 2.3
	p.IntervalDays = 6
	p.RecognitionReviews = 3
	p.RecognitionCorrect = 2

	s.Require().NoError(s.repo.Upsert(ctx, p))

	got, err := s.repo.Get(ctx, learnerID, wordIDs[0])
	s.Require().NoError(err)
	s.Require().NotNil(got)
	s.Assert().Equal(4, got.TotalReviews)
	s.Assert().Equal(3, got.CorrectAnswers)
	s.Assert().Equal(2, got.Streak)
	s.Assert().InDelta(2.3, got.EaseFactor, 1e-9)
	s.Assert().Equal(6, got.IntervalDays)
	s.Assert().Equal(models.StatusLearning, got.Status)
	s.Assert().Equal(3, got.RecognitionReviews)

	// A second upsert for the same pair updates in place.
	p.Streak = 3
	p.TotalReviews = 5
	p.CorrectAnswers = 4
	s.Require().NoError(s.repo.Upsert(ctx, p))

	got, err = s.repo.Get(ctx, learnerID, wordIDs[0])
	s.Require().NoError(err)
	s.Assert().Equal(3, got.Streak)

	var count int
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM word_progress`).Scan(&count)
	s.Require().NoError(err)
	s.Assert().Equal(1, count, "upsert must never duplicate a (learner, word) pair")
}

func (s *ProgressRepositorySuite) TestGetMissingReturnsNil() {
	learnerID, _ := s.seedLearnerAndWords(0)

	got, err := s.repo.Get(context.Background(), learnerID, 12345)
	s.Require().NoError(err)
	s.Assert().Nil(got)
}

func (s *ProgressRepositorySuite) TestCountByStatusIncludesUnseenWords() {
	ctx := context.Background()
	learnerID, wordIDs := s.seedLearnerAndWords(3)

	s.Require().NoError(s.repo.Upsert(ctx, s.progressFor(learnerID, wordIDs[0], models.StatusLearning)))

	counts, err := s.repo.CountByStatus(ctx, learnerID)
	s.Require().NoError(err)
	s.Assert().Equal(2, counts[models.StatusNew], "unseen words count as new")
	s.Assert().Equal(1, counts[models.StatusLearning])
	s.Assert().Equal(0, counts[models.StatusReviewing])
	s.Assert().Equal(0, counts[models.StatusMastered])
}

func (s *ProgressRepositorySuite) TestNewCandidatesExcludeStartedWords() {
	ctx := context.Background()
	learnerID, wordIDs := s.seedLearnerAndWords(4)

	// One word moved past new, one explicitly still new.
	s.Require().NoError(s.repo.Upsert(ctx, s.progressFor(learnerID, wordIDs[0], models.StatusLearning)))
	s.Require().NoError(s.repo.Upsert(ctx, s.progressFor(learnerID, wordIDs[1], models.StatusNew)))

	items, err := s.repo.NewCandidates(ctx, learnerID, 10)
	s.Require().NoError(err)
	s.Require().Len(items, 3)

	for _, item := range items {
		s.Assert().NotEqual(wordIDs[0], item.Word.ID, "started words are not new candidates")
	}

	// Newest first, falling back to id for same-second inserts.
	s.Assert().Greater(items[0].Word.ID, items[1].Word.ID)
}

func (s *ProgressRepositorySuite) TestDueCandidatesOrderedByUrgency() {
	ctx := context.Background()
	learnerID, wordIDs := s.seedLearnerAndWords(3)

	now := time.Now()
	for i, wordID := range wordIDs {
		p := s.progressFor(learnerID, wordID, models.StatusReviewing)
		// Word 0 is the least urgent, word 2 the most overdue.
		p.RecommendedReviewAt = now.AddDate(0, 0, 2-i*2)
		s.Require().NoError(s.repo.Upsert(ctx, p))
	}

	items, err := s.repo.DueCandidates(ctx, learnerID, models.StatusReviewing, 10)
	s.Require().NoError(err)
	s.Require().Len(items, 3)

	s.Assert().Equal(wordIDs[2], items[0].Word.ID, "most overdue word comes first")
	s.Assert().Equal(wordIDs[0], items[2].Word.ID)
	for _, item := range items {
		s.Require().NotNil(item.Progress)
		s.Assert().Equal(models.StatusReviewing, item.Progress.Status)
	}
}

func (s *ProgressRepositorySuite) TestDueCandidatesRespectLimit() {
	ctx := context.Background()
	learnerID, wordIDs := s.seedLearnerAndWords(5)

	for _, wordID := range wordIDs {
		s.Require().NoError(s.repo.Upsert(ctx, s.progressFor(learnerID, wordID, models.StatusLearning)))
	}

	items, err := s.repo.DueCandidates(ctx, learnerID, models.StatusLearning, 2)
	s.Require().NoError(err)
	s.Assert().Len(items, 2)
}

func (s *ProgressRepositorySuite) TestInTxRollsBackOnError() {
	ctx := context.Background()
	learnerID, wordIDs := s.seedLearnerAndWords(2)

	err := s.repo.InTx(ctx, func(txRepo repository.ProgressRepository) error {
		if err := txRepo.Upsert(ctx, s.progressFor(learnerID, wordIDs[0], models.StatusLearning)); err != nil {
			return err
		}
		return fmt.Errorf("boom")
	})
	s.Require().Error(err)

	got, err := s.repo.Get(ctx, learnerID, wordIDs[0])
	s.Require().NoError(err)
	s.Assert().Nil(got, "a failed transaction leaves no partial progress")
}

func (s *ProgressRepositorySuite) TestInTxCommitsOnSuccess() {
	ctx := context.Background()
	learnerID, wordIDs := s.seedLearnerAndWords(2)

	err := s.repo.InTx(ctx, func(txRepo repository.ProgressRepository) error {
		for _, wordID := range wordIDs {
			if err := txRepo.Upsert(ctx, s.progressFor(learnerID, wordID, models.StatusLearning)); err != nil {
				return err
			}
		}
		return nil
	})
	s.Require().NoError(err)

	counts, err := s.repo.CountByStatus(ctx, learnerID)
	s.Require().NoError(err)
	s.Assert().Equal(2, counts[models.StatusLearning])
}

func (s *ProgressRepositorySuite) TestReset() {
	ctx := context.Background()
	learnerID, wordIDs := s.seedLearnerAndWords(2)

	for _, wordID := range wordIDs {
		s.Require().NoError(s.repo.Upsert(ctx, s.progressFor(learnerID, wordID, models.StatusMastered)))
	}

	s.Require().NoError(s.repo.Reset(ctx, learnerID))

	counts, err := s.repo.CountByStatus(ctx, learnerID)
	s.Require().NoError(err)
	s.Assert().Equal(0, counts[models.StatusMastered])
	s.Assert().Equal(2, counts[models.StatusNew], "reset words are unseen again")
}

func TestProgressRepositorySuite(t *testing.T) {
	suite.Run(t, new(ProgressRepositorySuite))
}
