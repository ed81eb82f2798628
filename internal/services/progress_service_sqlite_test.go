package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pmarks/vocabflash/internal/models"
	"github.com/pmarks/vocabflash/internal/repository"
	"github.com/pmarks/vocabflash/internal/repository/sqlite"
	"github.com/pmarks/vocabflash/internal/services"
	"github.com/pmarks/vocabflash/internal/srs"
	"github.com/pmarks/vocabflash/internal/testutil"
)

// These tests run the progress service against real sqlite repositories on a
// single-connection pool, the production configuration. Any query that
// contends with the open review transaction for the connection hangs here
// instead of passing silently through mocks.

func newSQLiteProgressService(t *testing.T) (services.ProgressService, repository.ProgressRepository, int64, []int64) {
	t.Helper()
	db := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.MustClose(t, db) })

	ctx := context.Background()
	res, err := db.ExecContext(ctx, `INSERT INTO learners (name) VALUES (?)`, "mira")
	require.NoError(t, err)
	learnerID, err := res.LastInsertId()
	require.NoError(t, err)

	var wordIDs []int64
	for _, term := range []string{"der Apfel", "die Birne"} {
		res, err := db.ExecContext(ctx, `INSERT INTO words (term, translation) VALUES (?, ?)`, term, "fruit")
		require.NoError(t, err)
		id, err := res.LastInsertId()
		require.NoError(t, err)
		wordIDs = append(wordIDs, id)
	}

	progressRepo := sqlite.NewProgressRepository(db)
	svc := services.NewProgressService(progressRepo, sqlite.NewWordRepository(db), srs.NewSM2Strategy())
	return svc, progressRepo, learnerID, wordIDs
}

// awaitDone fails the test when the service call does not return; with one
// pooled connection a stray query inside the transaction blocks forever.
func awaitDone(t *testing.T, done <-chan error) {
	t.Helper()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("call did not return: a query is starving the single-connection pool")
	}
}

func TestApplyAnswer_SingleConnectionDatabase(t *testing.T) {
	svc, progressRepo, learnerID, wordIDs := newSQLiteProgressService(t)

	var progress *models.WordProgress
	done := make(chan error, 1)
	go func() {
		var err error
		progress, _, err = svc.ApplyAnswer(context.Background(), learnerID, wordIDs[0], true, services.ModeRecognition)
		done <- err
	}()
	awaitDone(t, done)

	require.NotNil(t, progress)
	assert.Equal(t, 1, progress.TotalReviews)
	assert.Equal(t, models.StatusLearning, progress.Status)

	stored, err := progressRepo.Get(context.Background(), learnerID, wordIDs[0])
	require.NoError(t, err)
	require.NotNil(t, stored, "the review must be committed, not stuck in an open transaction")
	assert.Equal(t, 1, stored.TotalReviews)
}

func TestApplyAnswer_SingleConnectionDatabase_UnknownWord(t *testing.T) {
	svc, _, learnerID, _ := newSQLiteProgressService(t)

	done := make(chan error, 1)
	go func() {
		_, _, err := svc.ApplyAnswer(context.Background(), learnerID, 9999, true, services.ModeRecognition)
		done <- err
	}()

	select {
	case err := <-done:
		require.Error(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("call did not return: a query is starving the single-connection pool")
	}
}

func TestApplyAnswerBatch_SingleConnectionDatabase(t *testing.T) {
	svc, progressRepo, learnerID, wordIDs := newSQLiteProgressService(t)

	var report *models.BatchReport
	done := make(chan error, 1)
	go func() {
		var err error
		report, err = svc.ApplyAnswerBatch(context.Background(), learnerID, []models.AnswerOutcome{
			{WordID: wordIDs[0], Correct: true, Mode: services.ModeRecognition},
			{WordID: wordIDs[1], Correct: false, Mode: services.ModeProduction},
			{WordID: 9999, Correct: true, Mode: services.ModeRecognition},
		})
		done <- err
	}()
	awaitDone(t, done)

	require.NotNil(t, report)
	assert.Equal(t, 2, report.Processed)
	assert.Equal(t, 1, report.Skipped)

	counts, err := progressRepo.CountByStatus(context.Background(), learnerID)
	require.NoError(t, err)
	assert.Equal(t, 1, counts[models.StatusLearning], "the committed batch is visible after it returns")
}
