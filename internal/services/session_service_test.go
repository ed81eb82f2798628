package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pmarks/vocabflash/internal/errors"
	"github.com/pmarks/vocabflash/internal/models"
	"github.com/pmarks/vocabflash/internal/services"
	"github.com/pmarks/vocabflash/internal/testutil/mocks"
)

func testSessionConfig() services.SessionConfig {
	return services.SessionConfig{
		Size:              10,
		MinSize:           5,
		NewPoolMultiplier: 5,
		DuePoolMultiplier: 2,
	}
}

// items builds a candidate pool of n words in the given status. Status new
// means an unseen word, so the progress pointer stays nil.
func items(status models.Status, n int) []models.SessionItem {
	out := make([]models.SessionItem, n)
	for i := range out {
		out[i] = models.SessionItem{Word: models.Word{ID: int64(i + 1)}}
		if status != models.StatusNew {
			out[i].Progress = &models.WordProgress{Status: status}
		}
	}
	return out
}

func countByStatus(t *testing.T, session *models.Session) map[models.Status]int {
	t.Helper()
	counts := map[models.Status]int{}
	for _, item := range session.Items {
		if item.Progress == nil {
			counts[models.StatusNew]++
			continue
		}
		counts[item.Progress.Status]++
	}
	return counts
}

func TestBuildSession_FullAvailability(t *testing.T) {
	progressRepo := new(mocks.MockProgressRepository)
	svc := services.NewSessionService(progressRepo, testSessionConfig())

	progressRepo.On("CountByStatus", mock.Anything, testLearnerID).Return(map[models.Status]int{
		models.StatusNew:       20,
		models.StatusLearning:  20,
		models.StatusReviewing: 20,
		models.StatusMastered:  20,
	}, nil)
	progressRepo.On("NewCandidates", mock.Anything, testLearnerID, mock.AnythingOfType("int")).
		Return(items(models.StatusNew, 20), nil)
	for _, status := range []models.Status{models.StatusLearning, models.StatusReviewing, models.StatusMastered} {
		progressRepo.On("DueCandidates", mock.Anything, testLearnerID, status, mock.AnythingOfType("int")).
			Return(items(status, 20), nil)
	}

	session, err := svc.BuildSession(context.Background(), testLearnerID, 0, "balanced")

	require.NoError(t, err)
	assert.Equal(t, "balanced", session.Pattern)
	assert.Equal(t, 10, session.Requested)
	assert.Len(t, session.Items, 10)

	counts := countByStatus(t, session)
	assert.Equal(t, 5, counts[models.StatusNew])
	assert.Equal(t, 3, counts[models.StatusLearning])
	assert.Equal(t, 1, counts[models.StatusReviewing])
	assert.Equal(t, 1, counts[models.StatusMastered])
}

func TestBuildSession_RedistributesNewShortfall(t *testing.T) {
	progressRepo := new(mocks.MockProgressRepository)
	svc := services.NewSessionService(progressRepo, testSessionConfig())

	progressRepo.On("CountByStatus", mock.Anything, testLearnerID).Return(map[models.Status]int{
		models.StatusNew:       2,
		models.StatusLearning:  20,
		models.StatusReviewing: 20,
		models.StatusMastered:  20,
	}, nil)
	progressRepo.On("NewCandidates", mock.Anything, testLearnerID, mock.AnythingOfType("int")).
		Return(items(models.StatusNew, 2), nil)
	for _, status := range []models.Status{models.StatusLearning, models.StatusReviewing, models.StatusMastered} {
		progressRepo.On("DueCandidates", mock.Anything, testLearnerID, status, mock.AnythingOfType("int")).
			Return(items(status, 20), nil)
	}

	session, err := svc.BuildSession(context.Background(), testLearnerID, 0, "balanced")

	require.NoError(t, err)
	assert.Len(t, session.Items, 10, "shortfall in one pool fills from the others")

	counts := countByStatus(t, session)
	assert.Equal(t, 2, counts[models.StatusNew], "new is capped at availability")
	assert.Equal(t, 4, counts[models.StatusLearning], "learning absorbs shortfall first")
	assert.Equal(t, 2, counts[models.StatusReviewing])
	assert.Equal(t, 2, counts[models.StatusMastered])
}

func TestBuildSession_DegradesWhenNearlyEmpty(t *testing.T) {
	progressRepo := new(mocks.MockProgressRepository)
	svc := services.NewSessionService(progressRepo, testSessionConfig())

	progressRepo.On("CountByStatus", mock.Anything, testLearnerID).Return(map[models.Status]int{
		models.StatusNew:      2,
		models.StatusLearning: 1,
	}, nil)
	progressRepo.On("NewCandidates", mock.Anything, testLearnerID, mock.AnythingOfType("int")).
		Return(items(models.StatusNew, 2), nil)
	progressRepo.On("DueCandidates", mock.Anything, testLearnerID, models.StatusLearning, mock.AnythingOfType("int")).
		Return(items(models.StatusLearning, 1), nil)

	session, err := svc.BuildSession(context.Background(), testLearnerID, 0, "balanced")

	require.NoError(t, err, "a short session is still a session")
	assert.Len(t, session.Items, 3)
}

func TestBuildSession_CustomSizeScalesPattern(t *testing.T) {
	progressRepo := new(mocks.MockProgressRepository)
	svc := services.NewSessionService(progressRepo, testSessionConfig())

	progressRepo.On("CountByStatus", mock.Anything, testLearnerID).Return(map[models.Status]int{
		models.StatusNew:       20,
		models.StatusLearning:  20,
		models.StatusReviewing: 20,
		models.StatusMastered:  20,
	}, nil)
	progressRepo.On("NewCandidates", mock.Anything, testLearnerID, mock.AnythingOfType("int")).
		Return(items(models.StatusNew, 20), nil)
	for _, status := range []models.Status{models.StatusLearning, models.StatusReviewing, models.StatusMastered} {
		progressRepo.On("DueCandidates", mock.Anything, testLearnerID, status, mock.AnythingOfType("int")).
			Return(items(status, 20), nil)
	}

	session, err := svc.BuildSession(context.Background(), testLearnerID, 5, "balanced")

	require.NoError(t, err)
	assert.Equal(t, 5, session.Requested)
	assert.Len(t, session.Items, 5, "requested size drives the session, not the configured default")

	counts := countByStatus(t, session)
	assert.Equal(t, 3, counts[models.StatusNew], "the pattern keeps its new emphasis when scaled down")
	assert.Equal(t, 2, counts[models.StatusLearning])
}

func TestBuildSession_SizeClampedToConfiguredMax(t *testing.T) {
	progressRepo := new(mocks.MockProgressRepository)
	svc := services.NewSessionService(progressRepo, testSessionConfig())

	progressRepo.On("CountByStatus", mock.Anything, testLearnerID).Return(map[models.Status]int{
		models.StatusNew:       20,
		models.StatusLearning:  20,
		models.StatusReviewing: 20,
		models.StatusMastered:  20,
	}, nil)
	progressRepo.On("NewCandidates", mock.Anything, testLearnerID, mock.AnythingOfType("int")).
		Return(items(models.StatusNew, 20), nil)
	for _, status := range []models.Status{models.StatusLearning, models.StatusReviewing, models.StatusMastered} {
		progressRepo.On("DueCandidates", mock.Anything, testLearnerID, status, mock.AnythingOfType("int")).
			Return(items(status, 20), nil)
	}

	session, err := svc.BuildSession(context.Background(), testLearnerID, 50, "balanced")

	require.NoError(t, err)
	assert.Equal(t, 10, session.Requested, "oversized requests clamp to the configured session size")
	assert.Len(t, session.Items, 10)
}

func TestBuildSession_UnknownPattern(t *testing.T) {
	progressRepo := new(mocks.MockProgressRepository)
	svc := services.NewSessionService(progressRepo, testSessionConfig())

	progressRepo.On("CountByStatus", mock.Anything, testLearnerID).Return(map[models.Status]int{}, nil)

	_, err := svc.BuildSession(context.Background(), testLearnerID, 0, "cramming")

	require.Error(t, err)
	appErr, ok := err.(*errors.AppError)
	require.True(t, ok)
	assert.Equal(t, errors.ErrCodeValidation, appErr.Code)
}
