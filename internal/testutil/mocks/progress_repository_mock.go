package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pmarks/vocabflash/internal/models"
	"github.com/pmarks/vocabflash/internal/repository"
)

// MockProgressRepository is a mock implementation of repository.ProgressRepository
type MockProgressRepository struct {
	mock.Mock
}

func (m *MockProgressRepository) Get(ctx context.Context, learnerID, wordID int64) (*models.WordProgress, error) {
	args := m.Called(ctx, learnerID, wordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WordProgress), args.Error(1)
}

func (m *MockProgressRepository) Upsert(ctx context.Context, progress models.WordProgress) error {
	args := m.Called(ctx, progress)
	return args.Error(0)
}

func (m *MockProgressRepository) CountByStatus(ctx context.Context, learnerID int64) (map[models.Status]int, error) {
	args := m.Called(ctx, learnerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[models.Status]int), args.Error(1)
}

func (m *MockProgressRepository) NewCandidates(ctx context.Context, learnerID int64, limit int) ([]models.SessionItem, error) {
	args := m.Called(ctx, learnerID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SessionItem), args.Error(1)
}

func (m *MockProgressRepository) DueCandidates(ctx context.Context, learnerID int64, status models.Status, limit int) ([]models.SessionItem, error) {
	args := m.Called(ctx, learnerID, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SessionItem), args.Error(1)
}

func (m *MockProgressRepository) InsertReviewHistory(ctx context.Context, h models.ReviewHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockProgressRepository) Reset(ctx context.Context, learnerID int64) error {
	args := m.Called(ctx, learnerID)
	return args.Error(0)
}

// InTx runs fn against the mock itself so service tests exercise the same
// code path a real transaction would.
func (m *MockProgressRepository) InTx(ctx context.Context, fn func(repository.ProgressRepository) error) error {
	args := m.Called(ctx)
	if args.Error(0) != nil {
		return args.Error(0)
	}
	return fn(m)
}
