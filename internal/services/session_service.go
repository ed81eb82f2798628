package services

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/pmarks/vocabflash/internal/errors"
	"github.com/pmarks/vocabflash/internal/logger"
	"github.com/pmarks/vocabflash/internal/models"
	"github.com/pmarks/vocabflash/internal/repository"
	"github.com/pmarks/vocabflash/internal/srs"
)

// SessionConfig tunes session assembly.
type SessionConfig struct {
	Size              int
	MinSize           int
	NewPoolMultiplier int
	DuePoolMultiplier int
}

// SessionService assembles review sessions from the learner's current pools
type SessionService interface {
	// BuildSession assembles one session. A size of zero means the configured
	// default; anything above the configured size is clamped down to it.
	BuildSession(ctx context.Context, learnerID int64, size int, patternName string) (*models.Session, error)
}

type sessionService struct {
	progressRepo repository.ProgressRepository
	cfg          SessionConfig
	newRand      func() *rand.Rand
}

// NewSessionService creates a new SessionService
func NewSessionService(progressRepo repository.ProgressRepository, cfg SessionConfig) SessionService {
	return &sessionService{
		progressRepo: progressRepo,
		cfg:          cfg,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

func (s *sessionService) BuildSession(ctx context.Context, learnerID int64, size int, patternName string) (*models.Session, error) {
	log := logger.FromContext(ctx)
	log.Debug("building session: learner_id=%d, size=%d, pattern=%s", learnerID, size, patternName)

	if size <= 0 || size > s.cfg.Size {
		size = s.cfg.Size
	}

	available, err := s.progressRepo.CountByStatus(ctx, learnerID)
	if err != nil {
		return nil, errors.NewPersistenceError("availability count", err)
	}

	rng := s.newRand()
	targets, chosen, err := srs.Compose(available, size, patternName, rng)
	if err != nil {
		return nil, err
	}

	pools, err := s.fetchPools(ctx, learnerID, targets)
	if err != nil {
		return nil, err
	}

	items := srs.SelectCandidates(pools, targets, rng)

	if len(items) < size && len(items) < s.cfg.MinSize {
		log.Warn("under-sized session: learner_id=%d, items=%d, min=%d", learnerID, len(items), s.cfg.MinSize)
	}

	log.Info("session built: learner_id=%d, pattern=%s, items=%d", learnerID, chosen, len(items))
	return &models.Session{
		LearnerID: learnerID,
		Pattern:   chosen,
		Requested: size,
		Items:     items,
	}, nil
}

// fetchPools loads the candidate pool for every status with a nonzero target,
// one query per status. Pools are fetched oversized so selection has room to
// shuffle and truncate.
func (s *sessionService) fetchPools(ctx context.Context, learnerID int64, targets map[models.Status]int) (map[models.Status][]models.SessionItem, error) {
	pools := make(map[models.Status][]models.SessionItem, len(targets))
	poolErrs := make(map[models.Status]error, len(targets))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for status, target := range targets {
		if target == 0 {
			continue
		}
		wg.Add(1)
		go func(status models.Status, target int) {
			defer wg.Done()
			var items []models.SessionItem
			var err error
			if status == models.StatusNew {
				items, err = s.progressRepo.NewCandidates(ctx, learnerID, target*s.cfg.NewPoolMultiplier)
			} else {
				items, err = s.progressRepo.DueCandidates(ctx, learnerID, status, target*s.cfg.DuePoolMultiplier)
			}
			mu.Lock()
			pools[status] = items
			poolErrs[status] = err
			mu.Unlock()
		}(status, target)
	}
	wg.Wait()

	for status, err := range poolErrs {
		if err != nil {
			return nil, errors.NewPersistenceError("candidate fetch for "+string(status), err)
		}
	}
	return pools, nil
}
