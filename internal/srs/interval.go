package srs

import (
	"math"
	"time"

	"github.com/pmarks/vocabflash/internal/errors"
	"github.com/pmarks/vocabflash/internal/models"
)

const (
	// MinEaseFactor is the floor below which an ease factor never drops.
	MinEaseFactor = 1.3

	// MaxIntervalDays caps interval growth at one year.
	MaxIntervalDays = 365

	easePenalty = 0.2
)

// Strategy computes the next scheduling state for a single answer.
// Implementations are pure: they fold the answer into the record's counters
// and scheduling fields and perform no I/O.
type Strategy interface {
	Name() string
	NextState(p models.WordProgress, correct bool, now time.Time) (models.WordProgress, error)
}

// StrategyFor returns the registered strategy with the given name.
func StrategyFor(name string) (Strategy, error) {
	switch name {
	case "sm2":
		return NewSM2Strategy(), nil
	case "streak":
		return NewStreakBucketStrategy(), nil
	default:
		return nil, errors.NewValidationError("strategy", "unknown interval strategy: "+name)
	}
}

func validateState(p models.WordProgress) error {
	if p.EaseFactor < MinEaseFactor {
		return errors.NewValidationError("ease_factor", "must be at least 1.3")
	}
	if p.IntervalDays < 1 {
		return errors.NewValidationError("interval_days", "must be at least 1")
	}
	if p.CorrectAnswers > p.TotalReviews {
		return errors.NewValidationError("correct_answers", "cannot exceed total reviews")
	}
	return nil
}

// foldAnswer applies the counter updates shared by every strategy.
func foldAnswer(p models.WordProgress, correct bool) models.WordProgress {
	p.TotalReviews++
	p.LastAnswerCorrect = correct
	if correct {
		p.CorrectAnswers++
		p.Streak++
		p.Repetitions++
	} else {
		p.Streak = 0
		p.Repetitions = 0
	}
	return p
}

// StartOfDay truncates t to calendar-day granularity so repeated reviews
// never accumulate time-of-day drift.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SM2Strategy is the ease-multiplicative policy: the first two successful
// repetitions schedule 1 and 6 days out, after that the interval grows by the
// ease factor. A miss resets progress and lowers the ease factor.
type SM2Strategy struct{}

func NewSM2Strategy() *SM2Strategy {
	return &SM2Strategy{}
}

func (s *SM2Strategy) Name() string { return "sm2" }

func (s *SM2Strategy) NextState(p models.WordProgress, correct bool, now time.Time) (models.WordProgress, error) {
	if err := validateState(p); err != nil {
		return p, err
	}

	p = foldAnswer(p, correct)

	if correct {
		switch p.Repetitions {
		case 1:
			p.IntervalDays = 1
		case 2:
			p.IntervalDays = 6
		default:
			p.IntervalDays = int(math.Round(float64(p.IntervalDays) * p.EaseFactor))
		}
		if p.IntervalDays > MaxIntervalDays {
			p.IntervalDays = MaxIntervalDays
		}
	} else {
		p.IntervalDays = 1
		p.EaseFactor = math.Max(MinEaseFactor, p.EaseFactor-easePenalty)
	}

	p.NextReviewAt = StartOfDay(now).AddDate(0, 0, p.IntervalDays)
	return p, nil
}

// StreakBucketStrategy derives the interval from discrete streak buckets and
// stretches or shrinks it by the learner's accuracy on the word. It never
// touches the ease factor.
type StreakBucketStrategy struct {
	Buckets []int

	// Accuracy cutoffs and their multipliers.
	LowAccuracy       float64
	LowMultiplier     float64
	MidAccuracy       float64
	MidMultiplier     float64
	HighAccuracy      float64
	HighMultiplier    float64
	ExperienceReviews int
	ExperienceBonus   float64

	// LearningCapDays bounds the interval while the word is still learning.
	LearningCapDays int
}

func NewStreakBucketStrategy() *StreakBucketStrategy {
	return &StreakBucketStrategy{
		Buckets:           []int{1, 3, 7, 14, 30},
		LowAccuracy:       0.5,
		LowMultiplier:     0.7,
		MidAccuracy:       0.7,
		MidMultiplier:     0.85,
		HighAccuracy:      0.9,
		HighMultiplier:    1.3,
		ExperienceReviews: 10,
		ExperienceBonus:   1.2,
		LearningCapDays:   3,
	}
}

func (s *StreakBucketStrategy) Name() string { return "streak" }

func (s *StreakBucketStrategy) NextState(p models.WordProgress, correct bool, now time.Time) (models.WordProgress, error) {
	if err := validateState(p); err != nil {
		return p, err
	}

	p = foldAnswer(p, correct)
	p.IntervalDays = s.IntervalFor(p)
	p.NextReviewAt = StartOfDay(now).AddDate(0, 0, p.IntervalDays)
	return p, nil
}

// IntervalFor computes the bucket interval for an already-updated record.
// The progress service uses this to stamp the recommended review date no
// matter which strategy drives the primary schedule.
func (s *StreakBucketStrategy) IntervalFor(p models.WordProgress) int {
	base := 1
	if p.Streak > 0 {
		idx := p.Streak - 1
		if idx >= len(s.Buckets) {
			idx = len(s.Buckets) - 1
		}
		base = s.Buckets[idx]
	}

	accuracy := p.Accuracy()
	multiplier := 1.0
	switch {
	case accuracy < s.LowAccuracy:
		multiplier = s.LowMultiplier
	case accuracy < s.MidAccuracy:
		multiplier = s.MidMultiplier
	case accuracy > s.HighAccuracy:
		multiplier = s.HighMultiplier
	}
	if p.TotalReviews >= s.ExperienceReviews {
		multiplier *= s.ExperienceBonus
	}

	interval := int(math.Round(float64(base) * multiplier))
	if p.Status == models.StatusLearning && interval > s.LearningCapDays {
		interval = s.LearningCapDays
	}
	if interval < 1 {
		interval = 1
	}
	return interval
}
