package srs

import "github.com/pmarks/vocabflash/internal/models"

// Thresholds holds the mastery banding cutoffs. The banding between learning
// and reviewing is a product knob, so the values are configurable rather than
// hard-wired.
type Thresholds struct {
	MasteryAccuracy    float64
	MasteryStreak      int
	ReviewingAccuracy  float64
	ReviewingStreak    int
	LearningMinReviews int
}

// DefaultThresholds returns the shipped banding.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MasteryAccuracy:    0.8,
		MasteryStreak:      3,
		ReviewingAccuracy:  0.7,
		ReviewingStreak:    5,
		LearningMinReviews: 3,
	}
}

// Classify returns the mastery status for post-answer counters. The inputs
// must already include the answer being classified: a streak of zero on a
// reviewed record means the last answer was wrong.
//
// Gating on totalReviews keeps single-session jumps honest: a brand-new word
// cannot reach mastered in one sitting because the counters cannot get there.
func (t Thresholds) Classify(totalReviews, correctAnswers, streak int) models.Status {
	if totalReviews <= 0 {
		return models.StatusNew
	}

	if streak == 0 {
		// Last answer was incorrect.
		if totalReviews >= t.LearningMinReviews {
			return models.StatusLearning
		}
		return models.StatusNew
	}

	accuracy := float64(correctAnswers) / float64(totalReviews)
	if accuracy >= t.MasteryAccuracy && streak >= t.MasteryStreak {
		return models.StatusMastered
	}
	if accuracy >= t.ReviewingAccuracy && streak >= t.ReviewingStreak {
		return models.StatusReviewing
	}
	return models.StatusLearning
}

// Classify applies the default thresholds.
func Classify(totalReviews, correctAnswers, streak int) models.Status {
	return DefaultThresholds().Classify(totalReviews, correctAnswers, streak)
}
