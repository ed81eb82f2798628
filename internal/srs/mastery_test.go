package srs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pmarks/vocabflash/internal/models"
	"github.com/pmarks/vocabflash/internal/srs"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name           string
		totalReviews   int
		correctAnswers int
		streak         int
		expected       models.Status
	}{
		{
			name:     "unreviewed is always new",
			expected: models.StatusNew,
		},
		{
			name:         "early miss stays new",
			totalReviews: 2, correctAnswers: 1, streak: 0,
			expected: models.StatusNew,
		},
		{
			name:         "miss after three reviews drops to learning",
			totalReviews: 3, correctAnswers: 2, streak: 0,
			expected: models.StatusLearning,
		},
		{
			name:         "high accuracy sustained streak masters",
			totalReviews: 5, correctAnswers: 4, streak: 3,
			expected: models.StatusMastered,
		},
		{
			name:         "long streak at moderate accuracy is reviewing",
			totalReviews: 10, correctAnswers: 7, streak: 5,
			expected: models.StatusReviewing,
		},
		{
			name:         "short streak stays learning",
			totalReviews: 5, correctAnswers: 2, streak: 2,
			expected: models.StatusLearning,
		},
		{
			name:         "accuracy below reviewing band stays learning",
			totalReviews: 10, correctAnswers: 6, streak: 6,
			expected: models.StatusLearning,
		},
		{
			name:         "mastered check wins over reviewing",
			totalReviews: 10, correctAnswers: 9, streak: 6,
			expected: models.StatusMastered,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := srs.Classify(tt.totalReviews, tt.correctAnswers, tt.streak)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClassify_MasteryPropertyHolds(t *testing.T) {
	// Any reviewed state with accuracy >= 0.8 and streak >= 3 is mastered.
	for total := 1; total <= 20; total++ {
		for correct := 0; correct <= total; correct++ {
			for streak := 3; streak <= correct; streak++ {
				if float64(correct)/float64(total) < 0.8 {
					continue
				}
				got := srs.Classify(total, correct, streak)
				assert.Equal(t, models.StatusMastered, got,
					"total=%d correct=%d streak=%d", total, correct, streak)
			}
		}
	}
}

func TestClassify_CustomThresholds(t *testing.T) {
	strict := srs.Thresholds{
		MasteryAccuracy:    0.95,
		MasteryStreak:      10,
		ReviewingAccuracy:  0.8,
		ReviewingStreak:    6,
		LearningMinReviews: 2,
	}

	// Mastered under defaults, only reviewing under the strict banding.
	assert.Equal(t, models.StatusMastered, srs.Classify(10, 9, 6))
	assert.Equal(t, models.StatusReviewing, strict.Classify(10, 9, 6))

	// Stricter learning gate kicks in one review earlier.
	assert.Equal(t, models.StatusNew, srs.Classify(2, 1, 0))
	assert.Equal(t, models.StatusLearning, strict.Classify(2, 1, 0))
}

func TestStatusOrdering(t *testing.T) {
	assert.Equal(t, -1, models.CompareStatus(models.StatusNew, models.StatusLearning))
	assert.Equal(t, -1, models.CompareStatus(models.StatusLearning, models.StatusReviewing))
	assert.Equal(t, -1, models.CompareStatus(models.StatusReviewing, models.StatusMastered))
	assert.Equal(t, 1, models.CompareStatus(models.StatusMastered, models.StatusNew))
	assert.Equal(t, 0, models.CompareStatus(models.StatusLearning, models.StatusLearning))
}

func TestTransitionDirection(t *testing.T) {
	up := models.Transition{From: models.StatusLearning, To: models.StatusReviewing}
	down := models.Transition{From: models.StatusMastered, To: models.StatusLearning}
	flat := models.Transition{From: models.StatusNew, To: models.StatusNew}

	assert.Equal(t, models.TransitionUpgrade, up.Direction())
	assert.Equal(t, models.TransitionDowngrade, down.Direction())
	assert.Equal(t, models.TransitionMaintained, flat.Direction())
}
