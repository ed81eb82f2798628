package srs

import (
	"math/rand"

	"github.com/pmarks/vocabflash/internal/errors"
	"github.com/pmarks/vocabflash/internal/models"
)

// Pattern is a named per-status count mix for one session.
type Pattern struct {
	Name   string
	Counts map[models.Status]int
}

// Size returns the total number of items the pattern asks for.
func (p Pattern) Size() int {
	total := 0
	for _, n := range p.Counts {
		total += n
	}
	return total
}

// DefaultPatterns are the shipped composition mixes, each summing to the
// default session size of 10.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Name: "new-heavy", Counts: map[models.Status]int{
			models.StatusNew: 6, models.StatusLearning: 2, models.StatusReviewing: 1, models.StatusMastered: 1,
		}},
		{Name: "balanced", Counts: map[models.Status]int{
			models.StatusNew: 5, models.StatusLearning: 3, models.StatusReviewing: 1, models.StatusMastered: 1,
		}},
		{Name: "review-heavy", Counts: map[models.Status]int{
			models.StatusNew: 2, models.StatusLearning: 3, models.StatusReviewing: 4, models.StatusMastered: 1,
		}},
		{Name: "consolidation", Counts: map[models.Status]int{
			models.StatusNew: 1, models.StatusLearning: 5, models.StatusReviewing: 3, models.StatusMastered: 1,
		}},
		{Name: "maintenance", Counts: map[models.Status]int{
			models.StatusNew: 1, models.StatusLearning: 2, models.StatusReviewing: 3, models.StatusMastered: 4,
		}},
	}
}

// redistributionOrder is the preference for absorbing shortfall: overdue
// material first, fresh words next, refreshers last.
var redistributionOrder = []models.Status{
	models.StatusLearning,
	models.StatusReviewing,
	models.StatusNew,
	models.StatusMastered,
}

// Compose picks target counts per status for one session. A named pattern is
// used when patternName is non-empty, otherwise one is chosen uniformly at
// random. Targets degrade gracefully: a status with too few available items
// sheds its shortfall onto statuses that still have surplus, keeping the
// total at size whenever combined availability allows. The returned totals
// may be under size; that is the caller's condition to report, not an error.
func Compose(available map[models.Status]int, size int, patternName string, rng *rand.Rand) (map[models.Status]int, string, error) {
	patterns := DefaultPatterns()

	var pattern Pattern
	if patternName != "" {
		found := false
		for _, p := range patterns {
			if p.Name == patternName {
				pattern = p
				found = true
				break
			}
		}
		if !found {
			return nil, "", errors.NewValidationError("pattern", "unknown session pattern: "+patternName)
		}
	} else {
		pattern = patterns[rng.Intn(len(patterns))]
	}

	scaled := scaleCounts(pattern, size)

	targets := make(map[models.Status]int, len(models.AllStatuses))
	for _, s := range models.AllStatuses {
		targets[s] = scaled[s]
		if targets[s] > available[s] {
			targets[s] = available[s]
		}
	}

	// Hand shortfall to statuses with surplus until the session is full or
	// every pool is drained.
	for total := sumCounts(targets); total < size; {
		grew := false
		for _, s := range redistributionOrder {
			if total >= size {
				break
			}
			if available[s] > targets[s] {
				targets[s]++
				total++
				grew = true
			}
		}
		if !grew {
			break
		}
	}

	return targets, pattern.Name, nil
}

// scaleCounts adapts a pattern to a session size other than the one it was
// authored for, preserving its relative emphasis.
func scaleCounts(p Pattern, size int) map[models.Status]int {
	patternSize := p.Size()
	out := make(map[models.Status]int, len(models.AllStatuses))
	if patternSize == size {
		for s, n := range p.Counts {
			out[s] = n
		}
		return out
	}

	total := 0
	for _, s := range models.AllStatuses {
		out[s] = p.Counts[s] * size / patternSize
		total += out[s]
	}
	// Rounding remainder goes to the heaviest statuses first.
	for total < size {
		best := models.StatusNew
		bestCount := -1
		for _, s := range models.AllStatuses {
			if p.Counts[s] > bestCount && out[s] < p.Counts[s]*size/patternSize+1 {
				best = s
				bestCount = p.Counts[s]
			}
		}
		out[best]++
		total++
	}
	return out
}

func sumCounts(counts map[models.Status]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}
