package srs

import (
	"math/rand"

	"github.com/pmarks/vocabflash/internal/models"
)

// SelectCandidates trims over-fetched candidate pools down to the composed
// targets. The new pool is shuffled before truncation so its deterministic
// newest-first fetch order never shows through; due pools arrive ordered by
// urgency and are truncated as-is so the most overdue items always make the
// cut. A short pool is taken whole — shortfall handling belongs to Compose.
func SelectCandidates(pools map[models.Status][]models.SessionItem, targets map[models.Status]int, rng *rand.Rand) []models.SessionItem {
	var out []models.SessionItem
	for _, status := range models.AllStatuses {
		pool := pools[status]
		want := targets[status]
		if want > len(pool) {
			want = len(pool)
		}
		if want <= 0 {
			continue
		}

		if status == models.StatusNew {
			shuffled := make([]models.SessionItem, len(pool))
			copy(shuffled, pool)
			rng.Shuffle(len(shuffled), func(i, j int) {
				shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
			})
			out = append(out, shuffled[:want]...)
			continue
		}

		out = append(out, pool[:want]...)
	}
	return out
}
