package models

// LearnerStats aggregates one learner's overall progress.
type LearnerStats struct {
	LearnerID      int64          `json:"learner_id"`
	StatusCounts   map[Status]int `json:"status_counts"`
	DueToday       int            `json:"due_today"`
	TotalReviews   int            `json:"total_reviews"`
	CorrectAnswers int            `json:"correct_answers"`
	Accuracy       float64        `json:"accuracy"`
}

// DailyReviewCount is one day's review volume for activity charts.
type DailyReviewCount struct {
	Day     string `json:"day"`
	Reviews int    `json:"reviews"`
	Correct int    `json:"correct"`
}
