package models

import "time"

// WordProgress tracks one learner's scheduling state for one word.
// Created lazily on the first recorded answer and mutated only by the
// progress service.
type WordProgress struct {
	ID        int64 `json:"id"`
	LearnerID int64 `json:"learner_id"`
	WordID    int64 `json:"word_id"`

	TotalReviews   int `json:"total_reviews"`
	CorrectAnswers int `json:"correct_answers"`
	Streak         int `json:"streak"`
	Repetitions    int `json:"repetitions"`

	EaseFactor           float64   `json:"ease_factor"`
	IntervalDays         int       `json:"interval_days"`
	NextReviewAt         time.Time `json:"next_review_at"`
	RecommendedReviewAt  time.Time `json:"recommended_review_at"`

	Status            Status `json:"status"`
	PreviousStatus    Status `json:"previous_status"`
	LastAnswerCorrect bool   `json:"last_answer_correct"`

	RecognitionReviews int `json:"recognition_reviews"`
	RecognitionCorrect int `json:"recognition_correct"`
	ProductionReviews  int `json:"production_reviews"`
	ProductionCorrect  int `json:"production_correct"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Accuracy returns correct answers over total reviews, or 0 for an
// unreviewed record.
func (p WordProgress) Accuracy() float64 {
	if p.TotalReviews == 0 {
		return 0
	}
	return float64(p.CorrectAnswers) / float64(p.TotalReviews)
}

// NewWordProgress returns the initial record for a (learner, word) pair
// that has never been answered.
func NewWordProgress(learnerID, wordID int64) WordProgress {
	return WordProgress{
		LearnerID:      learnerID,
		WordID:         wordID,
		EaseFactor:     2.5,
		IntervalDays:   1,
		Status:         StatusNew,
		PreviousStatus: StatusNew,
	}
}

type ReviewHistory struct {
	ID             int64     `json:"id"`
	LearnerID      int64     `json:"learner_id"`
	WordID         int64     `json:"word_id"`
	Correct        bool      `json:"correct"`
	Mode           string    `json:"mode"`
	ResponseTimeMs int       `json:"response_time_ms"`
	ReviewedAt     time.Time `json:"reviewed_at"`
}
