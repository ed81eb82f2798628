package models

// SessionItem pairs a word with the learner's progress snapshot at the
// moment the session was built. Progress is nil for words the learner has
// never answered.
type SessionItem struct {
	Word     Word          `json:"word"`
	Progress *WordProgress `json:"progress,omitempty"`
}

// Session is one fixed-size study sitting.
type Session struct {
	LearnerID int64         `json:"learner_id"`
	Pattern   string        `json:"pattern"`
	Requested int           `json:"requested"`
	Items     []SessionItem `json:"items"`
}

// AnswerOutcome is one submitted answer in a review batch.
type AnswerOutcome struct {
	WordID         int64  `json:"word_id"`
	Correct        bool   `json:"correct"`
	Mode           string `json:"mode"`
	ResponseTimeMs int    `json:"response_time_ms"`
}

// Transition records a status change for one word.
type Transition struct {
	WordID int64  `json:"word_id"`
	From   Status `json:"from"`
	To     Status `json:"to"`
}

// Direction of a status transition under the canonical ordering.
const (
	TransitionUpgrade    = "upgrade"
	TransitionDowngrade  = "downgrade"
	TransitionMaintained = "maintained"
)

// Direction classifies the transition as upgrade, downgrade or maintained.
func (t Transition) Direction() string {
	switch CompareStatus(t.From, t.To) {
	case -1:
		return TransitionUpgrade
	case 1:
		return TransitionDowngrade
	default:
		return TransitionMaintained
	}
}

// BatchReport summarizes one atomic batch of answers.
type BatchReport struct {
	Processed  int          `json:"processed"`
	Skipped    int          `json:"skipped"`
	Rejected   int          `json:"rejected"`
	Upgrades   []Transition `json:"upgrades"`
	Downgrades []Transition `json:"downgrades"`
	Maintained []Transition `json:"maintained"`
}
