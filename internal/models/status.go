package models

// Status is the coarse mastery stage of a word for one learner.
type Status string

const (
	StatusNew       Status = "new"
	StatusLearning  Status = "learning"
	StatusReviewing Status = "reviewing"
	StatusMastered  Status = "mastered"
)

// statusRank defines the canonical ordering new < learning < reviewing < mastered.
var statusRank = map[Status]int{
	StatusNew:       0,
	StatusLearning:  1,
	StatusReviewing: 2,
	StatusMastered:  3,
}

// AllStatuses lists every status in rank order.
var AllStatuses = []Status{StatusNew, StatusLearning, StatusReviewing, StatusMastered}

// Valid reports whether s is one of the four known statuses.
func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// Rank returns the position of s in the canonical ordering.
// Unknown statuses rank below new.
func (s Status) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return -1
}

// CompareStatus returns -1, 0 or 1 as a ranks below, equal to, or above b.
func CompareStatus(a, b Status) int {
	switch {
	case a.Rank() < b.Rank():
		return -1
	case a.Rank() > b.Rank():
		return 1
	default:
		return 0
	}
}
