package models

import "time"

type Word struct {
	ID          int64     `json:"id"`
	Term        string    `json:"term"`
	Translation string    `json:"translation"`
	Topic       string    `json:"topic"`
	Difficulty  int       `json:"difficulty"`
	Example     string    `json:"example"`
	CreatedAt   time.Time `json:"created_at"`
}

// WordFilter narrows and pages word catalogue listings.
type WordFilter struct {
	Topic      string
	Difficulty int
	Search     string
	Limit      int
	Offset     int
}
