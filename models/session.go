package models

import "time"

// Session is a game night: a date grouping the matches played together.
type Session struct {
	ID       int       `json:"id" db:"id"`
	Date     time.Time `json:"date" db:"date"`
	Location *string   `json:"location,omitempty" db:"location"`
	Notes    *string   `json:"notes,omitempty" db:"notes"`

	Matches []Match `json:"matches,omitempty" db:"-"`
}
