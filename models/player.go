package models

// Player is a league member. Rating is derived state: it is only ever written
// by a full history recompute, never edited directly.
type Player struct {
	ID     int     `json:"id" db:"id"`
	Name   string  `json:"name" db:"name"`
	Rating float64 `json:"rating" db:"rating"`
	Active bool    `json:"active" db:"active"`
}
