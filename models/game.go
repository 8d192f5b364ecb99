package models

import "time"

// Game is a board game in the catalog. Weight is the BGG-style strategic
// depth in [1.0, 5.0] and drives the rating engine's K-factor.
type Game struct {
	ID          int     `json:"id" db:"id"`
	Name        string  `json:"name" db:"name"`
	Weight      float64 `json:"weight" db:"weight"`
	BGGID       *int    `json:"bgg_id,omitempty" db:"bgg_id"`
	BGGURL      *string `json:"bgg_url,omitempty" db:"bgg_url"`
	MinPlayers  *int    `json:"min_players,omitempty" db:"min_players"`
	MaxPlayers  *int    `json:"max_players,omitempty" db:"max_players"`
	MinPlaytime *int    `json:"min_playtime,omitempty" db:"min_playtime"`
	MaxPlaytime *int    `json:"max_playtime,omitempty" db:"max_playtime"`
	Kind        *string `json:"kind,omitempty" db:"kind"`
	Category    *string `json:"category,omitempty" db:"category"`
	Mechanics   *string `json:"mechanics,omitempty" db:"mechanics"`
	YearPublished *int  `json:"year_published,omitempty" db:"year_published"`

	CoverKey *string `json:"-" db:"cover_key"`
	CoverURL *string `json:"cover_url,omitempty" db:"-"`

	SyncedAt *time.Time `json:"synced_at,omitempty" db:"synced_at"`
	Active   bool       `json:"active" db:"active"`
}
