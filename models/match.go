package models

import "time"

// Match is one played instance of a game on a given date. Ranked controls
// whether it feeds the rating and win-rate computations; TeamMatch switches
// the rating engine to its team variant.
type Match struct {
	ID        int       `json:"id" db:"id"`
	GameID    int       `json:"game_id" db:"game_id"`
	SessionID *int      `json:"session_id,omitempty" db:"session_id"`
	Date      time.Time `json:"date" db:"date"`
	Ranked    bool      `json:"ranked" db:"ranked"`
	TeamMatch bool      `json:"team_match" db:"team_match"`
	Notes     *string   `json:"notes,omitempty" db:"notes"`

	// Populated by the service layer, not stored on the matches table.
	GameName   *string  `json:"game_name,omitempty" db:"-"`
	GameWeight *float64 `json:"game_weight,omitempty" db:"-"`
	Results    []Result `json:"results,omitempty" db:"-"`
}

// Result is one participant's outcome within a match. Position 1 is the
// winner; equal positions mean a tie. Score is informational only and never
// feeds the rating math. TeamID is meaningful only on team matches.
type Result struct {
	ID       int      `json:"id" db:"id"`
	MatchID  int      `json:"match_id" db:"match_id"`
	PlayerID int      `json:"player_id" db:"player_id"`
	Position int      `json:"position" db:"position"`
	Score    *float64 `json:"score,omitempty" db:"score"`
	TeamID   *int     `json:"team_id,omitempty" db:"team_id"`

	PlayerName *string `json:"player_name,omitempty" db:"-"`
}
