package models

// EloRankingRow is one line of the Elo leaderboard.
type EloRankingRow struct {
	Rank   int     `json:"rank"`
	Player string  `json:"player"`
	Rating float64 `json:"rating"`
	Active bool    `json:"active"`
}

// WinRateRankingRow is one line of the win-percentage leaderboard, computed
// over a bounded window of the player's most recent ranked matches.
type WinRateRankingRow struct {
	Rank          int     `json:"rank"`
	Player        string  `json:"player"`
	WinPercentage float64 `json:"win_percentage"`
	Matches       int     `json:"matches"`
}

// Participation is one appearance of a player in a ranked match, as read for
// the win-rate window: their position, the field size (max position recorded
// in the match) and the game's weight.
type Participation struct {
	MatchID      int     `json:"match_id" db:"match_id"`
	Position     int     `json:"position" db:"position"`
	TotalPlayers int     `json:"total_players" db:"total_players"`
	Weight       float64 `json:"weight" db:"weight"`
}

// DashboardSummary backs the landing page: catalog counts plus recent activity.
type DashboardSummary struct {
	Players       int     `json:"players"`
	Games         int     `json:"games"`
	Matches       int     `json:"matches"`
	Sessions      int     `json:"sessions"`
	RecentMatches []Match `json:"recent_matches"`
}
