package rating

import "math"

// Participation is one appearance of a player in a ranked match, reduced to
// what the win-rate metric needs. TotalPlayers is the field size, taken as the
// maximum position recorded in that match.
type Participation struct {
	Position     int
	TotalPlayers int
	Weight       float64
}

// WinPercentage scores a player's recent form as the share of pairwise
// confrontations they won, weighted by game depth. Each match contributes
// (total - position) wins out of (total - 1) confrontations, both scaled by
// (weight - 1), so weight-1.0 luck games drop out entirely. Returns a
// percentage rounded to two decimals, 0 when no match qualifies.
func WinPercentage(matches []Participation) float64 {
	var weightedWins, weightedTotal float64

	for _, m := range matches {
		factor := m.Weight - 1
		if factor <= 0 {
			continue
		}

		wins := float64(m.TotalPlayers - m.Position)
		confrontations := float64(m.TotalPlayers - 1)

		weightedWins += wins * factor
		weightedTotal += confrontations * factor
	}

	if weightedTotal == 0 {
		return 0.0
	}

	return math.Round(weightedWins/weightedTotal*100*100) / 100
}
