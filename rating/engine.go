package rating

import (
	"math"
	"sort"
)

// Baseline is the rating every player starts from.
const Baseline = 1500.0

const (
	maxKFactor = 64.0
	minWeight  = 1.0
	maxWeight  = 5.0
	// Expected-score divisor. The classic Elo formula uses 400; this league
	// runs on 350 to make upsets move ratings a bit harder.
	expectationDivisor = 350.0
)

// ResultEntry is one participant's outcome within a single match.
type ResultEntry struct {
	PlayerID int
	Position int
	TeamID   *int
}

// KFactor maps a game's weight (1.0 = pure luck, 5.0 = pure skill) linearly
// onto the 0..64 K range. Weight 1.0 games move no ratings at all.
func KFactor(weight float64) float64 {
	k := maxKFactor * (weight - minWeight) / (maxWeight - minWeight)
	if k < 0 {
		return 0
	}
	if k > maxKFactor {
		return maxKFactor
	}
	return k
}

// ExpectedScore returns the probability of the first rating beating the second.
func ExpectedScore(rating, opponent float64) float64 {
	return 1 / (1 + math.Pow(10, (opponent-rating)/expectationDivisor))
}

// ComputeMatchDeltas turns one match's results into signed rating deltas for
// every participant. Every rating lookup uses the pre-match snapshot in
// ratings; deltas from all pairwise comparisons accumulate against that frozen
// snapshot, so the caller applies the returned deltas afterwards.
//
// Individual matches synthesize a mini-match between every unordered pair of
// participants. Team matches group participants by position (same position =
// same side, regardless of any team id) and run the mini-matches between team
// averages instead, crediting each member with the full team delta.
func ComputeMatchDeltas(results []ResultEntry, ratings map[int]float64, weight float64, teamMatch bool) map[int]float64 {
	if teamMatch {
		return computeTeamDeltas(results, ratings, weight)
	}
	return computeIndividualDeltas(results, ratings, weight)
}

func computeIndividualDeltas(results []ResultEntry, ratings map[int]float64, weight float64) map[int]float64 {
	k := KFactor(weight)

	deltas := make(map[int]float64, len(results))
	for _, r := range results {
		deltas[r.PlayerID] = 0
	}

	for i := 0; i < len(results); i++ {
		for j := i + 1; j < len(results); j++ {
			a, b := results[i], results[j]

			expectedA := ExpectedScore(ratings[a.PlayerID], ratings[b.PlayerID])
			expectedB := ExpectedScore(ratings[b.PlayerID], ratings[a.PlayerID])

			var scoreA, scoreB float64
			switch {
			case a.Position < b.Position:
				scoreA, scoreB = 1.0, 0.0
			case a.Position > b.Position:
				scoreA, scoreB = 0.0, 1.0
			default:
				scoreA, scoreB = 0.5, 0.5
			}

			deltas[a.PlayerID] += k * (scoreA - expectedA)
			deltas[b.PlayerID] += k * (scoreB - expectedB)
		}
	}

	return deltas
}

func computeTeamDeltas(results []ResultEntry, ratings map[int]float64, weight float64) map[int]float64 {
	k := KFactor(weight)

	deltas := make(map[int]float64, len(results))
	for _, r := range results {
		deltas[r.PlayerID] = 0
	}

	// Position is the authoritative grouping key: everyone sharing a position
	// played on the same side.
	teams := make(map[int][]int)
	for _, r := range results {
		teams[r.Position] = append(teams[r.Position], r.PlayerID)
	}

	// A single position group means everyone tied; nothing to exchange.
	if len(teams) <= 1 {
		return deltas
	}

	teamRatings := make(map[int]float64, len(teams))
	for pos, members := range teams {
		var sum float64
		for _, id := range members {
			sum += ratings[id]
		}
		teamRatings[pos] = sum / float64(len(members))
	}

	// Iterate positions in ascending order so delta accumulation is stable.
	positions := make([]int, 0, len(teams))
	for pos := range teams {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	for i := 0; i < len(positions); i++ {
		for j := i + 1; j < len(positions); j++ {
			posI, posJ := positions[i], positions[j]

			expectedI := ExpectedScore(teamRatings[posI], teamRatings[posJ])
			expectedJ := ExpectedScore(teamRatings[posJ], teamRatings[posI])

			// Distinct positions, so the lower one always won; team-level
			// ties are not modeled.
			scoreI, scoreJ := 1.0, 0.0
			if posI > posJ {
				scoreI, scoreJ = 0.0, 1.0
			}

			changeI := k * (scoreI - expectedI)
			changeJ := k * (scoreJ - expectedJ)

			for _, id := range teams[posI] {
				deltas[id] += changeI
			}
			for _, id := range teams[posJ] {
				deltas[id] += changeJ
			}
		}
	}

	return deltas
}
