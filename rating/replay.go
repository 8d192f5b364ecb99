package rating

import "fmt"

// MatchRecord is one ranked match as needed by the replay: its game weight,
// whether it was played in teams, and the per-player results. The slice fed to
// Replay must already be in chronological order (date ascending, insertion id
// ascending for same-day matches) — rating is path dependent, so the order is
// part of the contract.
type MatchRecord struct {
	MatchID   int
	Weight    float64
	TeamMatch bool
	Results   []ResultEntry
}

// Replay recomputes every player's rating from scratch: all known players
// (active or not) start at baseline, then every ranked match is applied in
// order. Returns the final rating per player id.
//
// A match referencing a player missing from playerIDs is a data integrity
// violation and aborts the replay; silently seeding a baseline mid-history
// would corrupt every rating downstream of it.
func Replay(matches []MatchRecord, playerIDs []int, baseline float64) (map[int]float64, error) {
	ratings := make(map[int]float64, len(playerIDs))
	for _, id := range playerIDs {
		ratings[id] = baseline
	}

	for _, m := range matches {
		for _, r := range m.Results {
			if _, ok := ratings[r.PlayerID]; !ok {
				return nil, fmt.Errorf("match %d references unknown player %d", m.MatchID, r.PlayerID)
			}
		}

		deltas := ComputeMatchDeltas(m.Results, ratings, m.Weight, m.TeamMatch)
		for id, delta := range deltas {
			ratings[id] += delta
		}
	}

	return ratings, nil
}
