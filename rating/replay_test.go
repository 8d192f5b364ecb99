package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplay_TwoPlayerHistory(t *testing.T) {
	matches := []MatchRecord{
		{
			MatchID: 1,
			Weight:  3.0,
			Results: []ResultEntry{
				{PlayerID: 1, Position: 1},
				{PlayerID: 2, Position: 2},
			},
		},
	}

	ratings, err := Replay(matches, []int{1, 2}, Baseline)
	require.NoError(t, err)

	assert.InDelta(t, 1516.0, ratings[1], 1e-9)
	assert.InDelta(t, 1484.0, ratings[2], 1e-9)
}

func TestReplay_EmptyHistoryYieldsBaseline(t *testing.T) {
	ratings, err := Replay(nil, []int{1, 2, 3}, Baseline)
	require.NoError(t, err)

	require.Len(t, ratings, 3)
	for id, r := range ratings {
		assert.Equalf(t, Baseline, r, "player %d", id)
	}
}

func TestReplay_IsDeterministic(t *testing.T) {
	matches := []MatchRecord{
		{
			MatchID: 1,
			Weight:  2.5,
			Results: []ResultEntry{
				{PlayerID: 1, Position: 1},
				{PlayerID: 2, Position: 2},
				{PlayerID: 3, Position: 3},
			},
		},
		{
			MatchID:   2,
			Weight:    4.0,
			TeamMatch: true,
			Results: []ResultEntry{
				{PlayerID: 1, Position: 2},
				{PlayerID: 2, Position: 1},
				{PlayerID: 3, Position: 1},
			},
		},
		{
			MatchID: 3,
			Weight:  3.0,
			Results: []ResultEntry{
				{PlayerID: 2, Position: 1},
				{PlayerID: 3, Position: 1},
			},
		},
	}
	players := []int{1, 2, 3}

	first, err := Replay(matches, players, Baseline)
	require.NoError(t, err)
	second, err := Replay(matches, players, Baseline)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReplay_OrderMatters(t *testing.T) {
	win := func(id int, winner, loser int) MatchRecord {
		return MatchRecord{
			MatchID: id,
			Weight:  5.0,
			Results: []ResultEntry{
				{PlayerID: winner, Position: 1},
				{PlayerID: loser, Position: 2},
			},
		}
	}

	forward := []MatchRecord{win(1, 1, 2), win(2, 2, 3)}
	reversed := []MatchRecord{win(2, 2, 3), win(1, 1, 2)}
	players := []int{1, 2, 3}

	a, err := Replay(forward, players, Baseline)
	require.NoError(t, err)
	b, err := Replay(reversed, players, Baseline)
	require.NoError(t, err)

	// Player 2's rating when facing player 3 differs between the two
	// orderings, so the outcomes diverge.
	assert.NotEqual(t, a[2], b[2])
}

func TestReplay_UnknownPlayerAborts(t *testing.T) {
	matches := []MatchRecord{
		{
			MatchID: 7,
			Weight:  3.0,
			Results: []ResultEntry{
				{PlayerID: 1, Position: 1},
				{PlayerID: 99, Position: 2},
			},
		},
	}

	ratings, err := Replay(matches, []int{1, 2}, Baseline)
	require.Error(t, err)
	assert.Nil(t, ratings)
	assert.Contains(t, err.Error(), "unknown player 99")
	assert.Contains(t, err.Error(), "match 7")
}

func TestReplay_UnrankedWeightLeavesRatingsUntouched(t *testing.T) {
	matches := []MatchRecord{
		{
			MatchID: 1,
			Weight:  1.0,
			Results: []ResultEntry{
				{PlayerID: 1, Position: 1},
				{PlayerID: 2, Position: 2},
			},
		},
	}

	ratings, err := Replay(matches, []int{1, 2}, Baseline)
	require.NoError(t, err)

	assert.Equal(t, Baseline, ratings[1])
	assert.Equal(t, Baseline, ratings[2])
}

func TestReplay_InactivePlayersStayInHistory(t *testing.T) {
	// A player who later goes inactive still shaped past matches; replaying
	// with them in the roster must reproduce the same ratings for everyone.
	matches := []MatchRecord{
		{
			MatchID: 1,
			Weight:  3.0,
			Results: []ResultEntry{
				{PlayerID: 1, Position: 1},
				{PlayerID: 2, Position: 2},
				{PlayerID: 3, Position: 3},
			},
		},
	}

	before, err := Replay(matches, []int{1, 2, 3}, Baseline)
	require.NoError(t, err)
	after, err := Replay(matches, []int{1, 2, 3}, Baseline)
	require.NoError(t, err)

	assert.Equal(t, before, after)
	assert.NotEqual(t, Baseline, before[3])
}
