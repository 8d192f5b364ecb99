package services

import (
	"testing"

	"github.com/gamenight/boardgame-league/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestToMatchRecords(t *testing.T) {
	teamID := 7
	matches := []models.Match{
		{
			ID:         3,
			TeamMatch:  true,
			GameWeight: floatPtr(4.5),
			Results: []models.Result{
				{PlayerID: 1, Position: 1, TeamID: &teamID},
				{PlayerID: 2, Position: 2},
			},
		},
		{
			ID: 5,
			// Weight unknown (game row gone missing): defaults to 1.0 so the
			// match contributes zero deltas instead of failing the replay.
			Results: []models.Result{
				{PlayerID: 1, Position: 1},
				{PlayerID: 3, Position: 2},
			},
		},
	}

	records := toMatchRecords(matches)

	require.Len(t, records, 2)

	assert.Equal(t, 3, records[0].MatchID)
	assert.True(t, records[0].TeamMatch)
	assert.Equal(t, 4.5, records[0].Weight)
	require.Len(t, records[0].Results, 2)
	assert.Equal(t, 1, records[0].Results[0].PlayerID)
	require.NotNil(t, records[0].Results[0].TeamID)
	assert.Equal(t, 7, *records[0].Results[0].TeamID)

	assert.Equal(t, 5, records[1].MatchID)
	assert.False(t, records[1].TeamMatch)
	assert.Equal(t, 1.0, records[1].Weight)
}

func TestToMatchRecords_PreservesOrder(t *testing.T) {
	matches := []models.Match{
		{ID: 10, GameWeight: floatPtr(2.0)},
		{ID: 11, GameWeight: floatPtr(2.0)},
		{ID: 12, GameWeight: floatPtr(2.0)},
	}

	records := toMatchRecords(matches)

	require.Len(t, records, 3)
	assert.Equal(t, []int{10, 11, 12}, []int{records[0].MatchID, records[1].MatchID, records[2].MatchID})
}

func TestBuildEloRanking(t *testing.T) {
	players := []models.Player{
		{ID: 1, Name: "Ana", Rating: 1480.04, Active: true},
		{ID: 2, Name: "Bruno", Rating: 1532.46, Active: true},
		{ID: 3, Name: "Carla", Rating: 1390.0, Active: false},
	}

	rows := buildEloRanking(players)

	require.Len(t, rows, 3)
	assert.Equal(t, models.EloRankingRow{Rank: 1, Player: "Bruno", Rating: 1532.5, Active: true}, rows[0])
	assert.Equal(t, models.EloRankingRow{Rank: 2, Player: "Ana", Rating: 1480.0, Active: true}, rows[1])
	assert.Equal(t, models.EloRankingRow{Rank: 3, Player: "Carla", Rating: 1390.0, Active: false}, rows[2])
}

func TestBuildEloRanking_DoesNotMutateInput(t *testing.T) {
	players := []models.Player{
		{ID: 1, Name: "Ana", Rating: 1400},
		{ID: 2, Name: "Bruno", Rating: 1600},
	}

	buildEloRanking(players)

	assert.Equal(t, "Ana", players[0].Name)
	assert.Equal(t, "Bruno", players[1].Name)
}
