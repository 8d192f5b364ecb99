package services

import (
	"context"
	"testing"

	"github.com/gamenight/boardgame-league/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEloRanking_SortsActivePlayersByRating(t *testing.T) {
	playerRepo := newFakePlayerRepository(
		models.Player{ID: 1, Name: "Ana", Rating: 1480.0, Active: true},
		models.Player{ID: 2, Name: "Bruno", Rating: 1532.4, Active: true},
		models.Player{ID: 3, Name: "Carla", Rating: 1600.0, Active: false},
		models.Player{ID: 4, Name: "Diego", Rating: 1515.0, Active: true},
	)
	svc := NewLeaderboardService(playerRepo, &fakeMatchRepository{})

	rows, err := svc.EloRanking(context.Background())
	require.NoError(t, err)

	// Carla is inactive and stays off the board.
	require.Len(t, rows, 3)
	assert.Equal(t, "Bruno", rows[0].Player)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 1532.4, rows[0].Rating)
	assert.Equal(t, "Diego", rows[1].Player)
	assert.Equal(t, "Ana", rows[2].Player)
	assert.Equal(t, 3, rows[2].Rank)
}

func TestEloRanking_EqualRatingsKeepNameOrder(t *testing.T) {
	playerRepo := newFakePlayerRepository(
		models.Player{ID: 1, Name: "Zoe", Rating: 1500.0, Active: true},
		models.Player{ID: 2, Name: "Alba", Rating: 1500.0, Active: true},
	)
	svc := NewLeaderboardService(playerRepo, &fakeMatchRepository{})

	rows, err := svc.EloRanking(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Alba", rows[0].Player)
	assert.Equal(t, "Zoe", rows[1].Player)
}

func TestWinRateRanking_ComputesAndRanks(t *testing.T) {
	playerRepo := newFakePlayerRepository(
		models.Player{ID: 1, Name: "Ana", Active: true},
		models.Player{ID: 2, Name: "Bruno", Active: true},
		models.Player{ID: 3, Name: "Carla", Active: true},
	)
	matchRepo := &fakeMatchRepository{
		participations: map[int][]models.Participation{
			// Ana: 10 weighted wins out of 18 = 55.56%.
			1: {
				{MatchID: 1, Position: 1, TotalPlayers: 4, Weight: 3.0},
				{MatchID: 2, Position: 2, TotalPlayers: 4, Weight: 3.0},
				{MatchID: 3, Position: 4, TotalPlayers: 4, Weight: 3.0},
			},
			// Bruno: one clean win = 100%.
			2: {
				{MatchID: 4, Position: 1, TotalPlayers: 2, Weight: 2.0},
			},
			// Carla never played: stays off the board.
		},
	}
	svc := NewLeaderboardService(playerRepo, matchRepo)

	rows, err := svc.WinRateRanking(context.Background())
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "Bruno", rows[0].Player)
	assert.Equal(t, 100.0, rows[0].WinPercentage)
	assert.Equal(t, 1, rows[0].Rank)
	assert.Equal(t, 1, rows[0].Matches)

	assert.Equal(t, "Ana", rows[1].Player)
	assert.Equal(t, 55.56, rows[1].WinPercentage)
	assert.Equal(t, 2, rows[1].Rank)
	assert.Equal(t, 3, rows[1].Matches)
}

func TestWinRateRanking_PlayerWithOnlyLuckGamesStillListed(t *testing.T) {
	playerRepo := newFakePlayerRepository(
		models.Player{ID: 1, Name: "Ana", Active: true},
	)
	matchRepo := &fakeMatchRepository{
		participations: map[int][]models.Participation{
			1: {{MatchID: 1, Position: 1, TotalPlayers: 5, Weight: 1.0}},
		},
	}
	svc := NewLeaderboardService(playerRepo, matchRepo)

	rows, err := svc.WinRateRanking(context.Background())
	require.NoError(t, err)

	// They played, so they appear, but weight-1 games score nothing.
	require.Len(t, rows, 1)
	assert.Equal(t, 0.0, rows[0].WinPercentage)
	assert.Equal(t, 1, rows[0].Matches)
}
