package services

import (
	"context"
	"testing"
	"time"

	"github.com/gamenight/boardgame-league/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSummary(t *testing.T) {
	playerRepo := newFakePlayerRepository(
		models.Player{ID: 1, Name: "Ana", Active: true},
		models.Player{ID: 2, Name: "Bruno", Active: true},
		models.Player{ID: 3, Name: "Carla", Active: false},
	)
	gameRepo := newFakeGameRepository(
		models.Game{ID: 1, Name: "Azul", Weight: 2.3, Active: true},
	)
	matchRepo := &fakeMatchRepository{
		matches: []models.Match{
			{ID: 1, GameID: 1, Date: day(2026, time.August, 20)},
			{ID: 2, GameID: 1, Date: day(2026, time.August, 27)},
		},
	}
	sessionRepo := newFakeSessionRepository(
		models.Session{ID: 1, Date: day(2026, time.August, 20)},
	)
	svc := NewDashboardService(playerRepo, gameRepo, matchRepo, sessionRepo)

	summary, err := svc.GetSummary(context.Background())
	require.NoError(t, err)

	// Only active players count toward the headline number.
	assert.Equal(t, 2, summary.Players)
	assert.Equal(t, 1, summary.Games)
	assert.Equal(t, 2, summary.Matches)
	assert.Equal(t, 1, summary.Sessions)
	require.Len(t, summary.RecentMatches, 2)
	assert.Equal(t, 2, summary.RecentMatches[0].ID)
}
