package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gamenight/boardgame-league/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatchService(matchRepo *fakeMatchRepository, gameRepo *fakeGameRepository, playerRepo *fakePlayerRepository) *matchService {
	return &matchService{
		matchRepo:  matchRepo,
		gameRepo:   gameRepo,
		playerRepo: playerRepo,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func validMatchInput() MatchInput {
	return MatchInput{
		GameID: 1,
		Date:   day(2026, time.August, 30),
		Ranked: true,
		Results: []ResultInput{
			{PlayerID: 1, Position: 1},
			{PlayerID: 2, Position: 2},
		},
	}
}

func TestValidateInput(t *testing.T) {
	gameRepo := newFakeGameRepository(models.Game{ID: 1, Name: "Azul", Weight: 2.3, Active: true})
	playerRepo := newFakePlayerRepository(
		models.Player{ID: 1, Name: "Ana", Active: true},
		models.Player{ID: 2, Name: "Bruno", Active: true},
	)
	svc := newTestMatchService(&fakeMatchRepository{}, gameRepo, playerRepo)

	t.Run("valid input passes", func(t *testing.T) {
		assert.NoError(t, svc.validateInput(context.Background(), validMatchInput()))
	})

	t.Run("date is required", func(t *testing.T) {
		input := validMatchInput()
		input.Date = time.Time{}
		assert.ErrorIs(t, svc.validateInput(context.Background(), input), ErrMatchDateRequired)
	})

	t.Run("needs at least two results", func(t *testing.T) {
		input := validMatchInput()
		input.Results = input.Results[:1]
		assert.ErrorIs(t, svc.validateInput(context.Background(), input), ErrMatchNeedsTwoResults)
	})

	t.Run("positions start at one", func(t *testing.T) {
		input := validMatchInput()
		input.Results[0].Position = 0
		assert.ErrorIs(t, svc.validateInput(context.Background(), input), ErrMatchInvalidPosition)
	})

	t.Run("a player appears at most once", func(t *testing.T) {
		input := validMatchInput()
		input.Results[1].PlayerID = input.Results[0].PlayerID
		assert.ErrorIs(t, svc.validateInput(context.Background(), input), ErrMatchDuplicatePlayer)
	})

	t.Run("unknown player is rejected", func(t *testing.T) {
		input := validMatchInput()
		input.Results[1].PlayerID = 99
		err := svc.validateInput(context.Background(), input)
		assert.ErrorIs(t, err, ErrPlayerNotFound)
		assert.Contains(t, err.Error(), "player 99")
	})

	t.Run("unknown game is rejected", func(t *testing.T) {
		input := validMatchInput()
		input.GameID = 42
		assert.ErrorIs(t, svc.validateInput(context.Background(), input), ErrGameNotFound)
	})

	t.Run("tied positions are allowed", func(t *testing.T) {
		input := validMatchInput()
		input.Results[1].Position = 1
		assert.NoError(t, svc.validateInput(context.Background(), input))
	})
}

func TestGetMatchByID_TranslatesNotFound(t *testing.T) {
	svc := newTestMatchService(&fakeMatchRepository{}, newFakeGameRepository(), newFakePlayerRepository())

	_, err := svc.GetMatchByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrMatchNotFound)
}

func TestListRecentMatches_ClampsLimit(t *testing.T) {
	matchRepo := &fakeMatchRepository{}
	for i := 0; i < 60; i++ {
		matchRepo.matches = append(matchRepo.matches, models.Match{ID: i + 1, Date: day(2026, time.July, 1)})
	}
	svc := newTestMatchService(matchRepo, newFakeGameRepository(), newFakePlayerRepository())

	matches, err := svc.ListRecentMatches(context.Background(), -5)
	require.NoError(t, err)
	assert.Len(t, matches, 50)

	matches, err = svc.ListRecentMatches(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, matches, 10)
}

func TestDeleteMatch_RecomputesOnlyWhenRanked(t *testing.T) {
	tests := []struct {
		name      string
		ranked    bool
		wantCalls int
	}{
		{"ranked match triggers recompute", true, 1},
		{"casual match leaves ratings alone", false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matchRepo := &fakeMatchRepository{
				matches: []models.Match{{ID: 1, Ranked: tt.ranked, Date: day(2026, time.July, 1)}},
			}
			ratingSvc := &fakeRatingService{}
			svc := newTestMatchService(matchRepo, newFakeGameRepository(), newFakePlayerRepository())
			svc.ratingService = ratingSvc

			require.NoError(t, svc.DeleteMatch(context.Background(), 1))
			assert.Equal(t, tt.wantCalls, ratingSvc.calls)

			_, err := matchRepo.GetByID(context.Background(), 1)
			assert.Error(t, err)
		})
	}
}

func TestDeleteMatch_UnknownMatch(t *testing.T) {
	svc := newTestMatchService(&fakeMatchRepository{}, newFakeGameRepository(), newFakePlayerRepository())
	svc.ratingService = &fakeRatingService{}

	assert.ErrorIs(t, svc.DeleteMatch(context.Background(), 12), ErrMatchNotFound)
}
