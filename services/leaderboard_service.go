package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/gamenight/boardgame-league/models"
	"github.com/gamenight/boardgame-league/rating"
	"github.com/gamenight/boardgame-league/repositories"
)

// winRateWindow caps how many recent matches feed a player's win percentage.
const winRateWindow = 40

type LeaderboardService interface {
	EloRanking(ctx context.Context) ([]models.EloRankingRow, error)
	WinRateRanking(ctx context.Context) ([]models.WinRateRankingRow, error)
}

type leaderboardService struct {
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
}

func NewLeaderboardService(
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
) LeaderboardService {
	return &leaderboardService{
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
	}
}

// EloRanking lists active players by their stored (last recomputed) rating.
func (s *leaderboardService) EloRanking(ctx context.Context) ([]models.EloRankingRow, error) {
	players, err := s.playerRepo.GetAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load players for elo ranking: %w", err)
	}
	return buildEloRanking(players), nil
}

// WinRateRanking scores each active player's recent form over their last
// matches and sorts descending. The sort is stable over the player-name
// order the repository returns, so ties rank deterministically.
func (s *leaderboardService) WinRateRanking(ctx context.Context) ([]models.WinRateRankingRow, error) {
	players, err := s.playerRepo.GetAll(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load players for win-rate ranking: %w", err)
	}

	rows := make([]models.WinRateRankingRow, 0, len(players))
	for _, player := range players {
		participations, err := s.matchRepo.ListPlayerParticipations(ctx, player.ID, winRateWindow)
		if err != nil {
			return nil, fmt.Errorf("failed to load matches for player %d: %w", player.ID, err)
		}
		if len(participations) == 0 {
			continue
		}

		rows = append(rows, models.WinRateRankingRow{
			Player:        player.Name,
			WinPercentage: rating.WinPercentage(toParticipations(participations)),
			Matches:       len(participations),
		})
	}

	sortWinRateRows(rows)
	for i := range rows {
		rows[i].Rank = i + 1
	}
	return rows, nil
}

func sortWinRateRows(rows []models.WinRateRankingRow) {
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].WinPercentage > rows[j].WinPercentage
	})
}

func toParticipations(rows []models.Participation) []rating.Participation {
	out := make([]rating.Participation, 0, len(rows))
	for _, r := range rows {
		out = append(out, rating.Participation{
			Position:     r.Position,
			TotalPlayers: r.TotalPlayers,
			Weight:       r.Weight,
		})
	}
	return out
}
