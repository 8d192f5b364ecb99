package services

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"

	"github.com/gamenight/boardgame-league/live"
	"github.com/gamenight/boardgame-league/models"
	"github.com/gamenight/boardgame-league/rating"
	"github.com/gamenight/boardgame-league/repositories"
)

// RatingService is the replay driver: it rebuilds every player's rating from
// the full ranked match history. There is no incremental path — any mutation
// of ranked history is followed by a full recompute, which keeps edits and
// deletions trivially correct at the cost of O(history) work.
type RatingService interface {
	RecomputeAllRatings(ctx context.Context) (map[int]float64, error)
}

type ratingService struct {
	db         *sql.DB
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	hub        *live.Hub
	logger     *slog.Logger

	// Serializes recomputes: concurrent replays would race on the stored
	// ratings and lose updates.
	mu sync.Mutex
}

func NewRatingService(
	db *sql.DB,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	hub *live.Hub,
	logger *slog.Logger,
) RatingService {
	return &ratingService{
		db:         db,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		hub:        hub,
		logger:     logger,
	}
}

func (s *ratingService) RecomputeAllRatings(ctx context.Context) (map[int]float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	playerIDs, err := s.playerRepo.AllIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("recompute: failed to load player ids: %w", err)
	}

	matches, err := s.matchRepo.ListRankedChronological(ctx)
	if err != nil {
		return nil, fmt.Errorf("recompute: failed to load ranked matches: %w", err)
	}

	ratings, err := rating.Replay(toMatchRecords(matches), playerIDs, rating.Baseline)
	if err != nil {
		return nil, fmt.Errorf("recompute: %w", err)
	}

	if err := s.persistRatings(ctx, ratings); err != nil {
		return nil, err
	}

	s.logger.Info("ratings recomputed",
		slog.Int("players", len(playerIDs)),
		slog.Int("matches", len(matches)))

	s.broadcastLeaderboard(ctx)

	return ratings, nil
}

// toMatchRecords flattens stored matches into the engine's input. The match
// slice arrives date-then-id ordered and each result list position-then-id
// ordered, which fixes the pairwise accumulation order and with it the exact
// floating-point outcome of a replay.
func toMatchRecords(matches []models.Match) []rating.MatchRecord {
	records := make([]rating.MatchRecord, 0, len(matches))
	for _, m := range matches {
		weight := 1.0
		if m.GameWeight != nil {
			weight = *m.GameWeight
		}

		record := rating.MatchRecord{
			MatchID:   m.ID,
			Weight:    weight,
			TeamMatch: m.TeamMatch,
			Results:   make([]rating.ResultEntry, 0, len(m.Results)),
		}
		for _, r := range m.Results {
			record.Results = append(record.Results, rating.ResultEntry{
				PlayerID: r.PlayerID,
				Position: r.Position,
				TeamID:   r.TeamID,
			})
		}
		records = append(records, record)
	}
	return records
}

// persistRatings writes the recomputed values in one transaction so readers
// never observe a half-applied recompute. Stored values are rounded to one
// decimal; the stored rating is only a cache of the last replay anyway.
func (s *ratingService) persistRatings(ctx context.Context, ratings map[int]float64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("recompute: failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for playerID, value := range ratings {
		rounded := math.Round(value*10) / 10
		if err := s.playerRepo.UpdateRating(ctx, tx, playerID, rounded); err != nil {
			return fmt.Errorf("recompute: failed to store rating for player %d: %w", playerID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("recompute: failed to commit ratings: %w", err)
	}
	return nil
}

func (s *ratingService) broadcastLeaderboard(ctx context.Context) {
	if s.hub == nil {
		return
	}

	players, err := s.playerRepo.GetAll(ctx, false)
	if err != nil {
		s.logger.Error("failed to load players for leaderboard broadcast", slog.Any("error", err))
		return
	}

	rows := buildEloRanking(players)
	s.hub.BroadcastToRoom(live.RoomLeaderboard, live.Message{
		Type:    live.EventLeaderboardUpdated,
		Payload: rows,
		RoomID:  live.RoomLeaderboard,
	})
}

// buildEloRanking sorts players by rating descending. Sorting is stable with
// name order as the incoming order, so equal ratings keep a deterministic
// ranking.
func buildEloRanking(players []models.Player) []models.EloRankingRow {
	sorted := make([]models.Player, len(players))
	copy(sorted, players)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Rating > sorted[j].Rating
	})

	rows := make([]models.EloRankingRow, 0, len(sorted))
	for i, p := range sorted {
		rows = append(rows, models.EloRankingRow{
			Rank:   i + 1,
			Player: p.Name,
			Rating: math.Round(p.Rating*10) / 10,
			Active: p.Active,
		})
	}
	return rows
}
