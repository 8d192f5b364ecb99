package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gamenight/boardgame-league/models"
	"github.com/gamenight/boardgame-league/repositories"
)

type MatchService interface {
	CreateMatch(ctx context.Context, input MatchInput) (*models.Match, error)
	GetMatchByID(ctx context.Context, id int) (*models.Match, error)
	ListRecentMatches(ctx context.Context, limit int) ([]models.Match, error)
	ReplaceMatch(ctx context.Context, id int, input MatchInput) (*models.Match, error)
	DeleteMatch(ctx context.Context, id int) error
}

// MatchInput describes a match and all of its results; results are always
// written together with the match.
type MatchInput struct {
	GameID    int         `json:"game_id"`
	Date      time.Time   `json:"date"`
	Ranked    bool        `json:"ranked"`
	TeamMatch bool        `json:"team_match"`
	Notes     *string     `json:"notes"`
	Results   []ResultInput `json:"results"`
}

type ResultInput struct {
	PlayerID int      `json:"player_id"`
	Position int      `json:"position"`
	Score    *float64 `json:"score"`
	TeamID   *int     `json:"team_id"`
}

type matchService struct {
	db            *sql.DB
	matchRepo     repositories.MatchRepository
	gameRepo      repositories.GameRepository
	playerRepo    repositories.PlayerRepository
	sessionRepo   repositories.SessionRepository
	ratingService RatingService
	logger        *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	gameRepo repositories.GameRepository,
	playerRepo repositories.PlayerRepository,
	sessionRepo repositories.SessionRepository,
	ratingService RatingService,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		db:            db,
		matchRepo:     matchRepo,
		gameRepo:      gameRepo,
		playerRepo:    playerRepo,
		sessionRepo:   sessionRepo,
		ratingService: ratingService,
		logger:        logger,
	}
}

func (s *matchService) validateInput(ctx context.Context, input MatchInput) error {
	if input.Date.IsZero() {
		return ErrMatchDateRequired
	}
	if len(input.Results) < 2 {
		return ErrMatchNeedsTwoResults
	}

	seen := make(map[int]bool, len(input.Results))
	for _, r := range input.Results {
		if r.Position < 1 {
			return ErrMatchInvalidPosition
		}
		if seen[r.PlayerID] {
			return ErrMatchDuplicatePlayer
		}
		seen[r.PlayerID] = true

		if _, err := s.playerRepo.GetByID(ctx, r.PlayerID); err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				return fmt.Errorf("%w: player %d", ErrPlayerNotFound, r.PlayerID)
			}
			return err
		}
	}

	if _, err := s.gameRepo.GetByID(ctx, input.GameID); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return err
	}

	return nil
}

func (s *matchService) CreateMatch(ctx context.Context, input MatchInput) (*models.Match, error) {
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Every match belongs to the game night of its date.
	sessionID, err := s.sessionRepo.GetOrCreateByDate(ctx, tx, input.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session for %s: %w", input.Date.Format("2006-01-02"), err)
	}

	match := &models.Match{
		GameID:    input.GameID,
		SessionID: &sessionID,
		Date:      input.Date,
		Ranked:    input.Ranked,
		TeamMatch: input.TeamMatch,
		Notes:     input.Notes,
		Results:   toResults(input.Results),
	}

	if err := s.matchRepo.Create(ctx, tx, match); err != nil {
		return nil, fmt.Errorf("failed to create match: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match: %w", err)
	}

	s.logger.Info("match recorded",
		slog.Int("match_id", match.ID),
		slog.Int("game_id", match.GameID),
		slog.Bool("ranked", match.Ranked),
		slog.Int("players", len(match.Results)))

	if match.Ranked {
		s.recompute(ctx, match.ID)
	}

	return s.GetMatchByID(ctx, match.ID)
}

func toResults(inputs []ResultInput) []models.Result {
	results := make([]models.Result, 0, len(inputs))
	for _, in := range inputs {
		results = append(results, models.Result{
			PlayerID: in.PlayerID,
			Position: in.Position,
			Score:    in.Score,
			TeamID:   in.TeamID,
		})
	}
	return results
}

func (s *matchService) GetMatchByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) ListRecentMatches(ctx context.Context, limit int) ([]models.Match, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	matches, err := s.matchRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

// ReplaceMatch swaps the whole match record, results included. Matches are
// immutable except for this full replace (or delete), so a recompute after is
// always sufficient to repair the ratings.
func (s *matchService) ReplaceMatch(ctx context.Context, id int, input MatchInput) (*models.Match, error) {
	existing, err := s.GetMatchByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validateInput(ctx, input); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	sessionID, err := s.sessionRepo.GetOrCreateByDate(ctx, tx, input.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session for %s: %w", input.Date.Format("2006-01-02"), err)
	}

	match := &models.Match{
		ID:        id,
		GameID:    input.GameID,
		SessionID: &sessionID,
		Date:      input.Date,
		Ranked:    input.Ranked,
		TeamMatch: input.TeamMatch,
		Notes:     input.Notes,
		Results:   toResults(input.Results),
	}

	if err := s.matchRepo.Update(ctx, tx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to update match %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match update: %w", err)
	}

	// Recompute if ranked history changed in any direction: the match is
	// ranked now, or used to be.
	if match.Ranked || existing.Ranked {
		s.recompute(ctx, id)
	}

	return s.GetMatchByID(ctx, id)
}

func (s *matchService) DeleteMatch(ctx context.Context, id int) error {
	existing, err := s.GetMatchByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.matchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}

	if existing.Ranked {
		s.recompute(ctx, id)
	}
	return nil
}

func (s *matchService) recompute(ctx context.Context, matchID int) {
	if _, err := s.ratingService.RecomputeAllRatings(ctx); err != nil {
		// The match mutation is already committed; the stored ratings are
		// stale until the next recompute. Surface it loudly.
		s.logger.Error("rating recompute failed after match mutation",
			slog.Int("match_id", matchID),
			slog.Any("error", err))
	}
}
