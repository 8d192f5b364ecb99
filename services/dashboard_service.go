package services

import (
	"context"
	"fmt"

	"github.com/gamenight/boardgame-league/models"
	"github.com/gamenight/boardgame-league/repositories"
	"golang.org/x/sync/errgroup"
)

const dashboardRecentMatches = 10

type DashboardService interface {
	GetSummary(ctx context.Context) (*models.DashboardSummary, error)
}

type dashboardService struct {
	playerRepo  repositories.PlayerRepository
	gameRepo    repositories.GameRepository
	matchRepo   repositories.MatchRepository
	sessionRepo repositories.SessionRepository
}

func NewDashboardService(
	playerRepo repositories.PlayerRepository,
	gameRepo repositories.GameRepository,
	matchRepo repositories.MatchRepository,
	sessionRepo repositories.SessionRepository,
) DashboardService {
	return &dashboardService{
		playerRepo:  playerRepo,
		gameRepo:    gameRepo,
		matchRepo:   matchRepo,
		sessionRepo: sessionRepo,
	}
}

// GetSummary gathers the landing-page numbers in parallel; they are
// independent reads.
func (s *dashboardService) GetSummary(ctx context.Context) (*models.DashboardSummary, error) {
	var summary models.DashboardSummary

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		count, err := s.playerRepo.Count(gCtx, true)
		summary.Players = count
		return err
	})
	g.Go(func() error {
		count, err := s.gameRepo.Count(gCtx, true)
		summary.Games = count
		return err
	})
	g.Go(func() error {
		count, err := s.matchRepo.Count(gCtx)
		summary.Matches = count
		return err
	})
	g.Go(func() error {
		count, err := s.sessionRepo.Count(gCtx)
		summary.Sessions = count
		return err
	})
	g.Go(func() error {
		matches, err := s.matchRepo.ListRecent(gCtx, dashboardRecentMatches)
		summary.RecentMatches = matches
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to build dashboard summary: %w", err)
	}
	return &summary, nil
}
