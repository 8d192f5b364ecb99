package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gamenight/boardgame-league/models"
	"github.com/gamenight/boardgame-league/rating"
	"github.com/gamenight/boardgame-league/repositories"
)

type PlayerService interface {
	CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetPlayerByID(ctx context.Context, id int) (*models.Player, error)
	GetAllPlayers(ctx context.Context, onlyActive bool) ([]models.Player, error)
	RenamePlayer(ctx context.Context, id int, name string) (*models.Player, error)
	DeactivatePlayer(ctx context.Context, id int) error
	ReactivatePlayer(ctx context.Context, id int) error
}

type CreatePlayerInput struct {
	Name string `json:"name"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository) PlayerService {
	return &playerService{playerRepo: playerRepo}
}

func (s *playerService) CreatePlayer(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}

	player := &models.Player{
		Name:   name,
		Rating: rating.Baseline,
		Active: true,
	}

	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNameConflict) {
			return nil, ErrPlayerNameConflict
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}

	return player, nil
}

func (s *playerService) GetPlayerByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return player, nil
}

func (s *playerService) GetAllPlayers(ctx context.Context, onlyActive bool) ([]models.Player, error) {
	players, err := s.playerRepo.GetAll(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// RenamePlayer changes the display name only. The rating is derived state and
// has no write path here.
func (s *playerService) RenamePlayer(ctx context.Context, id int, name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}

	if err := s.playerRepo.UpdateName(ctx, id, name); err != nil {
		switch {
		case errors.Is(err, repositories.ErrPlayerNotFound):
			return nil, ErrPlayerNotFound
		case errors.Is(err, repositories.ErrPlayerNameConflict):
			return nil, ErrPlayerNameConflict
		default:
			return nil, fmt.Errorf("failed to rename player %d: %w", id, err)
		}
	}

	return s.GetPlayerByID(ctx, id)
}

// DeactivatePlayer is a soft delete: the player disappears from pickers and
// rankings of active players, but their historical results stay and keep
// influencing everyone's ratings.
func (s *playerService) DeactivatePlayer(ctx context.Context, id int) error {
	return s.setActive(ctx, id, false)
}

func (s *playerService) ReactivatePlayer(ctx context.Context, id int) error {
	return s.setActive(ctx, id, true)
}

func (s *playerService) setActive(ctx context.Context, id int, active bool) error {
	if err := s.playerRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to update player %d active flag: %w", id, err)
	}
	return nil
}
