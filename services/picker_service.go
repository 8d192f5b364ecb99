package services

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/gamenight/boardgame-league/models"
	"github.com/gamenight/boardgame-league/repositories"
)

// PickerService draws a random first player for the table, the digital
// version of spinning a meeple.
type PickerService interface {
	DrawFirstPlayer(ctx context.Context, playerIDs []int) (*models.Player, error)
}

type pickerService struct {
	playerRepo repositories.PlayerRepository
}

func NewPickerService(playerRepo repositories.PlayerRepository) PickerService {
	return &pickerService{playerRepo: playerRepo}
}

func (s *pickerService) DrawFirstPlayer(ctx context.Context, playerIDs []int) (*models.Player, error) {
	if len(playerIDs) < 2 {
		return nil, ErrPickerNeedsTwoPlayers
	}

	chosen := playerIDs[rand.Intn(len(playerIDs))]

	player, err := s.playerRepo.GetByID(ctx, chosen)
	if err != nil {
		return nil, fmt.Errorf("failed to load drawn player %d: %w", chosen, err)
	}
	return player, nil
}
