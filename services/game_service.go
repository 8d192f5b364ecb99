package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/gamenight/boardgame-league/bgg"
	"github.com/gamenight/boardgame-league/models"
	"github.com/gamenight/boardgame-league/repositories"
	"github.com/gamenight/boardgame-league/storage"
)

type GameService interface {
	CreateGame(ctx context.Context, input CreateGameInput) (*models.Game, error)
	CreateGameFromBGG(ctx context.Context, name string) (*models.Game, error)
	GetGameByID(ctx context.Context, id int) (*models.Game, error)
	GetAllGames(ctx context.Context, onlyActive bool) ([]models.Game, error)
	UpdateGame(ctx context.Context, id int, input UpdateGameInput) (*models.Game, error)
	SyncGameFromBGG(ctx context.Context, id int) (*models.Game, error)
	SyncAllGamesFromBGG(ctx context.Context) (int, error)
	UploadCover(ctx context.Context, id int, contentType string, file io.Reader) (*models.Game, error)
	DeactivateGame(ctx context.Context, id int) error
	ReactivateGame(ctx context.Context, id int) error
}

type CreateGameInput struct {
	Name        string   `json:"name"`
	Weight      float64  `json:"weight"`
	MinPlayers  *int     `json:"min_players"`
	MaxPlayers  *int     `json:"max_players"`
	MinPlaytime *int     `json:"min_playtime"`
	MaxPlaytime *int     `json:"max_playtime"`
	Kind        *string  `json:"kind"`
	Category    *string  `json:"category"`
	Mechanics   *string  `json:"mechanics"`
	BGGURL      *string  `json:"bgg_url"`
}

type UpdateGameInput struct {
	Name        string  `json:"name"`
	Weight      float64 `json:"weight"`
	MinPlayers  *int    `json:"min_players"`
	MaxPlayers  *int    `json:"max_players"`
	MinPlaytime *int    `json:"min_playtime"`
	MaxPlaytime *int    `json:"max_playtime"`
	Kind        *string `json:"kind"`
	Category    *string `json:"category"`
	Mechanics   *string `json:"mechanics"`
	BGGURL      *string `json:"bgg_url"`
}

type gameService struct {
	gameRepo repositories.GameRepository
	fetcher  bgg.MetadataFetcher
	uploader storage.FileUploader
	logger   *slog.Logger
}

func NewGameService(
	gameRepo repositories.GameRepository,
	fetcher bgg.MetadataFetcher,
	uploader storage.FileUploader,
	logger *slog.Logger,
) GameService {
	return &gameService{
		gameRepo: gameRepo,
		fetcher:  fetcher,
		uploader: uploader,
		logger:   logger,
	}
}

func validWeight(weight float64) bool {
	return weight >= 1.0 && weight <= 5.0
}

func (s *gameService) CreateGame(ctx context.Context, input CreateGameInput) (*models.Game, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrGameNameRequired
	}
	if !validWeight(input.Weight) {
		return nil, ErrGameWeightOutOfRange
	}

	game := &models.Game{
		Name:        name,
		Weight:      input.Weight,
		BGGURL:      input.BGGURL,
		MinPlayers:  input.MinPlayers,
		MaxPlayers:  input.MaxPlayers,
		MinPlaytime: input.MinPlaytime,
		MaxPlaytime: input.MaxPlaytime,
		Kind:        input.Kind,
		Category:    input.Category,
		Mechanics:   input.Mechanics,
		Active:      true,
	}

	if err := s.gameRepo.Create(ctx, game); err != nil {
		if errors.Is(err, repositories.ErrGameNameConflict) {
			return nil, ErrGameNameConflict
		}
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	s.populateCoverURL(game)
	return game, nil
}

// CreateGameFromBGG looks the name up on BoardGameGeek and creates a catalog
// entry from the top hit.
func (s *gameService) CreateGameFromBGG(ctx context.Context, name string) (*models.Game, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrGameNameRequired
	}

	meta, err := s.fetcher.FindGame(ctx, name)
	if err != nil {
		if errors.Is(err, bgg.ErrGameNotFound) {
			return nil, ErrBGGGameNotFound
		}
		return nil, fmt.Errorf("bgg lookup failed for %q: %w", name, err)
	}

	game := &models.Game{Name: meta.Name, Active: true}
	applyMetadata(game, meta)

	if err := s.gameRepo.Create(ctx, game); err != nil {
		if errors.Is(err, repositories.ErrGameNameConflict) {
			return nil, ErrGameNameConflict
		}
		return nil, fmt.Errorf("failed to create game from BGG: %w", err)
	}

	s.logger.Info("game created from BGG",
		slog.String("name", game.Name),
		slog.Int("bgg_id", meta.BGGID),
		slog.Float64("weight", game.Weight))

	s.populateCoverURL(game)
	return game, nil
}

func applyMetadata(game *models.Game, meta *bgg.GameMetadata) {
	now := time.Now()
	weight := meta.Weight
	if weight > 5.0 {
		weight = 5.0
	}

	game.Weight = weight
	game.BGGID = &meta.BGGID
	game.BGGURL = &meta.URL
	game.SyncedAt = &now

	if meta.MinPlayers > 0 {
		game.MinPlayers = &meta.MinPlayers
	}
	if meta.MaxPlayers > 0 {
		game.MaxPlayers = &meta.MaxPlayers
	}
	if meta.MinPlaytime > 0 {
		game.MinPlaytime = &meta.MinPlaytime
	}
	if meta.MaxPlaytime > 0 {
		game.MaxPlaytime = &meta.MaxPlaytime
	}
	if meta.YearPublished > 0 {
		game.YearPublished = &meta.YearPublished
	}
	if meta.Kind != "" {
		game.Kind = &meta.Kind
	}
	if len(meta.Categories) > 0 {
		category := strings.Join(meta.Categories, ", ")
		game.Category = &category
	}
	if len(meta.Mechanics) > 0 {
		mechanics := strings.Join(meta.Mechanics, ", ")
		game.Mechanics = &mechanics
	}
}

func (s *gameService) GetGameByID(ctx context.Context, id int) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return nil, ErrGameNotFound
		}
		return nil, fmt.Errorf("failed to get game %d: %w", id, err)
	}
	s.populateCoverURL(game)
	return game, nil
}

func (s *gameService) GetAllGames(ctx context.Context, onlyActive bool) ([]models.Game, error) {
	games, err := s.gameRepo.GetAll(ctx, onlyActive)
	if err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}
	for i := range games {
		s.populateCoverURL(&games[i])
	}
	return games, nil
}

func (s *gameService) UpdateGame(ctx context.Context, id int, input UpdateGameInput) (*models.Game, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrGameNameRequired
	}
	if !validWeight(input.Weight) {
		return nil, ErrGameWeightOutOfRange
	}

	game, err := s.GetGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	game.Name = name
	game.Weight = input.Weight
	game.BGGURL = input.BGGURL
	game.MinPlayers = input.MinPlayers
	game.MaxPlayers = input.MaxPlayers
	game.MinPlaytime = input.MinPlaytime
	game.MaxPlaytime = input.MaxPlaytime
	game.Kind = input.Kind
	game.Category = input.Category
	game.Mechanics = input.Mechanics

	if err := s.gameRepo.Update(ctx, game); err != nil {
		switch {
		case errors.Is(err, repositories.ErrGameNotFound):
			return nil, ErrGameNotFound
		case errors.Is(err, repositories.ErrGameNameConflict):
			return nil, ErrGameNameConflict
		default:
			return nil, fmt.Errorf("failed to update game %d: %w", id, err)
		}
	}

	s.populateCoverURL(game)
	return game, nil
}

// SyncGameFromBGG refreshes a catalog entry from BGG, preferring the stored
// BGG id and falling back to a name search.
func (s *gameService) SyncGameFromBGG(ctx context.Context, id int) (*models.Game, error) {
	game, err := s.GetGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var meta *bgg.GameMetadata
	if game.BGGID != nil {
		meta, err = s.fetcher.FetchGame(ctx, *game.BGGID)
	} else {
		meta, err = s.fetcher.FindGame(ctx, game.Name)
	}
	if err != nil {
		if errors.Is(err, bgg.ErrGameNotFound) {
			return nil, ErrBGGGameNotFound
		}
		return nil, fmt.Errorf("bgg sync failed for game %d: %w", id, err)
	}

	applyMetadata(game, meta)

	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to persist BGG sync for game %d: %w", id, err)
	}

	s.logger.Info("game synced from BGG", slog.Int("game_id", id), slog.Float64("weight", game.Weight))
	s.populateCoverURL(game)
	return game, nil
}

// SyncAllGamesFromBGG refreshes every active game, skipping the ones BGG no
// longer knows. Returns how many were updated.
func (s *gameService) SyncAllGamesFromBGG(ctx context.Context) (int, error) {
	games, err := s.gameRepo.GetAll(ctx, true)
	if err != nil {
		return 0, fmt.Errorf("failed to list games for bulk sync: %w", err)
	}

	synced := 0
	for _, game := range games {
		if _, err := s.SyncGameFromBGG(ctx, game.ID); err != nil {
			s.logger.Warn("bulk BGG sync skipped game",
				slog.Int("game_id", game.ID),
				slog.String("name", game.Name),
				slog.Any("error", err))
			continue
		}
		synced++
	}
	return synced, nil
}

func (s *gameService) UploadCover(ctx context.Context, id int, contentType string, file io.Reader) (*models.Game, error) {
	// The server can run without object storage; see the uploader wiring in
	// cmd/main.go.
	if s.uploader == nil {
		return nil, ErrUploadsDisabled
	}

	game, err := s.GetGameByID(ctx, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("games/%d/cover", id)
	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload cover for game %d: %w", id, err)
	}

	if err := s.gameRepo.UpdateCoverKey(ctx, id, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to store cover key for game %d: %w", id, err)
	}

	game.CoverKey = &result.Key
	s.populateCoverURL(game)
	return game, nil
}

func (s *gameService) DeactivateGame(ctx context.Context, id int) error {
	return s.setActive(ctx, id, false)
}

func (s *gameService) ReactivateGame(ctx context.Context, id int) error {
	return s.setActive(ctx, id, true)
}

func (s *gameService) setActive(ctx context.Context, id int, active bool) error {
	if err := s.gameRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, repositories.ErrGameNotFound) {
			return ErrGameNotFound
		}
		return fmt.Errorf("failed to update game %d active flag: %w", id, err)
	}
	return nil
}

func (s *gameService) populateCoverURL(game *models.Game) {
	if game.CoverKey == nil || s.uploader == nil {
		return
	}
	if u := s.uploader.GetPublicURL(*game.CoverKey); u != "" {
		game.CoverURL = &u
	}
}
