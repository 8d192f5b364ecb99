package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gamenight/boardgame-league/models"
	"github.com/lib/pq"
)

var (
	ErrGameNotFound     = errors.New("game not found")
	ErrGameNameConflict = errors.New("game name conflict")
	ErrGameInUse        = errors.New("game cannot be deleted as it is in use")
)

type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id int) (*models.Game, error)
	GetAll(ctx context.Context, onlyActive bool) ([]models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	UpdateCoverKey(ctx context.Context, id int, coverKey *string) error
	SetActive(ctx context.Context, id int, active bool) error
	Count(ctx context.Context, onlyActive bool) (int, error)
}

type postgresGameRepository struct {
	db *sql.DB
}

func NewPostgresGameRepository(db *sql.DB) GameRepository {
	return &postgresGameRepository{db: db}
}

const gameColumns = `id, name, weight, bgg_id, bgg_url, min_players, max_players,
	min_playtime, max_playtime, kind, category, mechanics, year_published,
	cover_key, synced_at, active`

func scanGame(scanner interface{ Scan(...interface{}) error }) (*models.Game, error) {
	var game models.Game
	err := scanner.Scan(
		&game.ID, &game.Name, &game.Weight, &game.BGGID, &game.BGGURL,
		&game.MinPlayers, &game.MaxPlayers, &game.MinPlaytime, &game.MaxPlaytime,
		&game.Kind, &game.Category, &game.Mechanics, &game.YearPublished,
		&game.CoverKey, &game.SyncedAt, &game.Active,
	)
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *postgresGameRepository) Create(ctx context.Context, game *models.Game) error {
	query := `
		INSERT INTO games
			(name, weight, bgg_id, bgg_url, min_players, max_players,
			 min_playtime, max_playtime, kind, category, mechanics,
			 year_published, synced_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`

	err := r.db.QueryRowContext(ctx, query,
		game.Name, game.Weight, game.BGGID, game.BGGURL,
		game.MinPlayers, game.MaxPlayers, game.MinPlaytime, game.MaxPlaytime,
		game.Kind, game.Category, game.Mechanics, game.YearPublished,
		game.SyncedAt, game.Active,
	).Scan(&game.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrGameNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresGameRepository) GetByID(ctx context.Context, id int) (*models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games WHERE id = $1`

	game, err := scanGame(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}
	return game, nil
}

func (r *postgresGameRepository) GetAll(ctx context.Context, onlyActive bool) ([]models.Game, error) {
	query := `SELECT ` + gameColumns + ` FROM games ORDER BY name ASC`
	if onlyActive {
		query = `SELECT ` + gameColumns + ` FROM games WHERE active ORDER BY name ASC`
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := make([]models.Game, 0)
	for rows.Next() {
		game, scanErr := scanGame(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		games = append(games, *game)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return games, nil
}

func (r *postgresGameRepository) Update(ctx context.Context, game *models.Game) error {
	query := `
		UPDATE games
		SET name = $1, weight = $2, bgg_id = $3, bgg_url = $4,
		    min_players = $5, max_players = $6, min_playtime = $7, max_playtime = $8,
		    kind = $9, category = $10, mechanics = $11, year_published = $12,
		    synced_at = $13
		WHERE id = $14`

	result, err := r.db.ExecContext(ctx, query,
		game.Name, game.Weight, game.BGGID, game.BGGURL,
		game.MinPlayers, game.MaxPlayers, game.MinPlaytime, game.MaxPlaytime,
		game.Kind, game.Category, game.Mechanics, game.YearPublished,
		game.SyncedAt, game.ID,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrGameNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) UpdateCoverKey(ctx context.Context, id int, coverKey *string) error {
	query := `UPDATE games SET cover_key = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, coverKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) SetActive(ctx context.Context, id int, active bool) error {
	query := `UPDATE games SET active = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, active, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrGameNotFound)
}

func (r *postgresGameRepository) Count(ctx context.Context, onlyActive bool) (int, error) {
	query := `SELECT COUNT(*) FROM games`
	if onlyActive {
		query = `SELECT COUNT(*) FROM games WHERE active`
	}

	var count int
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}
