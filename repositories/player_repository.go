package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gamenight/boardgame-league/models"
	"github.com/lib/pq"
)

var (
	ErrPlayerNotFound     = errors.New("player not found")
	ErrPlayerNameConflict = errors.New("player name conflict")
)

type PlayerRepository interface {
	Create(ctx context.Context, player *models.Player) error
	GetByID(ctx context.Context, id int) (*models.Player, error)
	GetAll(ctx context.Context, onlyActive bool) ([]models.Player, error)
	UpdateName(ctx context.Context, id int, name string) error
	SetActive(ctx context.Context, id int, active bool) error
	UpdateRating(ctx context.Context, exec SQLExecutor, id int, rating float64) error
	AllIDs(ctx context.Context) ([]int, error)
	Count(ctx context.Context, onlyActive bool) (int, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) Create(ctx context.Context, player *models.Player) error {
	query := `INSERT INTO players (name, rating, active) VALUES ($1, $2, $3) RETURNING id`

	err := r.db.QueryRowContext(ctx, query, player.Name, player.Rating, player.Active).Scan(&player.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrPlayerNameConflict
		}
		return err
	}
	return nil
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT id, name, rating, active FROM players WHERE id = $1`

	var player models.Player
	err := r.db.QueryRowContext(ctx, query, id).Scan(&player.ID, &player.Name, &player.Rating, &player.Active)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return &player, nil
}

func (r *postgresPlayerRepository) GetAll(ctx context.Context, onlyActive bool) ([]models.Player, error) {
	query := `SELECT id, name, rating, active FROM players ORDER BY name ASC`
	if onlyActive {
		query = `SELECT id, name, rating, active FROM players WHERE active ORDER BY name ASC`
	}

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.Player, 0)
	for rows.Next() {
		var player models.Player
		if scanErr := rows.Scan(&player.ID, &player.Name, &player.Rating, &player.Active); scanErr != nil {
			return nil, scanErr
		}
		players = append(players, player)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return players, nil
}

func (r *postgresPlayerRepository) UpdateName(ctx context.Context, id int, name string) error {
	query := `UPDATE players SET name = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, name, id)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrPlayerNameConflict
		}
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) SetActive(ctx context.Context, id int, active bool) error {
	query := `UPDATE players SET active = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, active, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

func (r *postgresPlayerRepository) UpdateRating(ctx context.Context, exec SQLExecutor, id int, rating float64) error {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}

	query := `UPDATE players SET rating = $1 WHERE id = $2`

	result, err := executor.ExecContext(ctx, query, rating, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrPlayerNotFound)
}

// AllIDs returns every player id, inactive players included. The replay needs
// all of them: inactive players still sit in historical matches.
func (r *postgresPlayerRepository) AllIDs(ctx context.Context) ([]int, error) {
	query := `SELECT id FROM players ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := make([]int, 0)
	for rows.Next() {
		var id int
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, scanErr
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return ids, nil
}

func (r *postgresPlayerRepository) Count(ctx context.Context, onlyActive bool) (int, error) {
	query := `SELECT COUNT(*) FROM players`
	if onlyActive {
		query = `SELECT COUNT(*) FROM players WHERE active`
	}

	var count int
	err := r.db.QueryRowContext(ctx, query).Scan(&count)
	return count, err
}
