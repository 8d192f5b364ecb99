package repositories

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gamenight/boardgame-league/models"
)

var ErrSessionNotFound = errors.New("session not found")

type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByID(ctx context.Context, id int) (*models.Session, error)
	GetAll(ctx context.Context, limit int) ([]models.Session, error)
	GetOrCreateByDate(ctx context.Context, exec SQLExecutor, date time.Time) (int, error)
	Count(ctx context.Context) (int, error)
}

type postgresSessionRepository struct {
	db *sql.DB
}

func NewPostgresSessionRepository(db *sql.DB) SessionRepository {
	return &postgresSessionRepository{db: db}
}

func (r *postgresSessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `INSERT INTO sessions (date, location, notes) VALUES ($1, $2, $3) RETURNING id`

	return r.db.QueryRowContext(ctx, query, session.Date, session.Location, session.Notes).Scan(&session.ID)
}

func (r *postgresSessionRepository) GetByID(ctx context.Context, id int) (*models.Session, error) {
	query := `SELECT id, date, location, notes FROM sessions WHERE id = $1`

	var session models.Session
	err := r.db.QueryRowContext(ctx, query, id).Scan(&session.ID, &session.Date, &session.Location, &session.Notes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

func (r *postgresSessionRepository) GetAll(ctx context.Context, limit int) ([]models.Session, error) {
	query := `SELECT id, date, location, notes FROM sessions ORDER BY date DESC, id DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sessions := make([]models.Session, 0)
	for rows.Next() {
		var session models.Session
		if scanErr := rows.Scan(&session.ID, &session.Date, &session.Location, &session.Notes); scanErr != nil {
			return nil, scanErr
		}
		sessions = append(sessions, session)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetOrCreateByDate finds the game night for a calendar date, creating it on
// first use so every match lands in a session.
func (r *postgresSessionRepository) GetOrCreateByDate(ctx context.Context, exec SQLExecutor, date time.Time) (int, error) {
	executor := SQLExecutor(r.db)
	if exec != nil {
		executor = exec
	}

	var id int
	err := executor.QueryRowContext(ctx, `SELECT id FROM sessions WHERE date = $1`, date).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	err = executor.QueryRowContext(ctx, `INSERT INTO sessions (date) VALUES ($1) RETURNING id`, date).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *postgresSessionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM sessions`).Scan(&count)
	return count, err
}
