package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/gamenight/boardgame-league/models"
	"github.com/lib/pq"
)

var (
	ErrMatchNotFound      = errors.New("match not found")
	ErrMatchGameInvalid   = errors.New("match references an invalid game")
	ErrMatchPlayerInvalid = errors.New("match result references an invalid player")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListRecent(ctx context.Context, limit int) ([]models.Match, error)
	ListBySession(ctx context.Context, sessionID int) ([]models.Match, error)
	Update(ctx context.Context, exec SQLExecutor, match *models.Match) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int, error)

	// ListRankedChronological returns every counts-for-ranking match with its
	// results, ordered by date ascending then id ascending. This is the total
	// order the rating replay depends on.
	ListRankedChronological(ctx context.Context) ([]models.Match, error)

	// ListPlayerParticipations returns a player's most recent ranked
	// appearances, newest first, capped at limit.
	ListPlayerParticipations(ctx context.Context, playerID, limit int) ([]models.Participation, error)
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)

	query := `
		INSERT INTO matches (game_id, session_id, date, ranked, team_match, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	err := executor.QueryRowContext(ctx, query,
		match.GameID, match.SessionID, match.Date, match.Ranked, match.TeamMatch, match.Notes,
	).Scan(&match.ID)
	if err != nil {
		return mapMatchFKError(err)
	}

	return r.insertResults(ctx, executor, match)
}

func (r *postgresMatchRepository) insertResults(ctx context.Context, executor SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO results (match_id, player_id, position, score, team_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	for i := range match.Results {
		res := &match.Results[i]
		res.MatchID = match.ID
		err := executor.QueryRowContext(ctx, query,
			match.ID, res.PlayerID, res.Position, res.Score, res.TeamID,
		).Scan(&res.ID)
		if err != nil {
			return mapMatchFKError(err)
		}
	}
	return nil
}

func mapMatchFKError(err error) error {
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
		switch pqErr.Constraint {
		case "matches_game_id_fkey":
			return ErrMatchGameInvalid
		case "results_player_id_fkey":
			return ErrMatchPlayerInvalid
		}
	}
	return err
}

const matchSelect = `
	SELECT m.id, m.game_id, m.session_id, m.date, m.ranked, m.team_match, m.notes,
	       g.name, g.weight
	FROM matches m
	JOIN games g ON g.id = m.game_id`

func scanMatch(scanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var match models.Match
	err := scanner.Scan(
		&match.ID, &match.GameID, &match.SessionID, &match.Date,
		&match.Ranked, &match.TeamMatch, &match.Notes,
		&match.GameName, &match.GameWeight,
	)
	if err != nil {
		return nil, err
	}
	return &match, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := scanMatch(r.db.QueryRowContext(ctx, matchSelect+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}

	results, err := r.resultsForMatches(ctx, []int{match.ID})
	if err != nil {
		return nil, err
	}
	match.Results = results[match.ID]
	return match, nil
}

func (r *postgresMatchRepository) ListRecent(ctx context.Context, limit int) ([]models.Match, error) {
	query := matchSelect + ` ORDER BY m.id DESC LIMIT $1`
	return r.listWithResults(ctx, query, limit)
}

func (r *postgresMatchRepository) ListBySession(ctx context.Context, sessionID int) ([]models.Match, error) {
	query := matchSelect + ` WHERE m.session_id = $1 ORDER BY m.id ASC`
	return r.listWithResults(ctx, query, sessionID)
}

func (r *postgresMatchRepository) ListRankedChronological(ctx context.Context) ([]models.Match, error) {
	query := matchSelect + ` WHERE m.ranked ORDER BY m.date ASC, m.id ASC`
	return r.listWithResults(ctx, query)
}

func (r *postgresMatchRepository) listWithResults(ctx context.Context, query string, args ...interface{}) ([]models.Match, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	ids := make([]int, 0)
	for rows.Next() {
		match, scanErr := scanMatch(rows)
		if scanErr != nil {
			return nil, scanErr
		}
		matches = append(matches, *match)
		ids = append(ids, match.ID)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return matches, nil
	}

	resultsByMatch, err := r.resultsForMatches(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range matches {
		matches[i].Results = resultsByMatch[matches[i].ID]
	}
	return matches, nil
}

func (r *postgresMatchRepository) resultsForMatches(ctx context.Context, matchIDs []int) (map[int][]models.Result, error) {
	query := `
		SELECT r.id, r.match_id, r.player_id, r.position, r.score, r.team_id, p.name
		FROM results r
		JOIN players p ON p.id = r.player_id
		WHERE r.match_id = ANY($1)
		ORDER BY r.match_id ASC, r.position ASC, r.id ASC`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(matchIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byMatch := make(map[int][]models.Result, len(matchIDs))
	for rows.Next() {
		var res models.Result
		if scanErr := rows.Scan(&res.ID, &res.MatchID, &res.PlayerID, &res.Position, &res.Score, &res.TeamID, &res.PlayerName); scanErr != nil {
			return nil, scanErr
		}
		byMatch[res.MatchID] = append(byMatch[res.MatchID], res)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return byMatch, nil
}

func (r *postgresMatchRepository) Update(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	executor := r.getExecutor(exec)

	query := `
		UPDATE matches
		SET game_id = $1, session_id = $2, date = $3, ranked = $4, team_match = $5, notes = $6
		WHERE id = $7`

	result, err := executor.ExecContext(ctx, query,
		match.GameID, match.SessionID, match.Date, match.Ranked, match.TeamMatch, match.Notes, match.ID,
	)
	if err != nil {
		return mapMatchFKError(err)
	}
	if err := checkAffectedRows(result, ErrMatchNotFound); err != nil {
		return err
	}

	// Results are owned by the match and replaced wholesale.
	if _, err := executor.ExecContext(ctx, `DELETE FROM results WHERE match_id = $1`, match.ID); err != nil {
		return err
	}
	return r.insertResults(ctx, executor, match)
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	// results go with it via ON DELETE CASCADE
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&count)
	return count, err
}

func (r *postgresMatchRepository) ListPlayerParticipations(ctx context.Context, playerID, limit int) ([]models.Participation, error) {
	query := `
		SELECT m.id,
		       r.position,
		       (SELECT MAX(position) FROM results WHERE match_id = m.id) AS total_players,
		       g.weight
		FROM results r
		JOIN matches m ON m.id = r.match_id
		JOIN games g ON g.id = m.game_id
		WHERE r.player_id = $1 AND m.ranked
		ORDER BY m.id DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, playerID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	participations := make([]models.Participation, 0)
	for rows.Next() {
		var p models.Participation
		if scanErr := rows.Scan(&p.MatchID, &p.Position, &p.TotalPlayers, &p.Weight); scanErr != nil {
			return nil, scanErr
		}
		participations = append(participations, p)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return participations, nil
}
