package services

import (
	"context"
	"sort"
	"time"

	"github.com/gamenight/boardgame-league/models"
	"github.com/gamenight/boardgame-league/repositories"
)

// fakePlayerRepository is an in-memory PlayerRepository for service tests.
type fakePlayerRepository struct {
	players map[int]*models.Player
	nextID  int
}

func newFakePlayerRepository(players ...models.Player) *fakePlayerRepository {
	repo := &fakePlayerRepository{players: make(map[int]*models.Player), nextID: 1}
	for i := range players {
		p := players[i]
		if p.ID == 0 {
			p.ID = repo.nextID
		}
		repo.players[p.ID] = &p
		if p.ID >= repo.nextID {
			repo.nextID = p.ID + 1
		}
	}
	return repo
}

func (r *fakePlayerRepository) Create(_ context.Context, player *models.Player) error {
	for _, p := range r.players {
		if p.Name == player.Name {
			return repositories.ErrPlayerNameConflict
		}
	}
	player.ID = r.nextID
	r.nextID++
	clone := *player
	r.players[player.ID] = &clone
	return nil
}

func (r *fakePlayerRepository) GetByID(_ context.Context, id int) (*models.Player, error) {
	p, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *fakePlayerRepository) GetAll(_ context.Context, onlyActive bool) ([]models.Player, error) {
	out := make([]models.Player, 0, len(r.players))
	for _, p := range r.players {
		if onlyActive && !p.Active {
			continue
		}
		out = append(out, *p)
	}
	// The real repository orders by name.
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakePlayerRepository) UpdateName(_ context.Context, id int, name string) error {
	p, ok := r.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.Name = name
	return nil
}

func (r *fakePlayerRepository) SetActive(_ context.Context, id int, active bool) error {
	p, ok := r.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.Active = active
	return nil
}

func (r *fakePlayerRepository) UpdateRating(_ context.Context, _ repositories.SQLExecutor, id int, value float64) error {
	p, ok := r.players[id]
	if !ok {
		return repositories.ErrPlayerNotFound
	}
	p.Rating = value
	return nil
}

func (r *fakePlayerRepository) AllIDs(_ context.Context) ([]int, error) {
	ids := make([]int, 0, len(r.players))
	for id := range r.players {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (r *fakePlayerRepository) Count(_ context.Context, onlyActive bool) (int, error) {
	n := 0
	for _, p := range r.players {
		if onlyActive && !p.Active {
			continue
		}
		n++
	}
	return n, nil
}

// fakeGameRepository holds a fixed game catalog.
type fakeGameRepository struct {
	games map[int]*models.Game
}

func newFakeGameRepository(games ...models.Game) *fakeGameRepository {
	repo := &fakeGameRepository{games: make(map[int]*models.Game)}
	for i := range games {
		g := games[i]
		repo.games[g.ID] = &g
	}
	return repo
}

func (r *fakeGameRepository) Create(_ context.Context, game *models.Game) error {
	r.games[game.ID] = game
	return nil
}

func (r *fakeGameRepository) GetByID(_ context.Context, id int) (*models.Game, error) {
	g, ok := r.games[id]
	if !ok {
		return nil, repositories.ErrGameNotFound
	}
	clone := *g
	return &clone, nil
}

func (r *fakeGameRepository) GetAll(_ context.Context, onlyActive bool) ([]models.Game, error) {
	out := make([]models.Game, 0, len(r.games))
	for _, g := range r.games {
		if onlyActive && !g.Active {
			continue
		}
		out = append(out, *g)
	}
	return out, nil
}

func (r *fakeGameRepository) Update(_ context.Context, game *models.Game) error {
	if _, ok := r.games[game.ID]; !ok {
		return repositories.ErrGameNotFound
	}
	clone := *game
	r.games[game.ID] = &clone
	return nil
}

func (r *fakeGameRepository) UpdateCoverKey(_ context.Context, id int, coverKey *string) error {
	g, ok := r.games[id]
	if !ok {
		return repositories.ErrGameNotFound
	}
	g.CoverKey = coverKey
	return nil
}

func (r *fakeGameRepository) SetActive(_ context.Context, id int, active bool) error {
	g, ok := r.games[id]
	if !ok {
		return repositories.ErrGameNotFound
	}
	g.Active = active
	return nil
}

func (r *fakeGameRepository) Count(_ context.Context, onlyActive bool) (int, error) {
	n := 0
	for _, g := range r.games {
		if onlyActive && !g.Active {
			continue
		}
		n++
	}
	return n, nil
}

// fakeMatchRepository serves canned participations and match lists.
type fakeMatchRepository struct {
	matches        []models.Match
	participations map[int][]models.Participation
}

func (r *fakeMatchRepository) Create(_ context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	match.ID = len(r.matches) + 1
	r.matches = append(r.matches, *match)
	return nil
}

func (r *fakeMatchRepository) GetByID(_ context.Context, id int) (*models.Match, error) {
	for i := range r.matches {
		if r.matches[i].ID == id {
			clone := r.matches[i]
			return &clone, nil
		}
	}
	return nil, repositories.ErrMatchNotFound
}

func (r *fakeMatchRepository) ListRecent(_ context.Context, limit int) ([]models.Match, error) {
	if limit > len(r.matches) {
		limit = len(r.matches)
	}
	out := make([]models.Match, 0, limit)
	for i := len(r.matches) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.matches[i])
	}
	return out, nil
}

func (r *fakeMatchRepository) ListBySession(_ context.Context, sessionID int) ([]models.Match, error) {
	var out []models.Match
	for _, m := range r.matches {
		if m.SessionID != nil && *m.SessionID == sessionID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMatchRepository) Update(_ context.Context, _ repositories.SQLExecutor, match *models.Match) error {
	for i := range r.matches {
		if r.matches[i].ID == match.ID {
			r.matches[i] = *match
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (r *fakeMatchRepository) Delete(_ context.Context, id int) error {
	for i := range r.matches {
		if r.matches[i].ID == id {
			r.matches = append(r.matches[:i], r.matches[i+1:]...)
			return nil
		}
	}
	return repositories.ErrMatchNotFound
}

func (r *fakeMatchRepository) Count(_ context.Context) (int, error) {
	return len(r.matches), nil
}

func (r *fakeMatchRepository) ListRankedChronological(_ context.Context) ([]models.Match, error) {
	var out []models.Match
	for _, m := range r.matches {
		if m.Ranked {
			out = append(out, m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *fakeMatchRepository) ListPlayerParticipations(_ context.Context, playerID, limit int) ([]models.Participation, error) {
	rows := r.participations[playerID]
	if limit < len(rows) {
		rows = rows[:limit]
	}
	out := make([]models.Participation, len(rows))
	copy(out, rows)
	return out, nil
}

// fakeSessionRepository keys game nights by calendar day.
type fakeSessionRepository struct {
	sessions map[int]*models.Session
	nextID   int
}

func newFakeSessionRepository(sessions ...models.Session) *fakeSessionRepository {
	repo := &fakeSessionRepository{sessions: make(map[int]*models.Session), nextID: 1}
	for i := range sessions {
		s := sessions[i]
		if s.ID == 0 {
			s.ID = repo.nextID
		}
		repo.sessions[s.ID] = &s
		if s.ID >= repo.nextID {
			repo.nextID = s.ID + 1
		}
	}
	return repo
}

func (r *fakeSessionRepository) Create(_ context.Context, session *models.Session) error {
	session.ID = r.nextID
	r.nextID++
	clone := *session
	r.sessions[session.ID] = &clone
	return nil
}

func (r *fakeSessionRepository) GetByID(_ context.Context, id int) (*models.Session, error) {
	s, ok := r.sessions[id]
	if !ok {
		return nil, repositories.ErrSessionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *fakeSessionRepository) GetAll(_ context.Context, limit int) ([]models.Session, error) {
	out := make([]models.Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *fakeSessionRepository) GetOrCreateByDate(ctx context.Context, _ repositories.SQLExecutor, date time.Time) (int, error) {
	day := date.Format("2006-01-02")
	for _, s := range r.sessions {
		if s.Date.Format("2006-01-02") == day {
			return s.ID, nil
		}
	}
	session := &models.Session{Date: date}
	if err := r.Create(ctx, session); err != nil {
		return 0, err
	}
	return session.ID, nil
}

func (r *fakeSessionRepository) Count(_ context.Context) (int, error) {
	return len(r.sessions), nil
}

// fakeRatingService records recompute invocations.
type fakeRatingService struct {
	calls   int
	ratings map[int]float64
	err     error
}

func (s *fakeRatingService) RecomputeAllRatings(_ context.Context) (map[int]float64, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.ratings, nil
}

func day(yyyy int, mm time.Month, dd int) time.Time {
	return time.Date(yyyy, mm, dd, 0, 0, 0, 0, time.UTC)
}
