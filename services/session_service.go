package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gamenight/boardgame-league/models"
	"github.com/gamenight/boardgame-league/repositories"
)

type SessionService interface {
	CreateSession(ctx context.Context, input CreateSessionInput) (*models.Session, error)
	GetSessionByID(ctx context.Context, id int) (*models.Session, error)
	ListSessions(ctx context.Context, limit int) ([]models.Session, error)
}

type CreateSessionInput struct {
	Date     time.Time `json:"date"`
	Location *string   `json:"location"`
	Notes    *string   `json:"notes"`
}

type sessionService struct {
	sessionRepo repositories.SessionRepository
	matchRepo   repositories.MatchRepository
}

func NewSessionService(
	sessionRepo repositories.SessionRepository,
	matchRepo repositories.MatchRepository,
) SessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		matchRepo:   matchRepo,
	}
}

func (s *sessionService) CreateSession(ctx context.Context, input CreateSessionInput) (*models.Session, error) {
	if input.Date.IsZero() {
		return nil, ErrMatchDateRequired
	}

	session := &models.Session{
		Date:  input.Date,
		Notes: input.Notes,
	}
	if input.Location != nil {
		location := strings.TrimSpace(*input.Location)
		if location != "" {
			session.Location = &location
		}
	}

	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// GetSessionByID returns the game night with its matches attached.
func (s *sessionService) GetSessionByID(ctx context.Context, id int) (*models.Session, error) {
	session, err := s.sessionRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session %d: %w", id, err)
	}

	matches, err := s.matchRepo.ListBySession(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load matches for session %d: %w", id, err)
	}
	session.Matches = matches
	return session, nil
}

func (s *sessionService) ListSessions(ctx context.Context, limit int) ([]models.Session, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	sessions, err := s.sessionRepo.GetAll(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}
