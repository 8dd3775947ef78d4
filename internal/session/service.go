package session

import (
	"context"
	"strings"

	"allyoucangym/internal/apperr"
	"allyoucangym/internal/logger"
)

var (
	ErrSessionNotFound           = apperr.NotFound("Session not found")
	ErrCapacityBelowParticipants = apperr.Conflict("Capacity cannot be lower than the number of booked participants")
)

type Service interface {
	Create(ctx context.Context, req CreateSessionRequest) (*Session, error)
	List(ctx context.Context) ([]Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Update(ctx context.Context, id string, req UpdateSessionRequest) (*Session, error)
	Delete(ctx context.Context, id string) error
	// Search matches name and description. A blank keyword matches nothing.
	Search(ctx context.Context, keyword string) ([]Session, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	sess, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	logger.Info("session created", "sessionId", sess.ID, "gymId", sess.GymID, "capacity", sess.Capacity)
	return sess, nil
}

func (s *service) List(ctx context.Context) ([]Session, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*Session, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id string, req UpdateSessionRequest) (*Session, error) {
	return s.repo.Update(ctx, id, req)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("session deleted", "sessionId", id)
	return nil
}

func (s *service) Search(ctx context.Context, keyword string) ([]Session, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []Session{}, nil
	}
	return s.repo.Search(ctx, keyword)
}
