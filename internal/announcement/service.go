package announcement

import (
	"context"

	"allyoucangym/internal/apperr"
	"allyoucangym/internal/logger"
)

var ErrAnnouncementNotFound = apperr.NotFound("Announcement not found")

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Announcement, error)
	List(ctx context.Context, sessionID string) ([]Announcement, error)
	Get(ctx context.Context, id string) (*Announcement, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Announcement, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Announcement, error) {
	a, err := s.repo.Create(ctx, req.SessionID, req.Content)
	if err != nil {
		return nil, err
	}
	logger.Info("announcement posted", "announcementId", a.ID, "sessionId", a.SessionID)
	return a, nil
}

func (s *service) List(ctx context.Context, sessionID string) ([]Announcement, error) {
	return s.repo.List(ctx, sessionID)
}

func (s *service) Get(ctx context.Context, id string) (*Announcement, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Announcement, error) {
	return s.repo.Update(ctx, id, req.Content)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("announcement deleted", "announcementId", id)
	return nil
}
