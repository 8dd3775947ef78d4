package gym

import (
	"context"
	"strings"

	"allyoucangym/internal/apperr"
	"allyoucangym/internal/logger"
)

var ErrGymNotFound = apperr.NotFound("Gym not found")

type Service interface {
	List(ctx context.Context) ([]Gym, error)
	Get(ctx context.Context, id string) (*Gym, error)
	Create(ctx context.Context, adminID string, req CreateGymRequest) (*Gym, error)
	Update(ctx context.Context, id string, req UpdateGymRequest) (*Gym, error)
	Delete(ctx context.Context, id string) error
	Filter(ctx context.Context, params FilterParams) ([]Gym, error)
	// Search accepts a single keyword or a comma separated list of keywords.
	// An empty query lists every gym.
	Search(ctx context.Context, query string) ([]Gym, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) List(ctx context.Context) ([]Gym, error) {
	return s.repo.List(ctx)
}

func (s *service) Get(ctx context.Context, id string) (*Gym, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) Create(ctx context.Context, adminID string, req CreateGymRequest) (*Gym, error) {
	g, err := s.repo.Create(ctx, req, adminID)
	if err != nil {
		return nil, err
	}
	logger.Info("gym created", "gymId", g.ID, "adminId", adminID)
	return g, nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateGymRequest) (*Gym, error) {
	return s.repo.Update(ctx, id, req)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info("gym deleted", "gymId", id)
	return nil
}

func (s *service) Filter(ctx context.Context, params FilterParams) ([]Gym, error) {
	var (
		gyms []Gym
		err  error
	)
	if sessionType := strings.TrimSpace(params.SessionType); sessionType != "" {
		gyms, err = s.repo.ListBySessionType(ctx, sessionType)
	} else {
		gyms, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	if params.Latitude == nil || params.Longitude == nil || params.DistanceKm == nil {
		return gyms, nil
	}

	nearby := make([]Gym, 0, len(gyms))
	for _, g := range gyms {
		if haversineKm(*params.Latitude, *params.Longitude, g.Latitude, g.Longitude) <= *params.DistanceKm {
			nearby = append(nearby, g)
		}
	}
	return nearby, nil
}

func (s *service) Search(ctx context.Context, query string) ([]Gym, error) {
	var terms []string
	for _, part := range strings.Split(query, ",") {
		if t := strings.TrimSpace(part); t != "" {
			terms = append(terms, t)
		}
	}
	if len(terms) == 0 {
		return s.repo.List(ctx)
	}
	return s.repo.Search(ctx, terms)
}
