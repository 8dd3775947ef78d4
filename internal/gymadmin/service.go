package gymadmin

import (
	"context"
	"errors"
	"strings"

	"allyoucangym/internal/apperr"
	"allyoucangym/internal/auth"
	"allyoucangym/internal/logger"
)

var (
	ErrAdminNotFound      = apperr.NotFound("Gym admin not found")
	ErrAdminExists        = apperr.Conflict("Gym admin with this email or username already exists")
	ErrInvalidCredentials = apperr.Unauthorized("Invalid email or password")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*GymAdmin, error)
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Get(ctx context.Context, adminID string) (*Profile, error)
	AddGym(ctx context.Context, adminID, gymID string) (*GymAdmin, error)

	IsAdmin(ctx context.Context, adminID string) (bool, error)
	OwnsGym(ctx context.Context, adminID, gymID string) (bool, error)
	OwnsSession(ctx context.Context, adminID, sessionID string) (bool, error)
	OwnsAnnouncement(ctx context.Context, adminID, announcementID string) (bool, error)
}

type service struct {
	repo   Repository
	tokens *auth.TokenIssuer
}

func NewService(repo Repository, tokens *auth.TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

// normalizeIdentifier lower-cases emails; usernames are case sensitive.
func normalizeIdentifier(identifier string) string {
	identifier = strings.TrimSpace(identifier)
	if strings.Contains(identifier, "@") {
		return strings.ToLower(identifier)
	}
	return identifier
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*GymAdmin, error) {
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.Create(ctx, strings.TrimSpace(req.Username), normalizeIdentifier(req.Email), hash)
	if err != nil {
		return nil, err
	}
	logger.Info("gym admin registered", "adminId", a.ID)
	return a, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	a, err := s.repo.FindByIdentifier(ctx, normalizeIdentifier(req.Email))
	if errors.Is(err, ErrAdminNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(a.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(a.ID, auth.RoleGymAdmin)
	if err != nil {
		return nil, err
	}

	gyms := []string(a.Gyms)
	if gyms == nil {
		gyms = []string{}
	}
	return &LoginResponse{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
		Gyms:     gyms,
		Token:    token,
	}, nil
}

func (s *service) Get(ctx context.Context, adminID string) (*Profile, error) {
	a, err := s.repo.FindByID(ctx, adminID)
	if err != nil {
		return nil, err
	}
	gyms, err := s.repo.ListGyms(ctx, adminID)
	if err != nil {
		return nil, err
	}
	return &Profile{ID: a.ID, Username: a.Username, Email: a.Email, Gyms: gyms}, nil
}

func (s *service) AddGym(ctx context.Context, adminID, gymID string) (*GymAdmin, error) {
	a, err := s.repo.AddGym(ctx, adminID, gymID)
	if err != nil {
		return nil, err
	}
	logger.Info("gym linked to admin", "adminId", adminID, "gymId", gymID)
	return a, nil
}

func (s *service) IsAdmin(ctx context.Context, adminID string) (bool, error) {
	return s.repo.Exists(ctx, adminID)
}

func (s *service) OwnsGym(ctx context.Context, adminID, gymID string) (bool, error) {
	return s.repo.OwnsGym(ctx, adminID, gymID)
}

func (s *service) OwnsSession(ctx context.Context, adminID, sessionID string) (bool, error) {
	return s.repo.OwnsSession(ctx, adminID, sessionID)
}

func (s *service) OwnsAnnouncement(ctx context.Context, adminID, announcementID string) (bool, error) {
	return s.repo.OwnsAnnouncement(ctx, adminID, announcementID)
}
