package user

import (
	"context"
	"errors"
	"strings"

	"allyoucangym/internal/apperr"
	"allyoucangym/internal/auth"
	"allyoucangym/internal/logger"
)

var (
	ErrUserNotFound       = apperr.NotFound("User not found")
	ErrEmailExists        = apperr.Conflict("User with this email already exists.")
	ErrUsernameTaken      = apperr.Conflict("Username is already taken")
	ErrInvalidCredentials = apperr.Unauthorized("Invalid email or password")
	ErrEmptySearch        = apperr.Validation("Username query is required")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	GetByID(ctx context.Context, userID string) (*User, error)
	// Profile returns the full record to its owner and a PublicProfile to anyone else.
	Profile(ctx context.Context, requesterID, userID string) (interface{}, error)
	Update(ctx context.Context, userID string, req UpdateRequest) (*User, error)
	Delete(ctx context.Context, userID string) error
	Search(ctx context.Context, username string) ([]PublicProfile, error)
}

type service struct {
	repo   Repository
	tokens *auth.TokenIssuer
}

func NewService(repo Repository, tokens *auth.TokenIssuer) Service {
	return &service{repo: repo, tokens: tokens}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)

	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailExists
	}

	taken, err := s.repo.UsernameExists(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	u, err := s.repo.Create(ctx, req.Username, email, hash)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(u.ID, auth.RoleUser)
	if err != nil {
		return nil, err
	}

	logger.Info("user registered", "userId", u.ID)
	return &AuthResponse{Token: token, User: u}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.repo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u.ID, auth.RoleUser)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: u}, nil
}

func (s *service) GetByID(ctx context.Context, userID string) (*User, error) {
	return s.repo.FindByID(ctx, userID)
}

func (s *service) Profile(ctx context.Context, requesterID, userID string) (interface{}, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if requesterID == userID {
		return u, nil
	}
	return u.Public(), nil
}

func (s *service) Update(ctx context.Context, userID string, req UpdateRequest) (*User, error) {
	var email, hash *string
	if req.Email != nil {
		e := normalizeEmail(*req.Email)
		email = &e
	}
	if req.Password != nil {
		h, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
		hash = &h
	}

	return s.repo.Update(ctx, userID, req.Username, email, hash)
}

func (s *service) Delete(ctx context.Context, userID string) error {
	if err := s.repo.Delete(ctx, userID); err != nil {
		return err
	}
	logger.Info("user deleted", "userId", userID)
	return nil
}

func (s *service) Search(ctx context.Context, username string) ([]PublicProfile, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptySearch
	}
	return s.repo.SearchByUsername(ctx, username)
}
