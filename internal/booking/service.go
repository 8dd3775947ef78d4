package booking

import (
	"context"
	"errors"
	"time"

	"allyoucangym/internal/apperr"
	"allyoucangym/internal/logger"
	"allyoucangym/internal/metrics"
	"allyoucangym/internal/session"
	"allyoucangym/internal/user"
)

var (
	ErrSessionFull   = apperr.Conflict("Session is full")
	ErrAlreadyBooked = apperr.Conflict("User already booked in this session")
)

type SessionFinder interface {
	GetByID(ctx context.Context, id string) (*session.Session, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
}

// Notifier is implemented by the email service.
type Notifier interface {
	SendBookingConfirmation(ctx context.Context, to, name, sessionName string, when time.Time) error
	SendCancellation(ctx context.Context, to, name, sessionName string) error
}

type Service interface {
	Book(ctx context.Context, userID, sessionID string) (*session.Session, error)
	// Unbook is idempotent: removing a booking that does not exist succeeds.
	Unbook(ctx context.Context, userID, sessionID string) error
	ListUserSessions(ctx context.Context, userID string) ([]session.Session, error)
}

type service struct {
	repo     Repository
	sessions SessionFinder
	users    UserFinder
	notifier Notifier
}

func NewService(repo Repository, sessions SessionFinder, users UserFinder, notifier Notifier) Service {
	return &service{
		repo:     repo,
		sessions: sessions,
		users:    users,
		notifier: notifier,
	}
}

func (s *service) Book(ctx context.Context, userID, sessionID string) (*session.Session, error) {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		metrics.RecordBooking(outcomeFor(err))
		return nil, err
	}

	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		metrics.RecordBooking(outcomeFor(err))
		return nil, err
	}

	if sess.IsFull() {
		metrics.RecordBooking("full")
		return nil, ErrSessionFull
	}
	if sess.HasParticipant(userID) {
		metrics.RecordBooking("duplicate")
		return nil, ErrAlreadyBooked
	}

	updated, err := s.repo.AddParticipant(ctx, userID, sessionID)
	if err != nil {
		metrics.RecordBooking(outcomeFor(err))
		return nil, err
	}
	metrics.RecordBooking("booked")
	logger.Info("session booked", "userId", userID, "sessionId", sessionID,
		"participants", len(updated.Participants), "capacity", updated.Capacity)

	if s.notifier != nil {
		if err := s.notifier.SendBookingConfirmation(ctx, u.Email, u.Username, updated.Name, updated.DateTime); err != nil {
			logger.Warn("failed to queue booking confirmation", "userId", userID, "error", err)
		}
	}

	return updated, nil
}

func (s *service) Unbook(ctx context.Context, userID, sessionID string) error {
	sess, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if err := s.repo.RemoveParticipant(ctx, userID, sessionID); err != nil {
		return err
	}
	metrics.RecordUnbooking()

	if s.notifier != nil && sess.HasParticipant(userID) {
		if err := s.notifier.SendCancellation(ctx, u.Email, u.Username, sess.Name); err != nil {
			logger.Warn("failed to queue cancellation email", "userId", userID, "error", err)
		}
	}
	return nil
}

func (s *service) ListUserSessions(ctx context.Context, userID string) ([]session.Session, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListUserSessions(ctx, userID)
}

func outcomeFor(err error) string {
	switch {
	case errors.Is(err, ErrSessionFull):
		return "full"
	case errors.Is(err, ErrAlreadyBooked):
		return "duplicate"
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, user.ErrUserNotFound):
		return "not_found"
	default:
		return "error"
	}
}
