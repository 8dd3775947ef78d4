package booking

import (
	"context"

	"allyoucangym/internal/session"
)

// Repository owns the paired writes between session participants and a
// user's booked sessions. Both sides change in one transaction.
type Repository interface {
	// AddParticipant books the user into the session. It returns
	// ErrSessionFull or ErrAlreadyBooked when the guarded update does not apply.
	AddParticipant(ctx context.Context, userID, sessionID string) (*session.Session, error)
	RemoveParticipant(ctx context.Context, userID, sessionID string) error
	ListUserSessions(ctx context.Context, userID string) ([]session.Session, error)
}
