package gymadmin

import (
	"context"

	"allyoucangym/internal/gym"
)

type Repository interface {
	Create(ctx context.Context, username, email, passwordHash string) (*GymAdmin, error)
	FindByID(ctx context.Context, id string) (*GymAdmin, error)
	// FindByIdentifier matches either the email or the username.
	FindByIdentifier(ctx context.Context, identifier string) (*GymAdmin, error)
	ListGyms(ctx context.Context, adminID string) ([]gym.Gym, error)
	AddGym(ctx context.Context, adminID, gymID string) (*GymAdmin, error)

	Exists(ctx context.Context, adminID string) (bool, error)
	OwnsGym(ctx context.Context, adminID, gymID string) (bool, error)
	OwnsSession(ctx context.Context, adminID, sessionID string) (bool, error)
	OwnsAnnouncement(ctx context.Context, adminID, announcementID string) (bool, error)
}
