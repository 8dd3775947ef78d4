package announcement

import "context"

type Repository interface {
	Create(ctx context.Context, sessionID, content string) (*Announcement, error)
	GetByID(ctx context.Context, id string) (*Announcement, error)
	// List returns every announcement, or only those of sessionID when it is set.
	List(ctx context.Context, sessionID string) ([]Announcement, error)
	Update(ctx context.Context, id, content string) (*Announcement, error)
	Delete(ctx context.Context, id string) error
}
