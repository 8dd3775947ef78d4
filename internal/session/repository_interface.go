package session

import "context"

type Repository interface {
	// Create inserts the session and appends it to its gym's session list.
	Create(ctx context.Context, req CreateSessionRequest) (*Session, error)
	GetByID(ctx context.Context, id string) (*Session, error)
	List(ctx context.Context) ([]Session, error)
	Search(ctx context.Context, keyword string) ([]Session, error)
	Update(ctx context.Context, id string, req UpdateSessionRequest) (*Session, error)
	Delete(ctx context.Context, id string) error
}
