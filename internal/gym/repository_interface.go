package gym

import "context"

type Repository interface {
	// Create inserts the gym and, when adminID is set, adds it to that admin's gyms.
	Create(ctx context.Context, req CreateGymRequest, adminID string) (*Gym, error)
	GetByID(ctx context.Context, id string) (*Gym, error)
	List(ctx context.Context) ([]Gym, error)
	Update(ctx context.Context, id string, req UpdateGymRequest) (*Gym, error)
	Delete(ctx context.Context, id string) error
	ListBySessionType(ctx context.Context, sessionType string) ([]Gym, error)
	Search(ctx context.Context, terms []string) ([]Gym, error)
}
