package user

import "context"

type Repository interface {
	Create(ctx context.Context, username, email, passwordHash string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UsernameExists(ctx context.Context, username string) (bool, error)
	Update(ctx context.Context, id string, username, email, passwordHash *string) (*User, error)
	Delete(ctx context.Context, id string) error
	SearchByUsername(ctx context.Context, query string) ([]PublicProfile, error)
}
