package subscription

import (
	"context"
	"time"
)

type Repository interface {
	ListPackages(ctx context.Context) ([]Package, error)
	GetPackageByKey(ctx context.Context, key PackageKey) (*Package, error)
	GetPackageByID(ctx context.Context, id PackageID) (*Package, error)

	// Create stores an active subscription and marks the user as subscribed
	// to pkg in the same transaction.
	Create(ctx context.Context, userID string, pkg *Package, start, end time.Time) (*Subscription, error)
	ListForUser(ctx context.Context, userID string) ([]Subscription, error)
	Update(ctx context.Context, userID, subscriptionID string, req UpdateRequest) (*Subscription, error)
	// Deactivate clears the user's subscribed flag and package when no other
	// active subscription remains.
	Deactivate(ctx context.Context, userID, subscriptionID string) (*Subscription, error)
}
