package subscription

import (
	"context"
	"time"

	"allyoucangym/internal/apperr"
	"allyoucangym/internal/logger"
	"allyoucangym/internal/metrics"
)

var (
	ErrPackageNotFound      = apperr.NotFound("Subscription package not found")
	ErrSubscriptionNotFound = apperr.NotFound("Subscription not found")
	ErrInvalidStartDate     = apperr.Validation("Invalid startDate")
)

type Service interface {
	ListPackages(ctx context.Context) ([]Package, error)
	GetPackage(ctx context.Context, key PackageKey) (*Package, error)
	// Assign creates an active subscription to the package with the given
	// storage id. Earlier active subscriptions are left active.
	Assign(ctx context.Context, userID string, packageID PackageID, start time.Time) (*Subscription, error)
	// Subscribe resolves the business key and assigns that package.
	Subscribe(ctx context.Context, userID string, key PackageKey, start time.Time) (*Subscription, error)
	ListForUser(ctx context.Context, userID string) ([]Subscription, error)
	Update(ctx context.Context, userID, subscriptionID string, req UpdateRequest) (*Subscription, error)
	Cancel(ctx context.Context, userID, subscriptionID string) (*Subscription, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) ListPackages(ctx context.Context) ([]Package, error) {
	return s.repo.ListPackages(ctx)
}

func (s *service) GetPackage(ctx context.Context, key PackageKey) (*Package, error) {
	return s.repo.GetPackageByKey(ctx, key)
}

func (s *service) Assign(ctx context.Context, userID string, packageID PackageID, start time.Time) (*Subscription, error) {
	pkg, err := s.repo.GetPackageByID(ctx, packageID)
	if err != nil {
		return nil, err
	}
	return s.assign(ctx, userID, pkg, start)
}

func (s *service) Subscribe(ctx context.Context, userID string, key PackageKey, start time.Time) (*Subscription, error) {
	pkg, err := s.repo.GetPackageByKey(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.assign(ctx, userID, pkg, start)
}

func (s *service) assign(ctx context.Context, userID string, pkg *Package, start time.Time) (*Subscription, error) {
	sub, err := s.repo.Create(ctx, userID, pkg, start, EndDateFor(start, pkg.DurationDays))
	if err != nil {
		return nil, err
	}
	metrics.RecordSubscription(string(pkg.Key))
	logger.Info("subscription assigned",
		"userId", userID,
		"subscriptionId", sub.ID,
		"package", pkg.Key,
		"endDate", sub.EndDate,
	)
	return sub, nil
}

func (s *service) ListForUser(ctx context.Context, userID string) ([]Subscription, error) {
	return s.repo.ListForUser(ctx, userID)
}

func (s *service) Update(ctx context.Context, userID, subscriptionID string, req UpdateRequest) (*Subscription, error) {
	return s.repo.Update(ctx, userID, subscriptionID, req)
}

func (s *service) Cancel(ctx context.Context, userID, subscriptionID string) (*Subscription, error) {
	sub, err := s.repo.Deactivate(ctx, userID, subscriptionID)
	if err != nil {
		return nil, err
	}
	metrics.RecordSubscriptionCancellation()
	logger.Info("subscription cancelled", "userId", userID, "subscriptionId", subscriptionID)
	return sub, nil
}
