package payment

import (
	"context"
	"time"

	"allyoucangym/internal/apperr"
	"allyoucangym/internal/logger"
	"allyoucangym/internal/metrics"
	"allyoucangym/internal/subscription"
	"allyoucangym/internal/user"

	"github.com/google/uuid"
)

var (
	ErrInvalidAmount        = apperr.Validation("Invalid amount")
	ErrInvalidCardNumber    = apperr.Validation("cardNumber must be a 16 digit number")
	ErrInvalidCVV           = apperr.Validation("Invalid cvv")
	ErrInvalidExpiryFormat  = apperr.Validation("Invalid expiry date format")
	ErrCardExpired          = apperr.Validation("Card expiry date is in the past")
	ErrDuplicateTransaction = apperr.Conflict("Duplicate transaction")
)

const assignmentWarning = "Payment succeeded but the subscription could not be created"

type PackageFinder interface {
	GetPackageByKey(ctx context.Context, key subscription.PackageKey) (*subscription.Package, error)
}

type Assigner interface {
	Assign(ctx context.Context, userID string, packageID subscription.PackageID, start time.Time) (*subscription.Subscription, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id string) (*user.User, error)
}

// Notifier is implemented by the email service.
type Notifier interface {
	SendPaymentReceipt(ctx context.Context, to, name, packageName, transactionID string, amountCents int64) error
}

type Service interface {
	// Checkout charges the catalog price of the package and then assigns it.
	// A failed assignment never fails the payment; it adds a warning instead.
	Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error)
	History(ctx context.Context, userID string, limit, offset int) ([]Payment, error)
}

type service struct {
	repo     Repository
	packages PackageFinder
	assigner Assigner
	users    UserFinder
	notifier Notifier

	now      func() time.Time
	newTxnID func() string
}

func NewService(repo Repository, packages PackageFinder, assigner Assigner, users UserFinder, notifier Notifier) Service {
	return &service{
		repo:     repo,
		packages: packages,
		assigner: assigner,
		users:    users,
		notifier: notifier,
		now:      time.Now,
		newTxnID: func() string { return "txn_" + uuid.NewString() },
	}
}

func (s *service) Checkout(ctx context.Context, in CheckoutInput) (*CheckoutResult, error) {
	pkg, err := s.packages.GetPackageByKey(ctx, in.PackageKey)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := validateInstrument(pkg.PriceCents, in.CardNumber, in.ExpiryDate, in.CVV, now); err != nil {
		metrics.RecordPayment("rejected", 0)
		return nil, err
	}

	packageID := pkg.ID
	p, err := s.repo.Create(ctx, &Payment{
		TransactionID: s.newTxnID(),
		Status:        StatusSuccess,
		AmountCents:   pkg.PriceCents,
		UserID:        in.UserID,
		PackageID:     &packageID,
	})
	if err != nil {
		metrics.RecordPayment("error", 0)
		return nil, err
	}
	metrics.RecordPayment(string(p.Status), p.AmountCents)
	logger.Info("payment recorded",
		"userId", in.UserID,
		"transactionId", p.TransactionID,
		"package", pkg.Key,
		"amountCents", p.AmountCents,
	)

	result := &CheckoutResult{
		TransactionID: p.TransactionID,
		Status:        p.Status,
		Amount:        p.AmountCents,
	}

	sub, err := s.assigner.Assign(ctx, in.UserID, pkg.ID, now)
	if err != nil {
		logger.Warn("subscription assignment failed after payment",
			"userId", in.UserID,
			"transactionId", p.TransactionID,
			"error", err,
		)
		result.Warning = assignmentWarning
	} else {
		result.Subscription = sub
	}

	s.sendReceipt(ctx, in.UserID, pkg, p)
	return result, nil
}

func (s *service) sendReceipt(ctx context.Context, userID string, pkg *subscription.Package, p *Payment) {
	if s.notifier == nil || s.users == nil {
		return
	}
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		logger.Warn("payment receipt skipped", "userId", userID, "error", err)
		return
	}
	if err := s.notifier.SendPaymentReceipt(ctx, u.Email, u.Username, pkg.Name, p.TransactionID, p.AmountCents); err != nil {
		logger.Warn("failed to queue payment receipt", "userId", userID, "error", err)
	}
}

func (s *service) History(ctx context.Context, userID string, limit, offset int) ([]Payment, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}
