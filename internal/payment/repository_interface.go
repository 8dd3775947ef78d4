package payment

import "context"

type Repository interface {
	Create(ctx context.Context, p *Payment) (*Payment, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]Payment, error)
}
