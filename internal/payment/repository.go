package payment

import (
	"context"
	"fmt"

	"allyoucangym/internal/db"

	"github.com/jmoiron/sqlx"
)

const paymentColumns = `id, transaction_id, status, amount_cents, user_id, package_id, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, p *Payment) (*Payment, error) {
	var created Payment
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO payments (transaction_id, status, amount_cents, user_id, package_id)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+paymentColumns,
		p.TransactionID, p.Status, p.AmountCents, p.UserID, p.PackageID,
	).StructScan(&created)
	if db.IsUniqueViolation(err) {
		return nil, ErrDuplicateTransaction
	}
	if err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	return &created, nil
}

func (r *repository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]Payment, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	payments := []Payment{}
	err := r.db.SelectContext(ctx, &payments,
		`SELECT `+paymentColumns+`
		 FROM payments
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	return payments, err
}
