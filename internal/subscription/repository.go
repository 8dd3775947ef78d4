package subscription

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"allyoucangym/internal/db"
	"allyoucangym/internal/user"

	"github.com/jmoiron/sqlx"
)

const (
	packageColumns      = `id, key, name, description, price_cents, duration_days, session_limit, gym_limit, created_at`
	subscriptionColumns = `id, user_id, package_id, start_date, end_date, is_active, created_at, updated_at`
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ListPackages(ctx context.Context) ([]Package, error) {
	packages := []Package{}
	err := r.db.SelectContext(ctx, &packages, `SELECT `+packageColumns+` FROM subscription_packages ORDER BY price_cents`)
	return packages, err
}

func (r *repository) GetPackageByKey(ctx context.Context, key PackageKey) (*Package, error) {
	return r.getPackage(ctx, `SELECT `+packageColumns+` FROM subscription_packages WHERE key = $1`, key)
}

func (r *repository) GetPackageByID(ctx context.Context, id PackageID) (*Package, error) {
	return r.getPackage(ctx, `SELECT `+packageColumns+` FROM subscription_packages WHERE id = $1`, id)
}

func (r *repository) getPackage(ctx context.Context, query string, arg interface{}) (*Package, error) {
	var p Package
	err := r.db.GetContext(ctx, &p, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPackageNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, userID string, pkg *Package, start, end time.Time) (*Subscription, error) {
	var sub Subscription
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE users SET is_subscribed = TRUE, package_id = $1, updated_at = NOW() WHERE id = $2`,
			pkg.Key, userID,
		)
		if err != nil {
			return fmt.Errorf("mark user subscribed: %w", err)
		}
		ok, err := db.RowsAffected(res)
		if err != nil {
			return err
		}
		if !ok {
			return user.ErrUserNotFound
		}

		return tx.QueryRowxContext(ctx,
			`INSERT INTO subscriptions (user_id, package_id, start_date, end_date, is_active)
			 VALUES ($1, $2, $3, $4, TRUE)
			 RETURNING `+subscriptionColumns,
			userID, pkg.ID, start, end,
		).StructScan(&sub)
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *repository) ListForUser(ctx context.Context, userID string) ([]Subscription, error) {
	subs := []Subscription{}
	err := r.db.SelectContext(ctx, &subs,
		`SELECT `+subscriptionColumns+` FROM subscriptions WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	return subs, err
}

func (r *repository) Update(ctx context.Context, userID, subscriptionID string, req UpdateRequest) (*Subscription, error) {
	var sub Subscription
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx,
			`UPDATE subscriptions
			 SET is_active = COALESCE($3, is_active),
			     end_date = COALESCE($4, end_date),
			     updated_at = NOW()
			 WHERE id = $1 AND user_id = $2
			 RETURNING `+subscriptionColumns,
			subscriptionID, userID, req.IsActive, req.EndDate,
		).StructScan(&sub)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSubscriptionNotFound
		}
		if err != nil {
			return err
		}
		if sub.IsActive {
			return nil
		}
		return clearIfNoneActive(ctx, tx, userID)
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *repository) Deactivate(ctx context.Context, userID, subscriptionID string) (*Subscription, error) {
	var sub Subscription
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx,
			`UPDATE subscriptions SET is_active = FALSE, updated_at = NOW()
			 WHERE id = $1 AND user_id = $2
			 RETURNING `+subscriptionColumns,
			subscriptionID, userID,
		).StructScan(&sub)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSubscriptionNotFound
		}
		if err != nil {
			return err
		}
		return clearIfNoneActive(ctx, tx, userID)
	})
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func clearIfNoneActive(ctx context.Context, tx *sqlx.Tx, userID string) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE users SET is_subscribed = FALSE, package_id = NULL, updated_at = NOW()
		 WHERE id = $1
		   AND NOT EXISTS (SELECT 1 FROM subscriptions WHERE user_id = $1 AND is_active)`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("clear subscription flags: %w", err)
	}
	return nil
}
