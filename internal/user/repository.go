package user

import (
	"context"
	"database/sql"
	"errors"

	"allyoucangym/internal/db"

	"github.com/jmoiron/sqlx"
)

const userColumns = `id, username, email, password_hash, role, is_subscribed, package_id, booked_sessions, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, username, email, passwordHash string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u,
		`INSERT INTO users (username, email, password_hash, role)
		 VALUES ($1, $2, $3, 'user')
		 RETURNING `+userColumns,
		username, email, passwordHash,
	)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *repository) UsernameExists(ctx context.Context, username string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`, username)
}

func (r *repository) Update(ctx context.Context, id string, username, email, passwordHash *string) (*User, error) {
	var u User
	err := r.db.GetContext(ctx, &u,
		`UPDATE users
		 SET username = COALESCE($2, username),
		     email = COALESCE($3, email),
		     password_hash = COALESCE($4, password_hash),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, username, email, passwordHash,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrEmailExists
		}
		return nil, err
	}
	return &u, nil
}

// Delete removes the user and pulls it from every session it was booked into.
func (r *repository) Delete(ctx context.Context, id string) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE sessions
			 SET participants = array_remove(participants, $1::uuid), updated_at = NOW()
			 WHERE $1::uuid = ANY(participants)`,
			id,
		); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		ok, err := db.RowsAffected(res)
		if err != nil {
			return err
		}
		if !ok {
			return ErrUserNotFound
		}
		return nil
	})
}

func (r *repository) SearchByUsername(ctx context.Context, query string) ([]PublicProfile, error) {
	profiles := []PublicProfile{}
	err := r.db.SelectContext(ctx, &profiles,
		`SELECT id, username FROM users WHERE username ILIKE '%' || $1 || '%' ORDER BY username LIMIT 50`,
		query,
	)
	return profiles, err
}
