package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"allyoucangym/internal/db"
	"allyoucangym/internal/session"
	"allyoucangym/internal/user"

	"github.com/jmoiron/sqlx"
)

const sessionColumns = `s.id, s.gym_id, s.name, s.description, s.type, s.trainer_name, s.date_time, s.capacity, s.participants, s.created_at, s.updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) AddParticipant(ctx context.Context, userID, sessionID string) (*session.Session, error) {
	var updated session.Session
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx,
			`UPDATE sessions s
			 SET participants = array_append(s.participants, $1::uuid), updated_at = NOW()
			 WHERE s.id = $2
			   AND cardinality(s.participants) < s.capacity
			   AND NOT ($1::uuid = ANY(s.participants))
			 RETURNING `+sessionColumns,
			userID, sessionID,
		).StructScan(&updated)
		if errors.Is(err, sql.ErrNoRows) {
			return rejectionFor(ctx, tx, userID, sessionID)
		}
		if db.IsCheckViolation(err) {
			return ErrSessionFull
		}
		if err != nil {
			return fmt.Errorf("append participant: %w", err)
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE users
			 SET booked_sessions = array_append(booked_sessions, $1::uuid), updated_at = NOW()
			 WHERE id = $2 AND NOT ($1::uuid = ANY(booked_sessions))`,
			sessionID, userID,
		)
		if err != nil {
			return fmt.Errorf("append booked session: %w", err)
		}
		ok, err := db.RowsAffected(res)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		exists, err := db.Exists(ctx, tx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID)
		if err != nil {
			return err
		}
		if !exists {
			return user.ErrUserNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// rejectionFor explains why the guarded participant update touched no row.
func rejectionFor(ctx context.Context, tx *sqlx.Tx, userID, sessionID string) error {
	var current session.Session
	err := tx.GetContext(ctx, &current, `SELECT `+sessionColumns+` FROM sessions s WHERE s.id = $1`, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return session.ErrSessionNotFound
	}
	if err != nil {
		return err
	}
	if current.IsFull() {
		return ErrSessionFull
	}
	if current.HasParticipant(userID) {
		return ErrAlreadyBooked
	}
	return ErrSessionFull
}

func (r *repository) RemoveParticipant(ctx context.Context, userID, sessionID string) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET booked_sessions = array_remove(booked_sessions, $1::uuid), updated_at = NOW() WHERE id = $2`,
			sessionID, userID,
		); err != nil {
			return fmt.Errorf("remove booked session: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE sessions SET participants = array_remove(participants, $1::uuid), updated_at = NOW() WHERE id = $2`,
			userID, sessionID,
		); err != nil {
			return fmt.Errorf("remove participant: %w", err)
		}
		return nil
	})
}

func (r *repository) ListUserSessions(ctx context.Context, userID string) ([]session.Session, error) {
	sessions := []session.Session{}
	err := r.db.SelectContext(ctx, &sessions,
		`SELECT `+sessionColumns+`
		 FROM users u
		 JOIN sessions s ON s.id = ANY(u.booked_sessions)
		 WHERE u.id = $1
		 ORDER BY s.date_time`,
		userID,
	)
	return sessions, err
}
