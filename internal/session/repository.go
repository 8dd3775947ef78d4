package session

import (
	"context"
	"database/sql"
	"errors"

	"allyoucangym/internal/db"
	"allyoucangym/internal/gym"

	"github.com/jmoiron/sqlx"
)

const sessionColumns = `id, gym_id, name, description, type, trainer_name, date_time, capacity, participants, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func gymExists(ctx context.Context, q db.Queryer, gymID string) (bool, error) {
	return db.Exists(ctx, q, `SELECT EXISTS(SELECT 1 FROM gyms WHERE id = $1)`, gymID)
}

func (r *repository) Create(ctx context.Context, req CreateSessionRequest) (*Session, error) {
	var s Session
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		ok, err := gymExists(ctx, tx, req.GymID)
		if err != nil {
			return err
		}
		if !ok {
			return gym.ErrGymNotFound
		}

		err = tx.QueryRowxContext(ctx,
			`INSERT INTO sessions (gym_id, name, description, type, trainer_name, date_time, capacity)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING `+sessionColumns,
			req.GymID, req.Name, req.Description, req.Type, req.TrainerName, req.DateTime, req.Capacity,
		).StructScan(&s)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE gyms SET sessions = array_append(sessions, $1::uuid), updated_at = NOW() WHERE id = $2`,
			s.ID, s.GymID,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Session, error) {
	var s Session
	err := r.db.GetContext(ctx, &s, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *repository) List(ctx context.Context) ([]Session, error) {
	sessions := []Session{}
	err := r.db.SelectContext(ctx, &sessions, `SELECT `+sessionColumns+` FROM sessions ORDER BY date_time`)
	return sessions, err
}

func (r *repository) Search(ctx context.Context, keyword string) ([]Session, error) {
	sessions := []Session{}
	err := r.db.SelectContext(ctx, &sessions,
		`SELECT `+sessionColumns+` FROM sessions
		 WHERE name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%'
		 ORDER BY date_time`,
		keyword,
	)
	return sessions, err
}

// Update applies the changes under a row lock. Moving a session to another
// gym moves its reference between the two gyms' session lists.
func (r *repository) Update(ctx context.Context, id string, req UpdateSessionRequest) (*Session, error) {
	var updated Session
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var current Session
		err := tx.GetContext(ctx, &current, `SELECT `+sessionColumns+` FROM sessions WHERE id = $1 FOR UPDATE`, id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSessionNotFound
		}
		if err != nil {
			return err
		}

		if req.Capacity != nil && *req.Capacity < len(current.Participants) {
			return ErrCapacityBelowParticipants
		}

		moving := req.GymID != nil && *req.GymID != current.GymID
		if moving {
			ok, err := gymExists(ctx, tx, *req.GymID)
			if err != nil {
				return err
			}
			if !ok {
				return gym.ErrGymNotFound
			}
		}

		err = tx.QueryRowxContext(ctx,
			`UPDATE sessions
			 SET gym_id = COALESCE($2, gym_id),
			     name = COALESCE($3, name),
			     description = COALESCE($4, description),
			     type = COALESCE($5, type),
			     trainer_name = COALESCE($6, trainer_name),
			     date_time = COALESCE($7, date_time),
			     capacity = COALESCE($8, capacity),
			     updated_at = NOW()
			 WHERE id = $1
			 RETURNING `+sessionColumns,
			id, req.GymID, req.Name, req.Description, req.Type, req.TrainerName, req.DateTime, req.Capacity,
		).StructScan(&updated)
		if err != nil {
			return err
		}

		if !moving {
			return nil
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE gyms SET sessions = array_remove(sessions, $1::uuid), updated_at = NOW() WHERE id = $2`,
			id, current.GymID,
		); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE gyms SET sessions = array_append(sessions, $1::uuid), updated_at = NOW() WHERE id = $2`,
			id, updated.GymID,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// Delete removes the session and every reference to it held by users and its gym.
func (r *repository) Delete(ctx context.Context, id string) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE users
			 SET booked_sessions = array_remove(booked_sessions, $1::uuid), updated_at = NOW()
			 WHERE $1::uuid = ANY(booked_sessions)`,
			id,
		); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE gyms
			 SET sessions = array_remove(sessions, $1::uuid), updated_at = NOW()
			 WHERE $1::uuid = ANY(sessions)`,
			id,
		); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id)
		if err != nil {
			return err
		}
		ok, err := db.RowsAffected(res)
		if err != nil {
			return err
		}
		if !ok {
			return ErrSessionNotFound
		}
		return nil
	})
}
