package gym

import (
	"context"
	"database/sql"
	"errors"

	"allyoucangym/internal/db"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const gymColumns = `id, name, location, latitude, longitude, rating, keywords, sessions, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, req CreateGymRequest, adminID string) (*Gym, error) {
	keywords := pq.StringArray(req.Keywords)
	if keywords == nil {
		keywords = pq.StringArray{}
	}

	var g Gym
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := tx.QueryRowxContext(ctx,
			`INSERT INTO gyms (name, location, latitude, longitude, rating, keywords)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 RETURNING `+gymColumns,
			req.Name, req.Location, req.Latitude, req.Longitude, req.Rating, keywords,
		).StructScan(&g)
		if err != nil {
			return err
		}

		if adminID == "" {
			return nil
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE gym_admins
			 SET gyms = array_append(gyms, $1::uuid), updated_at = NOW()
			 WHERE id = $2 AND NOT ($1::uuid = ANY(gyms))`,
			g.ID, adminID,
		)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Gym, error) {
	var g Gym
	err := r.db.GetContext(ctx, &g, `SELECT `+gymColumns+` FROM gyms WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGymNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repository) List(ctx context.Context) ([]Gym, error) {
	gyms := []Gym{}
	err := r.db.SelectContext(ctx, &gyms, `SELECT `+gymColumns+` FROM gyms ORDER BY name`)
	return gyms, err
}

func (r *repository) Update(ctx context.Context, id string, req UpdateGymRequest) (*Gym, error) {
	var keywords interface{}
	if req.Keywords != nil {
		keywords = pq.StringArray(*req.Keywords)
	}

	var g Gym
	err := r.db.GetContext(ctx, &g,
		`UPDATE gyms
		 SET name = COALESCE($2, name),
		     location = COALESCE($3, location),
		     latitude = COALESCE($4, latitude),
		     longitude = COALESCE($5, longitude),
		     rating = COALESCE($6, rating),
		     keywords = COALESCE($7::text[], keywords),
		     updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+gymColumns,
		id, req.Name, req.Location, req.Latitude, req.Longitude, req.Rating, keywords,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGymNotFound
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}

// Delete removes the gym together with its sessions, and drops every
// reference to them from users' bookings and admins' gym lists.
func (r *repository) Delete(ctx context.Context, id string) error {
	return db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE users u
			 SET booked_sessions = ARRAY(
			         SELECT b FROM unnest(u.booked_sessions) AS b
			         WHERE b NOT IN (SELECT s.id FROM sessions s WHERE s.gym_id = $1)),
			     updated_at = NOW()
			 WHERE u.booked_sessions && ARRAY(SELECT s.id FROM sessions s WHERE s.gym_id = $1)`,
			id,
		); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE gym_admins
			 SET gyms = array_remove(gyms, $1::uuid), updated_at = NOW()
			 WHERE $1::uuid = ANY(gyms)`,
			id,
		); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM gyms WHERE id = $1`, id)
		if err != nil {
			return err
		}
		ok, err := db.RowsAffected(res)
		if err != nil {
			return err
		}
		if !ok {
			return ErrGymNotFound
		}
		return nil
	})
}

func (r *repository) ListBySessionType(ctx context.Context, sessionType string) ([]Gym, error) {
	gyms := []Gym{}
	err := r.db.SelectContext(ctx, &gyms,
		`SELECT `+gymColumns+` FROM gyms g
		 WHERE EXISTS (
		     SELECT 1 FROM sessions s
		     WHERE s.gym_id = g.id AND s.type ILIKE '%' || $1 || '%')
		 ORDER BY g.name`,
		sessionType,
	)
	return gyms, err
}

// Search matches any term against the gym name or one of its keywords.
func (r *repository) Search(ctx context.Context, terms []string) ([]Gym, error) {
	gyms := []Gym{}
	err := r.db.SelectContext(ctx, &gyms,
		`SELECT `+gymColumns+` FROM gyms g
		 WHERE EXISTS (
		     SELECT 1 FROM unnest($1::text[]) AS t(term)
		     WHERE g.name ILIKE '%' || t.term || '%'
		        OR EXISTS (SELECT 1 FROM unnest(g.keywords) AS k WHERE k ILIKE '%' || t.term || '%'))
		 ORDER BY g.name`,
		pq.StringArray(terms),
	)
	return gyms, err
}
