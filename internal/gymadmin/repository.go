package gymadmin

import (
	"context"
	"database/sql"
	"errors"

	"allyoucangym/internal/db"
	"allyoucangym/internal/gym"

	"github.com/jmoiron/sqlx"
)

const adminColumns = `id, username, email, password_hash, gyms, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, username, email, passwordHash string) (*GymAdmin, error) {
	var a GymAdmin
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO gym_admins (username, email, password_hash)
		 VALUES ($1, $2, $3)
		 RETURNING `+adminColumns,
		username, email, passwordHash,
	).StructScan(&a)
	if db.IsUniqueViolation(err) {
		return nil, ErrAdminExists
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*GymAdmin, error) {
	return r.findOne(ctx, `SELECT `+adminColumns+` FROM gym_admins WHERE id = $1`, id)
}

func (r *repository) FindByIdentifier(ctx context.Context, identifier string) (*GymAdmin, error) {
	return r.findOne(ctx,
		`SELECT `+adminColumns+` FROM gym_admins WHERE email = $1 OR username = $1 LIMIT 1`,
		identifier,
	)
}

func (r *repository) findOne(ctx context.Context, query string, arg string) (*GymAdmin, error) {
	var a GymAdmin
	err := r.db.GetContext(ctx, &a, query, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListGyms(ctx context.Context, adminID string) ([]gym.Gym, error) {
	gyms := []gym.Gym{}
	err := r.db.SelectContext(ctx, &gyms,
		`SELECT g.id, g.name, g.location, g.latitude, g.longitude, g.rating, g.keywords, g.sessions, g.created_at, g.updated_at
		 FROM gym_admins a
		 JOIN gyms g ON g.id = ANY(a.gyms)
		 WHERE a.id = $1
		 ORDER BY g.name`,
		adminID,
	)
	return gyms, err
}

// AddGym links the gym to the admin. Linking an already managed gym is a no-op.
func (r *repository) AddGym(ctx context.Context, adminID, gymID string) (*GymAdmin, error) {
	var a GymAdmin
	err := db.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		ok, err := db.Exists(ctx, tx, `SELECT EXISTS(SELECT 1 FROM gyms WHERE id = $1)`, gymID)
		if err != nil {
			return err
		}
		if !ok {
			return gym.ErrGymNotFound
		}

		err = tx.QueryRowxContext(ctx,
			`UPDATE gym_admins
			 SET gyms = CASE WHEN $2::uuid = ANY(gyms) THEN gyms ELSE array_append(gyms, $2::uuid) END,
			     updated_at = NOW()
			 WHERE id = $1
			 RETURNING `+adminColumns,
			adminID, gymID,
		).StructScan(&a)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAdminNotFound
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Exists(ctx context.Context, adminID string) (bool, error) {
	return db.Exists(ctx, r.db, `SELECT EXISTS(SELECT 1 FROM gym_admins WHERE id = $1)`, adminID)
}

func (r *repository) OwnsGym(ctx context.Context, adminID, gymID string) (bool, error) {
	return db.Exists(ctx, r.db,
		`SELECT EXISTS(SELECT 1 FROM gym_admins WHERE id = $1 AND $2::uuid = ANY(gyms))`,
		adminID, gymID,
	)
}

func (r *repository) OwnsSession(ctx context.Context, adminID, sessionID string) (bool, error) {
	return db.Exists(ctx, r.db,
		`SELECT EXISTS(
			SELECT 1 FROM gym_admins a
			JOIN sessions s ON s.gym_id = ANY(a.gyms)
			WHERE a.id = $1 AND s.id = $2
		)`,
		adminID, sessionID,
	)
}

func (r *repository) OwnsAnnouncement(ctx context.Context, adminID, announcementID string) (bool, error) {
	return db.Exists(ctx, r.db,
		`SELECT EXISTS(
			SELECT 1 FROM gym_admins a
			JOIN sessions s ON s.gym_id = ANY(a.gyms)
			JOIN announcements an ON an.session_id = s.id
			WHERE a.id = $1 AND an.id = $2
		)`,
		adminID, announcementID,
	)
}
