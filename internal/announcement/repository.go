package announcement

import (
	"context"
	"database/sql"
	"errors"

	"allyoucangym/internal/db"
	"allyoucangym/internal/session"

	"github.com/jmoiron/sqlx"
)

const announcementColumns = `id, session_id, content, created_at, updated_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, sessionID, content string) (*Announcement, error) {
	var a Announcement
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO announcements (session_id, content)
		 SELECT $1, $2
		 WHERE EXISTS (SELECT 1 FROM sessions WHERE id = $1)
		 RETURNING `+announcementColumns,
		sessionID, content,
	).StructScan(&a)
	if errors.Is(err, sql.ErrNoRows) || db.IsForeignKeyViolation(err) {
		return nil, session.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Announcement, error) {
	var a Announcement
	err := r.db.GetContext(ctx, &a, `SELECT `+announcementColumns+` FROM announcements WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAnnouncementNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) List(ctx context.Context, sessionID string) ([]Announcement, error) {
	out := []Announcement{}
	var err error
	if sessionID == "" {
		err = r.db.SelectContext(ctx, &out,
			`SELECT `+announcementColumns+` FROM announcements ORDER BY created_at DESC`)
	} else {
		err = r.db.SelectContext(ctx, &out,
			`SELECT `+announcementColumns+` FROM announcements WHERE session_id = $1 ORDER BY created_at DESC`,
			sessionID)
	}
	return out, err
}

func (r *repository) Update(ctx context.Context, id, content string) (*Announcement, error) {
	var a Announcement
	err := r.db.QueryRowxContext(ctx,
		`UPDATE announcements SET content = $1, updated_at = NOW()
		 WHERE id = $2
		 RETURNING `+announcementColumns,
		content, id,
	).StructScan(&a)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAnnouncementNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return err
	}
	ok, err := db.RowsAffected(res)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAnnouncementNotFound
	}
	return nil
}
