package gym

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var gymCols = []string{"id", "name", "location", "latitude", "longitude", "rating", "keywords", "sessions", "created_at", "updated_at"}

func setupGymMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func TestCreateGymLinksAdmin(t *testing.T) {
	repo, mock := setupGymMock(t)
	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO gyms (name, location, latitude, longitude, rating, keywords)")).
		WithArgs("Iron", "Main St", 52.5, 13.4, 4.5, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(gymCols).AddRow("g1", "Iron", "Main St", 52.5, 13.4, 4.5, "{boxing}", "{}", now, now))
	mock.ExpectExec(regexp.QuoteMeta("SET gyms = array_append(gyms, $1::uuid)")).
		WithArgs("g1", "admin-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	g, err := repo.Create(context.Background(), CreateGymRequest{
		Name: "Iron", Location: "Main St", Latitude: 52.5, Longitude: 13.4, Rating: 4.5, Keywords: []string{"boxing"},
	}, "admin-1")

	require.NoError(t, err)
	assert.Equal(t, "g1", g.ID)
	assert.Equal(t, []string{"boxing"}, []string(g.Keywords))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetGymNotFound(t *testing.T) {
	repo, mock := setupGymMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM gyms WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrGymNotFound)
}

func TestDeleteGymCleansReferences(t *testing.T) {
	repo, mock := setupGymMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users u SET booked_sessions = ARRAY(")).
		WithArgs("g1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(regexp.QuoteMeta("SET gyms = array_remove(gyms, $1::uuid)")).
		WithArgs("g1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM gyms WHERE id = $1")).
		WithArgs("g1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), "g1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSearchGyms(t *testing.T) {
	repo, mock := setupGymMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("FROM unnest($1::text[]) AS t(term)")).
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(gymCols).AddRow("g1", "Iron", "Main St", 0.0, 0.0, 4.0, "{boxing,sauna}", "{}", now, now))

	gyms, err := repo.Search(context.Background(), []string{"sauna"})
	require.NoError(t, err)
	require.Len(t, gyms, 1)
	assert.Contains(t, gyms[0].Keywords, "sauna")
}

func TestListBySessionType(t *testing.T) {
	repo, mock := setupGymMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("s.type ILIKE '%' || $1 || '%'")).
		WithArgs("yoga").
		WillReturnRows(sqlmock.NewRows(gymCols))

	gyms, err := repo.ListBySessionType(context.Background(), "yoga")
	require.NoError(t, err)
	assert.Empty(t, gyms)
}
