package db

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func TestExists(t *testing.T) {
	sqlxDB, mock := setupMock(t)
	query := "SELECT EXISTS(SELECT 1 FROM sessions WHERE id = $1)"

	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs("s1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	ok, err := Exists(context.Background(), sqlxDB, query, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxCommits(t *testing.T) {
	sqlxDB, mock := setupMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE gyms SET rating = $1")).
		WithArgs(4.5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := WithTx(context.Background(), sqlxDB, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(context.Background(), "UPDATE gyms SET rating = $1", 4.5)
		return err
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	sqlxDB, mock := setupMock(t)
	boom := errors.New("boom")

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := WithTx(context.Background(), sqlxDB, func(tx *sqlx.Tx) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRowsAffected(t *testing.T) {
	ok, err := RowsAffected(sqlmock.NewResult(0, 0))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = RowsAffected(sqlmock.NewResult(0, 2))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pq.Error{Code: "23514"}))
	assert.False(t, IsUniqueViolation(errors.New("duplicate")))
	assert.True(t, IsCheckViolation(&pq.Error{Code: "23514"}))
	assert.True(t, IsForeignKeyViolation(fmt.Errorf("insert: %w", &pq.Error{Code: "23503"})))
	assert.False(t, IsForeignKeyViolation(&pq.Error{Code: "23505"}))
}
