package booking

import (
	"context"
	"regexp"
	"testing"
	"time"

	"allyoucangym/internal/session"
	"allyoucangym/internal/user"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sessionCols = []string{"id", "gym_id", "name", "description", "type", "trainer_name", "date_time", "capacity", "participants", "created_at", "updated_at"}

func setupBookingMock(t *testing.T) (Repository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(sqlx.NewDb(db, "sqlmock")), mock
}

func sessionRow(participants string, capacity int) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(sessionCols).AddRow("s1", "g1", "Spin", "", "", "", now, capacity, participants, now, now)
}

func TestAddParticipantWritesBothSides(t *testing.T) {
	repo, mock := setupBookingMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("AND cardinality(s.participants) < s.capacity")).
		WithArgs("u1", "s1").
		WillReturnRows(sessionRow("{u1}", 2))
	mock.ExpectExec(regexp.QuoteMeta("SET booked_sessions = array_append(booked_sessions, $1::uuid)")).
		WithArgs("s1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	s, err := repo.AddParticipant(context.Background(), "u1", "s1")
	require.NoError(t, err)
	assert.Equal(t, []string{"u1"}, []string(s.Participants))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddParticipantRaceLostToFullSession(t *testing.T) {
	repo, mock := setupBookingMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE sessions s")).
		WithArgs("u3", "s1").
		WillReturnRows(sqlmock.NewRows(sessionCols))
	mock.ExpectQuery(regexp.QuoteMeta("FROM sessions s WHERE s.id = $1")).
		WithArgs("s1").
		WillReturnRows(sessionRow("{u1,u2}", 2))
	mock.ExpectRollback()

	_, err := repo.AddParticipant(context.Background(), "u3", "s1")
	assert.ErrorIs(t, err, ErrSessionFull)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddParticipantRaceLostToDuplicate(t *testing.T) {
	repo, mock := setupBookingMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE sessions s")).
		WithArgs("u1", "s1").
		WillReturnRows(sqlmock.NewRows(sessionCols))
	mock.ExpectQuery(regexp.QuoteMeta("FROM sessions s WHERE s.id = $1")).
		WithArgs("s1").
		WillReturnRows(sessionRow("{u1}", 5))
	mock.ExpectRollback()

	_, err := repo.AddParticipant(context.Background(), "u1", "s1")
	assert.ErrorIs(t, err, ErrAlreadyBooked)
}

func TestAddParticipantCheckConstraint(t *testing.T) {
	repo, mock := setupBookingMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE sessions s")).
		WillReturnError(&pq.Error{Code: "23514"})
	mock.ExpectRollback()

	_, err := repo.AddParticipant(context.Background(), "u1", "s1")
	assert.ErrorIs(t, err, ErrSessionFull)
}

func TestAddParticipantUserVanished(t *testing.T) {
	repo, mock := setupBookingMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE sessions s")).
		WithArgs("u1", "s1").
		WillReturnRows(sessionRow("{u1}", 2))
	mock.ExpectExec(regexp.QuoteMeta("UPDATE users")).
		WithArgs("s1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectRollback()

	_, err := repo.AddParticipant(context.Background(), "u1", "s1")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAddParticipantSessionVanished(t *testing.T) {
	repo, mock := setupBookingMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("UPDATE sessions s")).
		WillReturnRows(sqlmock.NewRows(sessionCols))
	mock.ExpectQuery(regexp.QuoteMeta("FROM sessions s WHERE s.id = $1")).
		WillReturnRows(sqlmock.NewRows(sessionCols))
	mock.ExpectRollback()

	_, err := repo.AddParticipant(context.Background(), "u1", "s1")
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestRemoveParticipantPullsBothSides(t *testing.T) {
	repo, mock := setupBookingMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("SET booked_sessions = array_remove(booked_sessions, $1::uuid)")).
		WithArgs("s1", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("SET participants = array_remove(participants, $1::uuid)")).
		WithArgs("u1", "s1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.RemoveParticipant(context.Background(), "u1", "s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUserSessionsJoinsBookedSessions(t *testing.T) {
	repo, mock := setupBookingMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("JOIN sessions s ON s.id = ANY(u.booked_sessions)")).
		WithArgs("u1").
		WillReturnRows(sessionRow("{u1}", 4))

	sessions, err := repo.ListUserSessions(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, "Spin", sessions[0].Name)
}
