package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lux2ube/Customer-service-sub002/internal/ingest"
	"github.com/lux2ube/Customer-service-sub002/internal/ingest/store"
)

func TestStore_CreateFailure(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	failure := &ingest.Failure{
		ID:         uuid.New(),
		RawMessage: "Your OTP code is 482913",
		Reason:     "no parsing rule matched",
	}

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO parsing_failures`).
		WithArgs(failure.ID, failure.RawMessage, failure.Reason).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(now))

	require.NoError(t, store.New(db).CreateFailure(context.Background(), failure))
	assert.Equal(t, now, failure.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListFailures_Unresolved(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "raw_message", "reason", "resolved", "created_at"}).
		AddRow(id, "رصيدك الحالي 120000", "no parsing rule matched", false, time.Now())

	mock.ExpectQuery(`FROM parsing_failures\s+WHERE NOT resolved`).WillReturnRows(rows)

	failures, err := store.New(db).ListFailures(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, id, failures[0].ID)
	assert.False(t, failures[0].Resolved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ResolveFailure_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	mock.ExpectExec(`UPDATE parsing_failures SET resolved`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = store.New(db).ResolveFailure(context.Background(), id)
	assert.ErrorIs(t, err, ingest.ErrFailureNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
