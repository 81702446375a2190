package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunInTransaction_Commit(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE tasks").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = NewSQLTransactor(db).RunInTx(context.Background(), func(ctx context.Context, tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "UPDATE tasks SET label = 'x'")
		return err
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_RollbackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectRollback()

	expected := errors.New("shift failed")
	err = RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		return expected
	})

	assert.Equal(t, expected, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunInTransaction_BeginFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin().WillReturnError(errors.New("pool exhausted"))

	err = RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
		t.Fatal("fn must not run")
		return nil
	})

	assert.ErrorIs(t, err, ErrTransactionFailed)
}

func TestRunInTransaction_RollbackOnPanic(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.PanicsWithValue(t, "boom", func() {
		_ = RunInTransaction(context.Background(), db, func(ctx context.Context, tx *sql.Tx) error {
			panic("boom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreError(t *testing.T) {
	t.Parallel()

	err := NewStoreError("task", "reorder", "shift failed", ErrListNotFound)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.True(t, IsNotFoundError(err))
	assert.False(t, IsDuplicateError(err))
	assert.Contains(t, err.Error(), "reorder operation on task failed")
	assert.True(t, IsDuplicateError(ErrAlreadyMember))
}
