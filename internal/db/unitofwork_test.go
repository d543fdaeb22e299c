package db_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/alexanderramin/pmo/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openUoW(t *testing.T) (*sql.DB, *db.SQLiteUnitOfWork) {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database, db.NewSQLiteUnitOfWork(database)
}

func countUnits(t *testing.T, database *sql.DB) int {
	t.Helper()
	var n int
	require.NoError(t, database.QueryRow(`SELECT COUNT(*) FROM businessunit`).Scan(&n))
	return n
}

func insertUnit(ctx context.Context, tx db.DBTX, name string) error {
	_, err := tx.ExecContext(ctx, `INSERT INTO businessunit (name) VALUES (?)`, name)
	return err
}

func TestWithinTx_CommitOnSuccess(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		return insertUnit(ctx, tx, "Grid")
	})
	require.NoError(t, err)
	assert.Equal(t, 1, countUnits(t, database))
}

func TestWithinTx_RollbackOnError(t *testing.T) {
	database, uow := openUoW(t)
	boom := errors.New("deliberate failure")

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertUnit(ctx, tx, "Grid"); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 0, countUnits(t, database))
}

func TestWithinTx_RollbackOnPanic(t *testing.T) {
	database, uow := openUoW(t)

	assert.Panics(t, func() {
		_ = uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
			_ = insertUnit(ctx, tx, "Grid")
			panic("boom")
		})
	})
	assert.Equal(t, 0, countUnits(t, database))
}

func TestWithinTx_ConstraintViolationRollsBackEarlierWrites(t *testing.T) {
	database, uow := openUoW(t)

	err := uow.WithinTx(context.Background(), func(ctx context.Context, tx db.DBTX) error {
		if err := insertUnit(ctx, tx, "Grid"); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx, `INSERT INTO position (name, businessunit_id) VALUES ('ghost', 4242)`)
		return err
	})
	require.Error(t, err)
	assert.Equal(t, 0, countUnits(t, database))
}
