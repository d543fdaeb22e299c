package db

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(MemoryPath)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))
}

func TestMigrate_CreatesEntityTables(t *testing.T) {
	db := openTestDB(t)

	for _, table := range Tables {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesParentIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{
		"idx_businessunit_parent",
		"idx_position_parent",
		"idx_position_businessunit",
		"idx_project_businessunit",
		"idx_issue_workpackage",
		"idx_changerequest_workpackage",
		"idx_resourceassignment_task",
	} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestOpenDB_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var on int
	require.NoError(t, db.QueryRow(`PRAGMA foreign_keys`).Scan(&on))
	assert.Equal(t, 1, on)

	_, err := db.Exec(`INSERT INTO position (name, businessunit_id) VALUES ('orphan', 999)`)
	assert.Error(t, err, "insert with a dangling owner should be rejected")
}

func TestOpenDB_FileReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pmo.db")

	first, err := OpenDB(path)
	require.NoError(t, err)
	_, err = first.Exec(`INSERT INTO businessunit (name) VALUES ('Acme')`)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := OpenDB("sqlite:///" + path)
	require.NoError(t, err)
	defer second.Close()

	var count int
	require.NoError(t, second.QueryRow(`SELECT COUNT(*) FROM businessunit`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, MemoryPath, NormalizePath(""))
	assert.Equal(t, "pmo.db", NormalizePath("sqlite:///pmo.db"))
	assert.Equal(t, "/var/lib/pmo.db", NormalizePath("/var/lib/pmo.db"))
}
