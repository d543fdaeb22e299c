package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// MemoryPath selects a private in-memory database.
const MemoryPath = ":memory:"

// OpenDB opens the PMO store at path and brings the schema up to date.
//
// Foreign keys are switched on through the DSN so that every pooled
// connection enforces cascades, not only the first one. An in-memory
// store is pinned to a single connection because each sqlite connection
// would otherwise see its own empty database.
func OpenDB(path string) (*sql.DB, error) {
	path = NormalizePath(path)
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if path == MemoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return db, nil
}

// NormalizePath accepts either a plain file path or a sqlite URL of the
// form sqlite:///relative.db and returns the file path.
func NormalizePath(path string) string {
	switch {
	case path == "":
		return MemoryPath
	case strings.HasPrefix(path, "sqlite:///"):
		return strings.TrimPrefix(path, "sqlite:///")
	case strings.HasPrefix(path, "sqlite://"):
		return strings.TrimPrefix(path, "sqlite://")
	}
	return path
}

func dsn(path string) string {
	pragmas := "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	if path != MemoryPath {
		pragmas += "&_pragma=journal_mode(WAL)"
	}
	return path + "?" + pragmas
}
