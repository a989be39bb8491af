// Package sqlite provides the SQLite dialect of the SQL document store.
//
// SQLite stores everything in a single file on disk. There is no network,
// no separate server process, and no installation beyond the driver.
//
// Importing go-sqlite3 registers the "sqlite3" driver with database/sql;
// its Error type classifies constraint failures.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"

	"github.com/aanand-mishra/student-records/internal/config"
	"github.com/aanand-mishra/student-records/internal/storage/sqlstore"
)

// Dialect is the SQLite flavour of the students table. rowid gives
// insertion order since the table is not WITHOUT ROWID.
var Dialect = sqlstore.Dialect{
	Name: "sqlite",
	Schema: []string{`
		CREATE TABLE IF NOT EXISTS students (
			object_id  TEXT PRIMARY KEY,
			student_id TEXT NOT NULL UNIQUE,
			email      TEXT NOT NULL UNIQUE,
			document   TEXT NOT NULL,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
	},
	OrderBy:           "rowid",
	IsUniqueViolation: IsUniqueViolation,
}

// New opens the SQLite database at cfg.Storage.Path, creates the students
// table if it does not already exist, and returns a ready-to-use store.
func New(ctx context.Context, cfg *config.Config) (*sqlstore.Store, error) {
	if dir := filepath.Dir(cfg.Storage.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite.New: create dir: %w", err)
		}
	}

	// _busy_timeout lets concurrent writers wait on the file lock.
	dsn := cfg.Storage.Path + "?_busy_timeout=5000"
	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite.New: open db: %w", err)
	}
	if cfg.Storage.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Storage.MaxOpenConns)
	}

	store := sqlstore.New(db, Dialect)
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite.New: %w", err)
	}
	return store, nil
}

// IsUniqueViolation reports whether err is a SQLite UNIQUE (or primary key)
// constraint failure.
func IsUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
		sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
}
