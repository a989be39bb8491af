// Package postgres provides the PostgreSQL dialect of the SQL document
// store. Documents live in a JSONB column.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/aanand-mishra/student-records/internal/config"
	"github.com/aanand-mishra/student-records/internal/storage/sqlstore"
)

// uniqueViolation is the SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// Dialect is the PostgreSQL flavour of the students table.
var Dialect = sqlstore.Dialect{
	Name: "postgres",
	Schema: []string{`
		CREATE TABLE IF NOT EXISTS students (
			seq        BIGSERIAL,
			object_id  UUID PRIMARY KEY,
			student_id TEXT NOT NULL UNIQUE,
			email      TEXT NOT NULL UNIQUE,
			document   JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS students_seq_idx ON students (seq)`,
	},
	OrderBy:           "seq",
	IsUniqueViolation: IsUniqueViolation,
}

// New connects to cfg.Storage.DSN, verifies the connection, and creates
// the students table if missing.
func New(ctx context.Context, cfg *config.Config) (*sqlstore.Store, error) {
	db, err := sqlx.Open("postgres", cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres.New: open db: %w", err)
	}

	if cfg.Storage.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Storage.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Storage.MaxOpenConns)
	}
	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres.New: ping: %w", err)
	}

	store := sqlstore.New(db, Dialect)
	if err := store.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres.New: %w", err)
	}
	return store, nil
}

// IsUniqueViolation reports whether err carries SQLSTATE 23505.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolation
}
