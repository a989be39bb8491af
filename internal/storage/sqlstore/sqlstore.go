// Package sqlstore implements storage.Storage on top of any SQL database
// reachable through sqlx.
//
// Each student is kept as a JSON document next to two indexed columns,
// student_id and email, that carry UNIQUE constraints. The database, not
// the caller, is the source of truth for uniqueness: a constraint
// violation on insert surfaces as storage.ErrDuplicateKey.
//
// The SQL is written with ? placeholders and rebound by sqlx for the
// driver in use, so sqlite and postgres share every query.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
)

// Dialect holds what differs between databases.
type Dialect struct {
	// Name is used in log lines and error prefixes.
	Name string
	// Schema is run statement by statement by Migrate. Every statement
	// must be idempotent.
	Schema []string
	// OrderBy is the column giving insertion order.
	OrderBy string
	// IsUniqueViolation reports whether err is a UNIQUE constraint failure.
	IsUniqueViolation func(err error) bool
}

// Store is a storage.Storage backed by a *sqlx.DB. A *sqlx.DB is a
// connection pool and is safe for concurrent use by multiple goroutines.
type Store struct {
	db      *sqlx.DB
	dialect Dialect
}

type row struct {
	ObjectID string `db:"object_id"`
	Document string `db:"document"`
}

// New wraps db. Call Migrate before first use on a fresh database.
func New(db *sqlx.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// DB exposes the underlying pool, e.g. for health checks.
func (s *Store) DB() *sqlx.DB { return s.db }

// Migrate creates the students table and its indexes if missing.
func (s *Store) Migrate(ctx context.Context) error {
	for _, stmt := range s.dialect.Schema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("%s: migrate: %w", s.dialect.Name, err)
		}
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create inserts student as a new document.
func (s *Store) Create(ctx context.Context, student types.Student) (types.StoredStudent, error) {
	doc, err := json.Marshal(student)
	if err != nil {
		return types.StoredStudent{}, fmt.Errorf("Create: encode document: %w", err)
	}

	objectID := uuid.NewString()
	query := s.db.Rebind(
		"INSERT INTO students (object_id, student_id, email, document) VALUES (?, ?, ?, ?)",
	)
	if _, err := s.db.ExecContext(ctx, query, objectID, student.ID, student.Email, string(doc)); err != nil {
		if s.dialect.IsUniqueViolation != nil && s.dialect.IsUniqueViolation(err) {
			return types.StoredStudent{}, fmt.Errorf("Create: %w: %w", err, storage.ErrDuplicateKey)
		}
		return types.StoredStudent{}, fmt.Errorf("Create: exec: %w", err)
	}

	return types.StoredStudent{ObjectID: objectID, Student: student}, nil
}

// FindAll returns every document in insertion order.
func (s *Store) FindAll(ctx context.Context) ([]types.StoredStudent, error) {
	var rows []row
	query := "SELECT object_id, document FROM students ORDER BY " + s.dialect.OrderBy
	if err := s.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("FindAll: query: %w", err)
	}

	students := make([]types.StoredStudent, 0, len(rows))
	for _, r := range rows {
		rec, err := r.decode()
		if err != nil {
			return nil, fmt.Errorf("FindAll: %w", err)
		}
		students = append(students, rec)
	}
	return students, nil
}

// FindByBusinessKey fetches the document whose student id equals id.
func (s *Store) FindByBusinessKey(ctx context.Context, id string) (types.StoredStudent, error) {
	var r row
	query := s.db.Rebind("SELECT object_id, document FROM students WHERE student_id = ? LIMIT 1")
	if err := s.db.GetContext(ctx, &r, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.StoredStudent{}, fmt.Errorf("FindByBusinessKey: %q: %w", id, storage.ErrNotFound)
		}
		return types.StoredStudent{}, fmt.Errorf("FindByBusinessKey: query: %w", err)
	}

	rec, err := r.decode()
	if err != nil {
		return types.StoredStudent{}, fmt.Errorf("FindByBusinessKey: %w", err)
	}
	return rec, nil
}

func (r row) decode() (types.StoredStudent, error) {
	var student types.Student
	if err := json.Unmarshal([]byte(r.Document), &student); err != nil {
		return types.StoredStudent{}, fmt.Errorf("decode document %s: %w", r.ObjectID, err)
	}
	return types.StoredStudent{ObjectID: r.ObjectID, Student: student}, nil
}
