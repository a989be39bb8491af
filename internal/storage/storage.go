// Package storage defines the Storage interface, the persistence
// boundary every backend (memory, sqlite, postgres) must satisfy.
//
// Stores receive students that already passed schema.StudentSchema. They
// own exactly one piece of business logic: the uniqueness of a student's
// id and email. That check is the authoritative guard against duplicates;
// any pre-check done by callers is only a shortcut to a friendlier error.
package storage

import (
	"context"
	"errors"

	"github.com/aanand-mishra/student-records/internal/types"
)

var (
	// ErrDuplicateKey is returned by Create when the id or email is taken.
	ErrDuplicateKey = errors.New("storage: duplicate key")
	// ErrNotFound is returned when no record has the requested id.
	ErrNotFound = errors.New("storage: not found")
)

// Storage is the record store contract.
type Storage interface {
	// Create inserts student and returns it with its storage-assigned
	// identity. Single inserts are atomic.
	Create(ctx context.Context, student types.Student) (types.StoredStudent, error)

	// FindAll returns every record in a stable, store-defined order.
	// Returns an empty slice (not nil) when the store is empty.
	FindAll(ctx context.Context) ([]types.StoredStudent, error)

	// FindByBusinessKey returns the record whose Student.ID equals id.
	FindByBusinessKey(ctx context.Context, id string) (types.StoredStudent, error)
}
