// Package memory provides an in-process implementation of
// storage.Storage. It backs the "memory" driver and the tests.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
)

// Memory keeps records in insertion order with unique indexes on id and
// email. It is safe for concurrent use.
type Memory struct {
	mu      sync.RWMutex
	records []types.StoredStudent
	byID    map[string]int
	byEmail map[string]int
}

// New returns an empty store.
func New() *Memory {
	return &Memory{
		byID:    make(map[string]int),
		byEmail: make(map[string]int),
	}
}

// Create inserts student, rejecting a taken id or email.
func (m *Memory) Create(ctx context.Context, student types.Student) (types.StoredStudent, error) {
	if err := ctx.Err(); err != nil {
		return types.StoredStudent{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[student.ID]; ok {
		return types.StoredStudent{}, fmt.Errorf("Create: id %q: %w", student.ID, storage.ErrDuplicateKey)
	}
	if _, ok := m.byEmail[student.Email]; ok {
		return types.StoredStudent{}, fmt.Errorf("Create: email %q: %w", student.Email, storage.ErrDuplicateKey)
	}

	rec := types.StoredStudent{ObjectID: uuid.NewString(), Student: student}
	m.byID[student.ID] = len(m.records)
	m.byEmail[student.Email] = len(m.records)
	m.records = append(m.records, rec)
	return rec, nil
}

// FindAll returns a copy of every record in insertion order.
func (m *Memory) FindAll(ctx context.Context) ([]types.StoredStudent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.StoredStudent, len(m.records))
	copy(out, m.records)
	return out, nil
}

// FindByBusinessKey returns the record with the given student id.
func (m *Memory) FindByBusinessKey(ctx context.Context, id string) (types.StoredStudent, error) {
	if err := ctx.Err(); err != nil {
		return types.StoredStudent{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.byID[id]
	if !ok {
		return types.StoredStudent{}, fmt.Errorf("FindByBusinessKey: %q: %w", id, storage.ErrNotFound)
	}
	return m.records[i], nil
}

// Close is a no-op; it lets Memory stand in wherever a closable store is
// expected.
func (m *Memory) Close() error { return nil }
