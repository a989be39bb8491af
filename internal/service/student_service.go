// Package service holds the use-cases that sit between the HTTP layer and
// the record store.
package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	appErrors "github.com/aanand-mishra/student-records/internal/errors"
	"github.com/aanand-mishra/student-records/internal/metrics"
	"github.com/aanand-mishra/student-records/internal/schema"
	"github.com/aanand-mishra/student-records/internal/storage"
	"github.com/aanand-mishra/student-records/internal/types"
)

// StudentService validates student payloads and persists them.
type StudentService struct {
	store   storage.Storage
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewStudentService constructs the student service. logger and m may be nil.
func NewStudentService(store storage.Storage, logger *slog.Logger, m *metrics.Metrics) *StudentService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &StudentService{store: store, logger: logger, metrics: m}
}

// CreateRecord validates raw, rejects a taken business key, and stores the
// normalized student.
//
// The lookup before insert only produces a friendlier error for the common
// case. Two concurrent creations can both pass it; the store's own
// uniqueness check decides, and its rejection is reported the same way.
func (s *StudentService) CreateRecord(ctx context.Context, raw any) (types.StoredStudent, error) {
	student, err := schema.ValidateStudent(raw)
	if err != nil {
		s.metrics.CreateRejected(metrics.ReasonValidation)
		errs, _ := schema.AsErrors(err)
		return types.StoredStudent{}, appErrors.WithCause(appErrors.ErrValidation, "invalid student payload", err, errs)
	}

	_, err = s.store.FindByBusinessKey(ctx, student.ID)
	switch {
	case err == nil:
		s.metrics.CreateRejected(metrics.ReasonDuplicate)
		return types.StoredStudent{}, appErrors.Clone(appErrors.ErrDuplicate, "student with id "+student.ID+" already exists")
	case !errors.Is(err, storage.ErrNotFound):
		s.logger.Error("duplicate pre-check failed",
			slog.String("id", student.ID),
			slog.String("error", err.Error()))
		return types.StoredStudent{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check student id")
	}

	stored, err := s.store.Create(ctx, student)
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			s.metrics.CreateRejected(metrics.ReasonRace)
			s.logger.Warn("store rejected duplicate student",
				slog.String("id", student.ID),
				slog.String("error", err.Error()))
			return types.StoredStudent{}, appErrors.WithCause(appErrors.ErrDuplicate, "student id or email already exists", err, nil)
		}
		s.logger.Error("failed to create student",
			slog.String("id", student.ID),
			slog.String("error", err.Error()))
		return types.StoredStudent{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create student")
	}

	s.metrics.StudentCreated()
	s.logger.Info("student created",
		slog.String("id", stored.ID),
		slog.String("object_id", stored.ObjectID))
	return stored, nil
}

// ListRecords returns every stored student.
func (s *StudentService) ListRecords(ctx context.Context) ([]types.StoredStudent, error) {
	students, err := s.store.FindAll(ctx)
	if err != nil {
		s.logger.Error("failed to list students", slog.String("error", err.Error()))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}
	if students == nil {
		students = []types.StoredStudent{}
	}
	return students, nil
}

// GetRecord returns the student whose business key is id.
func (s *StudentService) GetRecord(ctx context.Context, id string) (types.StoredStudent, error) {
	id = strings.TrimSpace(id)
	student, err := s.store.FindByBusinessKey(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return types.StoredStudent{}, appErrors.WithCause(appErrors.ErrNotFound, "student not found", err, nil)
		}
		s.logger.Error("failed to load student",
			slog.String("id", id),
			slog.String("error", err.Error()))
		return types.StoredStudent{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	return student, nil
}
