// Package student contains all HTTP handlers related to the Student resource.
//
// Handlers are built by factories that receive their dependencies and
// return an http.HandlerFunc:
//
//	router.HandleFunc("POST /api/v1/students/create-student", student.New(svc))
//
// New(svc) runs once at startup; the returned closure runs on every request.
package student

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	json "github.com/goccy/go-json"

	appErrors "github.com/aanand-mishra/student-records/internal/errors"
	"github.com/aanand-mishra/student-records/internal/http/middleware"
	"github.com/aanand-mishra/student-records/internal/types"
	"github.com/aanand-mishra/student-records/internal/utils/response"
)

// maxBodyBytes caps the create payload.
const maxBodyBytes = 1 << 20

// Service is what the handlers need from the record service.
type Service interface {
	CreateRecord(ctx context.Context, raw any) (types.StoredStudent, error)
	ListRecords(ctx context.Context) ([]types.StoredStudent, error)
	GetRecord(ctx context.Context, id string) (types.StoredStudent, error)
}

// createRequest is the wire shape of POST /create-student. The student
// payload stays untyped until the schema has checked it.
type createRequest struct {
	Student any `json:"student"`
}

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /api/v1/students/create-student
//
// Request body (JSON):
//
//	{ "student": { "id": "S-1", "name": { "firstName": "John", ... }, ... } }
//
// Responses:
//
//	200 OK           the stored student
//	400 Bad Request  empty body, malformed or trailing JSON, or failed validation
//	409 Conflict     id or email already taken
//	500 Internal     storage failure
//
// ─────────────────────────────────────────────────────────────────────────────
func New(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger(r)
		log.Info("creating a student")

		var req createRequest
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		err := dec.Decode(&req)
		if errors.Is(err, io.EOF) {
			response.Error(w, appErrors.Clone(appErrors.ErrBadRequest, "request body is empty"))
			return
		}
		if err != nil {
			response.Error(w, appErrors.WithCause(appErrors.ErrBadRequest, "request body is not valid JSON", err, nil))
			return
		}
		// The body must hold exactly one JSON value.
		var extra any
		if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
			response.Error(w, appErrors.Clone(appErrors.ErrBadRequest, "request body has trailing data"))
			return
		}

		student, err := svc.CreateRecord(r.Context(), req.Student)
		if err != nil {
			log.Info("student rejected", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		log.Info("student created", slog.String("id", student.ID))
		response.OK(w, http.StatusOK, "Student is created successfully", student)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /api/v1/students
// Returns every student; an empty store gives an empty array, not null.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger(r)
		log.Info("getting all students")

		students, err := svc.ListRecords(r.Context())
		if err != nil {
			log.Error("error getting students", slog.String("error", err.Error()))
			response.Error(w, err)
			return
		}

		response.OK(w, http.StatusOK, "Students are retrieved successfully", students)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetByID handles GET /api/v1/students/{studentId}
// {studentId} is the business key, not the storage identity.
// ─────────────────────────────────────────────────────────────────────────────
func GetByID(svc Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("studentId")
		log := logger(r).With(slog.String("id", id))
		log.Info("getting a student")

		student, err := svc.GetRecord(r.Context(), id)
		if err != nil {
			if !errors.Is(err, appErrors.ErrNotFound) {
				log.Error("error getting student", slog.String("error", err.Error()))
			}
			response.Error(w, err)
			return
		}

		response.OK(w, http.StatusOK, "Student is retrieved successfully", student)
	}
}

func logger(r *http.Request) *slog.Logger {
	return slog.Default().With(slog.String("request_id", middleware.RequestIDFrom(r.Context())))
}
