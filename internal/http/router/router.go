// Package router assembles the HTTP route table.
//
// Route table:
//
//	POST /api/v1/students/create-student  → create a new student
//	GET  /api/v1/students                 → list all students
//	GET  /api/v1/students/{studentId}     → get one student by business key
//	GET  /healthz                         → liveness
//	GET  /metrics                         → Prometheus exposition
package router

import (
	"log/slog"
	"net/http"

	"github.com/aanand-mishra/student-records/internal/http/handlers/student"
	"github.com/aanand-mishra/student-records/internal/http/middleware"
	"github.com/aanand-mishra/student-records/internal/metrics"
	"github.com/aanand-mishra/student-records/internal/utils/response"
)

// New returns the fully wrapped handler for the server.
func New(svc student.Service, log *slog.Logger, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/v1/students/create-student", student.New(svc))
	mux.HandleFunc("GET /api/v1/students", student.GetList(svc))
	mux.HandleFunc("GET /api/v1/students/{studentId}", student.GetByID(svc))

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, http.StatusOK, "ok", nil)
	})
	mux.Handle("GET /metrics", m.Handler())

	return middleware.RequestID(middleware.Observe(log, m, mux)(mux))
}
