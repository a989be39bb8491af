// Package response provides helpers for writing consistent JSON HTTP
// responses.
//
// Success responses look like:
//
//	{ "success": true, "message": "Students are retrieved successfully", "data": [...] }
//
// Error responses look like:
//
//	{ "success": false, "message": "invalid student payload",
//	  "error": { "code": "VALIDATION_FAILED", "message": "...", "details": [...] } }
package response

import (
	"net/http"

	json "github.com/goccy/go-json"

	appErrors "github.com/aanand-mishra/student-records/internal/errors"
)

// Success is the envelope for 2xx responses.
type Success struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Failure is the envelope for error responses.
type Failure struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Error   *appErrors.Error `json:"error"`
}

// WriteJSON writes a JSON-encoded response with the given HTTP status code.
//
// IMPORTANT ORDER: Header() → WriteHeader() → body writes.
// Once WriteHeader is called (or the first Write), headers are locked.
func WriteJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// OK writes a success envelope.
func OK(w http.ResponseWriter, status int, message string, data any) error {
	return WriteJSON(w, status, Success{Success: true, Message: message, Data: data})
}

// Error converts err to the common error envelope. Unclassified errors
// become a 500 whose body does not leak the cause.
func Error(w http.ResponseWriter, err error) error {
	appErr := appErrors.FromError(err)
	message := appErr.Message
	if appErr.Status >= http.StatusInternalServerError {
		message = "Something went wrong"
	}
	return WriteJSON(w, appErr.Status, Failure{Success: false, Message: message, Error: appErr})
}
