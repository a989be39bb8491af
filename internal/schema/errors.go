package schema

import (
	"errors"
	"fmt"
	"strings"
)

// Code classifies a scalar validation failure.
type Code string

const (
	MissingField   Code = "MissingField"
	TooLong        Code = "TooLong"
	NotCapitalized Code = "NotCapitalized"
	InvalidFormat  Code = "InvalidFormat"
)

// FieldError is one failure, scoped to a dotted field path such as
// "name.firstName".
type FieldError struct {
	Path    string `json:"path"`
	Code    Code   `json:"code"`
	Message string `json:"message"`
}

// Errors is the ordered list of failures produced by one validation run.
type Errors []FieldError

// Error summarizes the first few failures.
func (errs Errors) Error() string {
	if len(errs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(errs), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", errs[i].Code, errs[i].Path)
	}
	if len(errs) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(errs))
	}
	return b.String()
}

// Has reports whether errs holds a failure with the given path and code.
func (errs Errors) Has(path string, code Code) bool {
	for _, e := range errs {
		if e.Path == path && e.Code == code {
			return true
		}
	}
	return false
}

// AsErrors extracts Errors from err using errors.As.
func AsErrors(err error) (Errors, bool) {
	if err == nil {
		return nil, false
	}
	var errs Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}
