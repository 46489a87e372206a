package services

import (
	"errors"
	"sort"
	"strings"

	"github.com/dkeita/invenpos/internal/validation"
)

var (
	// ErrNotFound marks a referenced product/category/supplier id that does not exist.
	ErrNotFound = errors.New("not_found")
	// ErrConflict marks a duplicate category name on the strict create path.
	ErrConflict = errors.New("conflict")
)

// ValidationError carries per-field violations for malformed input.
type ValidationError struct {
	Violations validation.Violations
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Violations))
	for f := range e.Violations {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validation_failed: " + strings.Join(fields, ", ")
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
