package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ndewijer/InvestBoard-Backend/internal/apperrors"
)

// Error reports per-field validation failures.
type Error struct {
	Fields map[string]string
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, field := range fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, e.Fields[field]))
	}
	return strings.Join(msgs, "; ")
}

// Unwrap lets callers match any field failure with apperrors.ErrInvalidIdentifier.
func (e *Error) Unwrap() error {
	return apperrors.ErrInvalidIdentifier
}

func fieldError(field, msg string) *Error {
	return &Error{Fields: map[string]string{field: msg}}
}
