// Package apperr defines the error taxonomy the handlers map onto HTTP
// statuses. Store-level failures are classified here so raw driver error
// text never reaches a client.
package apperr

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

// Kind classifies an error for status mapping.
type Kind int

const (
	// Validation covers missing or malformed request fields.
	Validation Kind = iota
	// NotFound covers lookups and scoped writes that matched no row.
	NotFound
	// Conflict covers uniqueness violations.
	Conflict
	// Auth covers credential mismatches.
	Auth
	// Store covers any store failure not otherwise classified.
	Store
)

// Error carries a client-safe message alongside the underlying cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// HTTPStatus maps the error kind to a response status.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case Validation:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Auth:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// New creates an error with no underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a cause to a classified error. The cause is for logs only;
// clients see just the message.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// FromGorm classifies a gorm error for the named resource. Requires the
// connection to be opened with TranslateError so driver-specific constraint
// errors arrive as gorm sentinels.
func FromGorm(err error, resource string) *Error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return Wrap(NotFound, resource+" not found", err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Wrap(Conflict, resource+" already exists", err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return Wrap(NotFound, "referenced record not found", err)
	default:
		return Wrap(Store, "store operation failed", err)
	}
}
