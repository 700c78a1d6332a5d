package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist (or is not visible to the caller).
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing title, end date before start date).
// Handlers should map this to HTTP 400.
var ErrValidation = errors.New("validation error")

// ErrMissingSlug is returned when no slug can be derived from the input.
// It wraps ErrValidation so callers that only care about validation still match.
var ErrMissingSlug = fmt.Errorf("%w: slug is required", ErrValidation)

// ErrAlreadyExists is returned when a slug is already claimed by another trip.
// Handlers should map this to HTTP 409.
var ErrAlreadyExists = errors.New("already exists")

// ErrDateConflict is returned when a trip's dates overlap another trip of the
// same owner. Usually wrapped by a *ConflictError naming the colliding trips.
var ErrDateConflict = errors.New("date conflict")

// ErrUnauthenticated is returned when an operation requires an identity and none was given.
var ErrUnauthenticated = errors.New("unauthenticated")

// ErrForbidden is returned when the caller is not the owner of the resource.
var ErrForbidden = errors.New("permission denied")

// ConflictError lists every trip whose dates collide with a candidate range.
type ConflictError struct {
	Conflicts []Trip
}

func (e *ConflictError) Error() string {
	titles := make([]string, len(e.Conflicts))
	for i, t := range e.Conflicts {
		titles[i] = fmt.Sprintf("%q", t.Title)
	}
	return fmt.Sprintf("%s: overlaps %s", ErrDateConflict, strings.Join(titles, ", "))
}

func (e *ConflictError) Unwrap() error { return ErrDateConflict }

// Code is a stable, machine-readable error code used on the wire.
type Code string

const (
	CodeMissingSlug      Code = "missing-slug"
	CodeInvalidArgument  Code = "invalid-argument"
	CodeAlreadyExists    Code = "already-exists"
	CodeDateConflict     Code = "date-conflict"
	CodeNotFound         Code = "not-found"
	CodeUnauthenticated  Code = "unauthenticated"
	CodeMissingAuth      Code = "missing-auth"
	CodeInvalidToken     Code = "invalid-token"
	CodePermissionDenied Code = "permission-denied"
	CodeRateLimited      Code = "rate-limited"
	CodeInternal         Code = "internal"
)

// CodeOf classifies err into its wire code. Unknown errors are CodeInternal.
func CodeOf(err error) Code {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMissingSlug):
		return CodeMissingSlug
	case errors.Is(err, ErrValidation):
		return CodeInvalidArgument
	case errors.Is(err, ErrAlreadyExists):
		return CodeAlreadyExists
	case errors.Is(err, ErrDateConflict):
		return CodeDateConflict
	case errors.Is(err, ErrNotFound):
		return CodeNotFound
	case errors.Is(err, ErrUnauthenticated):
		return CodeUnauthenticated
	case errors.Is(err, ErrForbidden):
		return CodePermissionDenied
	}
	return CodeInternal
}

// ErrorForCode is the inverse of CodeOf, used by API clients to turn a wire
// code back into the sentinel it stands for. Unknown codes return nil.
func ErrorForCode(c Code) error {
	switch c {
	case CodeMissingSlug:
		return ErrMissingSlug
	case CodeInvalidArgument:
		return ErrValidation
	case CodeAlreadyExists:
		return ErrAlreadyExists
	case CodeDateConflict:
		return ErrDateConflict
	case CodeNotFound:
		return ErrNotFound
	case CodeUnauthenticated, CodeMissingAuth, CodeInvalidToken:
		return ErrUnauthenticated
	case CodePermissionDenied:
		return ErrForbidden
	}
	return nil
}
