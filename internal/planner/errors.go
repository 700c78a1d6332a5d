package planner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pkordes/tripjournal/internal/domain"
)

// Errors returned by Planner.Submit, in the order the checks run.
var (
	ErrMissingField   = errors.New("required field is empty")
	ErrStartAfterEnd  = errors.New("start date is after end date")
	ErrNoSlug         = errors.New("no slug could be derived from the trip details")
	ErrSlugTaken      = errors.New("slug already taken")
	ErrCannotValidate = errors.New("could not load existing trips to check dates")
	ErrCreateFailed   = errors.New("trip could not be created")
)

// FieldError names the form field a validation error belongs to.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string { return e.Field + ": " + e.Err.Error() }

func (e *FieldError) Unwrap() error { return e.Err }

// ConflictError lists the caller's trips whose dates overlap the new one.
type ConflictError struct {
	Titles []string
}

func (e *ConflictError) Error() string {
	quoted := make([]string, len(e.Titles))
	for i, t := range e.Titles {
		quoted[i] = fmt.Sprintf("%q", t)
	}
	return "dates overlap " + strings.Join(quoted, ", ")
}

func (e *ConflictError) Unwrap() error { return domain.ErrDateConflict }
