package services

import (
	"errors"
	"fmt"
	"strings"
)

// Error kinds. Every typed error below matches exactly one of these via errors.Is.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("scheduling conflict")
	ErrResourceInUse = errors.New("resource in use")
	ErrDuplicate     = errors.New("already exists")
	ErrPersistence   = errors.New("flight rejected")
)

// ValidationError reports malformed input; nothing was looked up or written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError reports a reference to an airport, aircraft, pilot or flight that does not exist.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ConflictError reports a resource already committed on Date. Candidates lists
// the resource ids the caller may choose instead; it is empty when none are free.
type ConflictError struct {
	Resource   string
	ID         string
	Date       string
	Candidates []string
}

func (e *ConflictError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("no %s available on %s", e.Resource, e.Date)
	}
	if len(e.Candidates) == 0 {
		return fmt.Sprintf("%s %q is already assigned on %s and no other %s is available", e.Resource, e.ID, e.Date, e.Resource)
	}
	return fmt.Sprintf("%s %q is already assigned on %s (available: %s)", e.Resource, e.ID, e.Date, strings.Join(e.Candidates, ", "))
}

func (e *ConflictError) Is(target error) bool { return target == ErrConflict }

// InUseError reports a delete blocked by References dependent rows.
type InUseError struct {
	Resource   string
	ID         string
	References int64
}

func (e *InUseError) Error() string {
	return fmt.Sprintf("%s %q is used by %d flight(s) and cannot be deleted", e.Resource, e.ID, e.References)
}

func (e *InUseError) Is(target error) bool { return target == ErrResourceInUse }

// DuplicateError reports an insert whose key already exists.
type DuplicateError struct {
	Resource string
	ID       string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Resource, e.ID)
}

func (e *DuplicateError) Is(target error) bool { return target == ErrDuplicate }

// PersistenceError reports a store rejection. The whole unit was rolled back;
// Err carries the store's reason for logs only.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("flight rejected: %s failed", e.Op)
}

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }

func (e *PersistenceError) Unwrap() error { return e.Err }

// ErrorKind names the kind of err for logs and metrics labels
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrResourceInUse):
		return "in_use"
	case errors.Is(err, ErrDuplicate):
		return "duplicate"
	case errors.Is(err, ErrPersistence):
		return "persistence"
	}
	return "internal"
}
