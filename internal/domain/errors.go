package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")
	ErrInvalid  = errors.New("invalid input")
)

// ValidationError describes a rejected field. It matches ErrInvalid.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrInvalid }

func Invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ConflictError is returned when a write would clash with existing rows.
// Count is the number of clashing rows or cells when that is meaningful.
type ConflictError struct {
	Reason string
	Count  int
}

func (e *ConflictError) Error() string {
	if e.Count > 0 {
		return fmt.Sprintf("%s (%d)", e.Reason, e.Count)
	}
	return e.Reason
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

func Conflict(reason string, count int) error {
	return &ConflictError{Reason: reason, Count: count}
}
