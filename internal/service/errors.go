package service

import (
	"errors"
	"fmt"
)

// Not-found sentinels.
var (
	ErrPeriodNotFound  = errors.New("period not found")
	ErrSectionNotFound = errors.New("class section not found")
	ErrSessionNotFound = errors.New("exam session not found")
	ErrExamNotFound    = errors.New("exam not found")
)

// ValidationError reports a client-side input failure. It is raised before
// any storage call, so the form can show it inline and keep the user's
// input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ConflictDimension names what a rejected period collided on.
type ConflictDimension string

const (
	ConflictTeacher ConflictDimension = "teacher"
	ConflictRoom    ConflictDimension = "room"
)

// ConflictError rejects a period that would double-book a teacher or a
// room on the same weekday and time range, in any section.
type ConflictError struct {
	Dimension ConflictDimension
	With      string // subject/teacher or room summary of the existing period
	Weekday   int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already has a period overlapping this time on weekday %d (%s)", e.Dimension, e.Weekday, e.With)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
