package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates a required field was missing or malformed.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates the referenced task does not exist.
	ErrNotFound = errors.New("task not found")
	// ErrInvalidRange indicates a start date after a due date.
	ErrInvalidRange = errors.New("invalid date range")
	// ErrOutOfRange indicates a value outside its allowed interval.
	ErrOutOfRange = errors.New("value out of range")
)

// Validationf wraps ErrValidation with detail about the offending field.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// NotFoundf wraps ErrNotFound with the missing id.
func NotFoundf(id string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// InvalidRangef wraps ErrInvalidRange with the rejected range.
func InvalidRangef(start, due Date) error {
	return fmt.Errorf("%w: start %s after due %s", ErrInvalidRange, start, due)
}

// OutOfRangef wraps ErrOutOfRange with the rejected value.
func OutOfRangef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrOutOfRange, fmt.Sprintf(format, args...))
}
