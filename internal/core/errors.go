package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate       = errors.New("invalid date format, use dd-mm-yyyy (e.g., 19-12-2025)")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrNonPositiveAmount = errors.New("amount must be positive")
	ErrInvalidCategory   = errors.New("invalid category, enter 'I' for Income or 'E' for Expense")
	ErrEmptyCategory     = errors.New("category is required")
)

// ValidationError reports a single rejected input field. It is recoverable:
// the caller re-prompts or rejects that one input.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is, or wraps, a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
