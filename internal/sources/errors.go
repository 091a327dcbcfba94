package sources

import (
	"errors"
	"fmt"
)

// UnavailableError marks a source that produced no usable record for this run.
type UnavailableError struct {
	Source string
	Status int
	Reason string
	Err    error
}

func (e *UnavailableError) Error() string {
	msg := fmt.Sprintf("%s unavailable: %s", e.Source, e.Reason)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s unavailable (HTTP %d): %s", e.Source, e.Status, e.Reason)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

func NewUnavailableError(source string, status int, reason string, err error) error {
	return &UnavailableError{
		Source: source,
		Status: status,
		Reason: reason,
		Err:    err,
	}
}

func IsUnavailable(err error) bool {
	var target *UnavailableError
	return errors.As(err, &target)
}

// ValidationError represents an invalid source identifier.
type ValidationError struct {
	Field string
	Value string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: invalid %s: %q", e.Field, e.Value)
}

func NewValidationError(field, value string) error {
	return &ValidationError{
		Field: field,
		Value: value,
	}
}
