package utils

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownSortKey   = errors.New("unknown sort key")
	ErrQueryTimeout     = errors.New("query timed out")
	ErrInvalidPlan      = errors.New("invalid search plan")
	ErrInvalidPageToken = errors.New("invalid page token")
)

// InvalidParameterError reports a request parameter that failed validation.
// It is a client error and is never retried.
type InvalidParameterError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *InvalidParameterError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Message)
}

func (e *InvalidParameterError) Unwrap() error {
	return e.Err
}

// NewInvalidParameterError builds an InvalidParameterError with no wrapped cause.
func NewInvalidParameterError(field, value, message string) *InvalidParameterError {
	return &InvalidParameterError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// PersistenceError wraps a failure reported by the database while executing a search.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence error during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
