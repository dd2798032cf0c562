package utils

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvalidParameterError(t *testing.T) {
	err := &InvalidParameterError{Field: "sort", Value: "popularity", Message: "must be one of createdAt", Err: ErrUnknownSortKey}
	wrapped := fmt.Errorf("error parsing request: %w", err)

	var invalid *InvalidParameterError
	assert.True(t, errors.As(wrapped, &invalid))
	assert.Equal(t, "sort", invalid.Field)
	assert.True(t, errors.Is(wrapped, ErrUnknownSortKey))
	assert.Equal(t, `invalid sort "popularity": must be one of createdAt`, err.Error())
	assert.Equal(t, "invalid username: is required", NewInvalidParameterError("username", "", "is required").Error())
}

func TestPersistenceError(t *testing.T) {
	err := fmt.Errorf("error searching reviews: %w", &PersistenceError{
		Op:  "query",
		Err: errors.Join(ErrQueryTimeout, context.DeadlineExceeded),
	})

	var persistence *PersistenceError
	assert.True(t, errors.As(err, &persistence))
	assert.Equal(t, "query", persistence.Op)
	assert.True(t, errors.Is(err, ErrQueryTimeout))
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
