package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomError_Message(t *testing.T) {
	assert.Equal(t, "Route not found", NewResourceNotFoundError("Route not found").Error())
	assert.Equal(t, "Duplicate entry", NewRemoteError(409, "Duplicate entry").Error())
	assert.Equal(t, "registration failed", NewRemoteError(500, "").Error())
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
}

func TestCustomError_Unwrap(t *testing.T) {
	err := fmt.Errorf("submit: %w", NewRemoteError(409, "Duplicate entry"))
	assert.True(t, errors.Is(err, ErrRegistrationFailed))
	assert.False(t, errors.Is(err, ErrValidationFailed))

	wrapped := NewCustomError(err, "Duplicate entry")
	assert.True(t, errors.Is(wrapped, ErrRegistrationFailed))
}

func TestStatusMessage(t *testing.T) {
	msg, ok := StatusMessage(fmt.Errorf("x: %w", NewRemoteError(409, "Duplicate entry")))
	assert.True(t, ok)
	assert.Equal(t, "Duplicate entry", msg)

	_, ok = StatusMessage(NewRemoteError(500, ""))
	assert.False(t, ok)

	_, ok = StatusMessage(errors.New("plain"))
	assert.False(t, ok)
}

func TestFieldErrors(t *testing.T) {
	err := NewValidationError(map[string]string{"name": "Name is required"})
	assert.Equal(t, "Please correct the highlighted fields", err.Error())
	assert.Equal(t, map[string]string{"name": "Name is required"}, FieldErrors(err))
	assert.Nil(t, FieldErrors(NewRemoteError(500, "")))
}
