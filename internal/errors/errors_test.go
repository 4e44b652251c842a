package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeOf(t *testing.T) {
	assert.Equal(t, ErrorTypeValidation, TypeOf(NewValidationError("bad input")))
	assert.Equal(t, ErrorTypeConflict, TypeOf(NewConflictError("taken")))
	assert.Equal(t, ErrorTypeNotFound, TypeOf(NewNotFoundError("gone")))
	assert.Equal(t, ErrorTypePersistence, TypeOf(NewPersistenceError(stderrors.New("db"))))

	// Foreign errors collapse to internal.
	assert.Equal(t, ErrorTypeInternal, TypeOf(stderrors.New("plain")))
}

func TestTypeOfWrappedChain(t *testing.T) {
	inner := NewNotFoundError("entry 3 not found")
	outer := fmt.Errorf("loading entry: %w", inner)

	assert.True(t, IsType(outer, ErrorTypeNotFound))
	assert.False(t, IsType(outer, ErrorTypeValidation))
}

func TestUnwrapAndIs(t *testing.T) {
	cause := stderrors.New("connection refused")
	wrapped := NewUpstreamError(cause, "patient identity service")

	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, "patient identity service request failed", wrapped.Message)
	assert.Equal(t, "patient identity service", wrapped.Context["service"])
}

func TestIsMatchesTypeAndCode(t *testing.T) {
	sentinel := New(ErrorTypeValidation, "INVALID_CREDENTIALS", "Invalid username or password")
	other := New(ErrorTypeValidation, "INVALID_CREDENTIALS", "different message, same meaning")

	assert.ErrorIs(t, other, sentinel)
	assert.NotErrorIs(t, NewValidationError("Invalid username or password"), sentinel)
}

func TestLogFields(t *testing.T) {
	err := NewPersistenceError(stderrors.New("disk full")).WithContext("table", "entries")
	fields := err.LogFields()

	require.True(t, len(fields)%2 == 0)
	asMap := make(map[string]interface{}, len(fields)/2)
	for i := 0; i < len(fields); i += 2 {
		asMap[fields[i].(string)] = fields[i+1]
	}
	assert.Equal(t, ErrorTypePersistence, asMap["error_type"])
	assert.Equal(t, "disk full", asMap["internal_error"])
	assert.Equal(t, "entries", asMap["table"])
	assert.NotEmpty(t, asMap["source"])
}
