package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  *Error
		want int
	}{
		{ValidationError("bad input"), http.StatusBadRequest},
		{NotFoundError("missing"), http.StatusNotFound},
		{InternalError("boom", nil), http.StatusInternalServerError},
		{ExternalError("analyzer down", nil), http.StatusBadGateway},
		{&Error{Type: "unmapped"}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.err.Type), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.HTTPStatus())
		})
	}
}

func TestError_MessageFormat(t *testing.T) {
	plain := ValidationError("input_text must not be empty")
	assert.Equal(t, "validation: input_text must not be empty", plain.Error())

	wrapped := InternalError("failed to persist", errors.New("connection refused"))
	assert.Equal(t, "internal: failed to persist: connection refused", wrapped.Error())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := InternalError("failed to persist", cause)

	assert.ErrorIs(t, err, cause)
}

func TestWithField(t *testing.T) {
	err := NotFoundError("analysis record not found").WithField("record_id", "abc-123")

	assert.Equal(t, "abc-123", err.Context["record_id"])
}

func TestToResponse(t *testing.T) {
	err := ValidationError("bert confidence must be within [0, 1]").WithField("confidence", 1.5)

	resp := err.ToResponse()
	assert.Equal(t, "bert confidence must be within [0, 1]", resp.Error)
	assert.Equal(t, TypeValidation, resp.Type)
	assert.Equal(t, 1.5, resp.Context["confidence"])
}

func TestAsStructuredError(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		assert.Nil(t, AsStructuredError(nil))
	})

	t.Run("already structured", func(t *testing.T) {
		original := NotFoundError("missing")
		assert.Same(t, original, AsStructuredError(original))
	})

	t.Run("wrapped structured", func(t *testing.T) {
		original := ValidationError("bad input")
		wrapped := fmt.Errorf("handler: %w", original)

		got := AsStructuredError(wrapped)
		require.NotNil(t, got)
		assert.Equal(t, TypeValidation, got.Type)
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		got := AsStructuredError(errors.New("boom"))
		require.NotNil(t, got)
		assert.Equal(t, TypeInternal, got.Type)
	})
}
