package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
	}{
		{NotFound("user", nil), http.StatusNotFound},
		{Validation("bad input"), http.StatusBadRequest},
		{Unauthorized("no token", nil), http.StatusUnauthorized},
		{Forbidden("not yours"), http.StatusForbidden},
		{Conflict("slot taken", nil), http.StatusConflict},
		{Internal(errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.status, tc.err.StatusCode(), tc.err.Message)
	}
}

func TestAsAppErrorUnwrapsWrappedErrors(t *testing.T) {
	base := Conflict("slot taken", nil)
	wrapped := fmt.Errorf("creating appointment: %w", base)

	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, ErrConflict, appErr.Code)

	_, ok = AsAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := NotFound("appointment", errors.New("sql: no rows"))
	assert.Contains(t, err.Error(), "appointment not found")
	assert.Contains(t, err.Error(), "sql: no rows")
	assert.ErrorContains(t, err.Unwrap(), "no rows")
}
