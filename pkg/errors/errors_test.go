package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCodeMapping(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, NotFound("patient").StatusCode())
	assert.Equal(t, http.StatusBadRequest, BadRequest("bad", nil).StatusCode())
	assert.Equal(t, http.StatusBadRequest, Conflict("duplicate").StatusCode())
	assert.Equal(t, http.StatusUnauthorized, Unauthorized("nope").StatusCode())
	assert.Equal(t, http.StatusForbidden, Forbidden("nope").StatusCode())
	assert.Equal(t, http.StatusInternalServerError, Internal(fmt.Errorf("boom")).StatusCode())
}

func TestAsAppErrorUnwrapsChain(t *testing.T) {
	appErr := NotFound("alert")
	wrapped := fmt.Errorf("lookup failed: %w", appErr)

	got, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, appErr, got)

	_, ok = AsAppError(fmt.Errorf("plain error"))
	assert.False(t, ok)
}
