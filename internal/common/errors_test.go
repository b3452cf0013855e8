package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMessageShape(t *testing.T) {
	assert.Equal(t, "not-found: message not found", E(KindNotFound, "message not found").Error())
	assert.Equal(t, "invalid-argument: content: text message content cannot be empty",
		Ef(KindInvalidArgument, "content", "text message content cannot be empty").Error())
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(KindUnavailable, cause, "the message store is unreachable")

	assert.Equal(t, KindUnavailable, KindOf(err))
	assert.ErrorIs(t, err, cause)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindForbidden, KindOf(E(KindForbidden, "nope")))

	// classified errors survive wrapping
	wrapped := fmt.Errorf("handler: %w", E(KindNotFound, "gone"))
	assert.Equal(t, KindNotFound, KindOf(wrapped))

	// anything unclassified is internal
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindUnauthorized, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindInvalidArgument, http.StatusBadRequest},
		{KindInvariantViolation, http.StatusConflict},
		{KindInvalidTransition, http.StatusConflict},
		{KindConflict, http.StatusConflict},
		{KindUnavailable, http.StatusServiceUnavailable},
		{KindInternal, http.StatusInternalServerError},
		{Kind("never-seen"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.kind), "Failed for kind: %s", tt.kind)
	}
}
