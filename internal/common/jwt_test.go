package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_RoundTrip(t *testing.T) {
	SetSecret([]byte("test-secret"))

	token, err := GenerateToken("alice", time.Hour)
	require.NoError(t, err)

	assert.Equal(t, "alice", Resolve(token))
}

// Resolve is total: every failure mode collapses to Anonymous, never an
// error.
func TestResolve_FailureModes(t *testing.T) {
	SetSecret([]byte("test-secret"))

	expired, err := GenerateToken("alice", -time.Hour)
	require.NoError(t, err)

	SetSecret([]byte("other-secret"))
	forged, err := GenerateToken("alice", time.Hour)
	require.NoError(t, err)
	SetSecret([]byte("test-secret"))

	tests := []struct {
		name   string
		bearer string
	}{
		{name: "empty bearer", bearer: ""},
		{name: "garbage bearer", bearer: "not-a-jwt"},
		{name: "truncated jwt", bearer: "eyJhbGciOiJIUzI1NiJ9.e30"},
		{name: "expired token", bearer: expired},
		{name: "forged signature", bearer: forged},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Anonymous, Resolve(tt.bearer))
		})
	}
}
