package common

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoCallerHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(CallerID(r.Context())))
	})
}

func TestAuthMiddleware(t *testing.T) {
	SetSecret([]byte("test-secret"))

	token, err := GenerateToken("alice", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		query      string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "bearer header",
			authHeader: "Bearer " + token,
			wantStatus: http.StatusOK,
			wantBody:   "alice",
		},
		{
			name:       "bearer keyword is case-insensitive",
			authHeader: "bearer " + token,
			wantStatus: http.StatusOK,
			wantBody:   "alice",
		},
		{
			name:       "token query parameter",
			query:      "?token=" + token,
			wantStatus: http.StatusOK,
			wantBody:   "alice",
		},
		{
			name:       "no credentials",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage bearer",
			authHeader: "Bearer not-a-jwt",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/"+tt.query, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			rec := httptest.NewRecorder()
			AuthMiddleware(echoCallerHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}

func TestCallerID_MissingValue(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	assert.Equal(t, Anonymous, CallerID(req.Context()))
}

func TestCallerID_KeyIsPackageScoped(t *testing.T) {
	// a plain string "user_id" planted by another package is not our caller
	ctx := context.WithValue(context.Background(), "user_id", "mallory") //nolint:staticcheck
	assert.Equal(t, Anonymous, CallerID(ctx))

	ctx = context.WithValue(context.Background(), UserIDKey, "alice")
	assert.Equal(t, "alice", CallerID(ctx))
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	req := httptest.NewRequest("OPTIONS", "/", nil)
	rec := httptest.NewRecorder()

	called := false
	CORSMiddleware(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		called = true
	})).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called, "preflight short-circuits")
}

func TestWriteError_InternalHidesDetail(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, E(KindInternal, "pq: secret table does not exist"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "internal error")
	assert.NotContains(t, rec.Body.String(), "secret table")
}
