package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"intrachat/internal/common"
	"intrachat/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Chat: config.ChatConfig{
			IdleTimeout:    120,
			SendBufferSize: 16,
		},
	}
}

func dialWS(t *testing.T, srv *httptest.Server, token string) *websocket.Conn {
	t.Helper()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	if token != "" {
		url += "?token=" + token
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestServeSystemMessages(t *testing.T) {
	common.SetSecret([]byte("test-secret"))
	registry := NewRegistry()
	handler := NewHandler(registry, testConfig())

	srv := httptest.NewServer(http.HandlerFunc(handler.ServeSystemMessages))
	defer srv.Close()

	token, err := common.GenerateToken("alice", time.Hour)
	require.NoError(t, err)

	conn := dialWS(t, srv, token)

	require.Eventually(t, func() bool {
		return registry.SessionCount("alice") == 1
	}, 2*time.Second, 10*time.Millisecond)

	registry.Broadcast("alice", common.NewEnvelope(common.EnvelopeSystemMessage, common.SystemMessage{
		Title: "welcome",
	}))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env common.Envelope
	require.NoError(t, conn.ReadJSON(&env))
	assert.Equal(t, common.EnvelopeSystemMessage, env.Type)

	// hanging up empties the mailbox
	conn.Close()
	require.Eventually(t, func() bool {
		return registry.SessionCount("alice") == 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestServeSystemMessages_IdleSessionIsReaped(t *testing.T) {
	common.SetSecret([]byte("test-secret"))
	registry := NewRegistry()
	cfg := testConfig()
	cfg.Chat.IdleTimeout = 1
	handler := NewHandler(registry, cfg)

	srv := httptest.NewServer(http.HandlerFunc(handler.ServeSystemMessages))
	defer srv.Close()

	token, err := common.GenerateToken("alice", time.Hour)
	require.NoError(t, err)

	dialWS(t, srv, token)

	require.Eventually(t, func() bool {
		return registry.SessionCount("alice") == 1
	}, 2*time.Second, 10*time.Millisecond)

	// the client never reads, so pings go unanswered; the read deadline
	// expires and the session is closed and detached
	require.Eventually(t, func() bool {
		return registry.SessionCount("alice") == 0
	}, 4*time.Second, 25*time.Millisecond)
}

func TestServeSystemMessages_AnonymousClosedWith4401(t *testing.T) {
	common.SetSecret([]byte("test-secret"))
	handler := NewHandler(NewRegistry(), testConfig())

	srv := httptest.NewServer(http.HandlerFunc(handler.ServeSystemMessages))
	defer srv.Close()

	tests := []struct {
		name  string
		token string
	}{
		{name: "missing token", token: ""},
		{name: "garbage token", token: "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := dialWS(t, srv, tt.token)

			conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			_, _, err := conn.ReadMessage()
			require.Error(t, err)

			closeErr, ok := err.(*websocket.CloseError)
			require.True(t, ok, "expected a close frame, got %v", err)
			assert.Equal(t, CloseUnauthorized, closeErr.Code)
		})
	}
}

func TestServeSystemMessages_ForgedTokenIsAnonymous(t *testing.T) {
	common.SetSecret([]byte("other-secret"))
	forged, err := common.GenerateToken("alice", time.Hour)
	require.NoError(t, err)
	common.SetSecret([]byte("test-secret"))

	handler := NewHandler(NewRegistry(), testConfig())
	srv := httptest.NewServer(http.HandlerFunc(handler.ServeSystemMessages))
	defer srv.Close()

	conn := dialWS(t, srv, forged)

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)

	closeErr, ok := err.(*websocket.CloseError)
	require.True(t, ok)
	assert.Equal(t, CloseUnauthorized, closeErr.Code)
}

func TestServeEcho(t *testing.T) {
	common.SetSecret([]byte("test-secret"))
	handler := NewHandler(NewRegistry(), testConfig())

	srv := httptest.NewServer(http.HandlerFunc(handler.ServeEcho))
	defer srv.Close()

	token, err := common.GenerateToken("alice", time.Hour)
	require.NoError(t, err)

	conn := dialWS(t, srv, token)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`{"ping":"pong"}`)))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var env common.Envelope
	require.NoError(t, conn.ReadJSON(&env))
	assert.Equal(t, common.EnvelopeEcho, env.Type)

	decoded, ok := env.Message.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "pong", decoded["ping"])
}
