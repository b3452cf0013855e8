package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"intrachat/internal/common"
	"intrachat/internal/config"
)

// CloseUnauthorized is the application close code for a failed handshake.
const CloseUnauthorized = 4401

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // CORS policy is open, same as the HTTP surface
}

type Handler struct {
	registry *Registry
	cfg      *config.Config
}

func NewHandler(registry *Registry, cfg *config.Config) *Handler {
	return &Handler{registry: registry, cfg: cfg}
}

// ServeSystemMessages is the mailbox channel. The handshake resolves the
// token query parameter; an anonymous result closes with 4401.
func (h *Handler) ServeSystemMessages(w http.ResponseWriter, r *http.Request) {
	userID := common.Resolve(r.URL.Query().Get("token"))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	if userID == common.Anonymous {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(CloseUnauthorized, "unauthorized"),
			time.Now().Add(writeWait))
		conn.Close()
		return
	}

	session := NewSession(h.registry, conn, userID, h.cfg.IdleTimeout(), h.cfg.Chat.SendBufferSize)
	h.registry.Attach(session)

	go session.WritePump()
	go session.ReadPump()
}

// ServeEcho is the development echo channel: every inbound text frame comes
// back wrapped in an echo envelope.
func (h *Handler) ServeEcho(w http.ResponseWriter, r *http.Request) {
	userID := common.Resolve(r.URL.Query().Get("token"))

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	if userID == common.Anonymous {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(CloseUnauthorized, "unauthorized"),
			time.Now().Add(writeWait))
		return
	}

	for {
		conn.SetReadDeadline(time.Now().Add(h.cfg.IdleTimeout()))
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var payload interface{} = string(data)
		var decoded map[string]interface{}
		if err := json.Unmarshal(data, &decoded); err == nil {
			payload = decoded
		}

		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(common.NewEnvelope(common.EnvelopeEcho, payload)); err != nil {
			return
		}
	}
}
