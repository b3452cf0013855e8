package ws

import (
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"intrachat/internal/common"
)

const writeWait = 10 * time.Second

// Session is one live websocket connection bound to a user's mailbox.
type Session struct {
	ID          string
	UserID      string
	ConnectedAt time.Time

	conn        *websocket.Conn
	send        chan common.Envelope
	done        chan struct{}
	idleTimeout time.Duration
	registry    *Registry
	closeOnce   sync.Once
}

func NewSession(registry *Registry, conn *websocket.Conn, userID string, idleTimeout time.Duration, bufferSize int) *Session {
	if bufferSize <= 0 {
		bufferSize = 16
	}
	return &Session{
		ID:          uuid.New().String(),
		UserID:      userID,
		ConnectedAt: time.Now(),
		conn:        conn,
		send:        make(chan common.Envelope, bufferSize),
		done:        make(chan struct{}),
		idleTimeout: idleTimeout,
		registry:    registry,
	}
}

// Enqueue offers an envelope to the session without blocking. A full buffer
// or a closed session refuses it.
func (s *Session) Enqueue(env common.Envelope) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.send <- env:
		return true
	default:
		return false
	}
}

func (s *Session) shutdown() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.conn.Close()
	})
}

// ReadPump consumes inbound frames until the peer goes away or stays idle
// past the timeout. Inbound frames on the mailbox channel are ignored; the
// reads exist to service control frames and liveness.
func (s *Session) ReadPump() {
	defer s.registry.Detach(s)

	s.conn.SetReadLimit(64 << 10)
	if err := s.conn.SetReadDeadline(time.Now().Add(s.idleTimeout)); err != nil {
		return
	}
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(s.idleTimeout))
	})

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
		if err := s.conn.SetReadDeadline(time.Now().Add(s.idleTimeout)); err != nil {
			return
		}
	}
}

// WritePump drains the send buffer in FIFO order and keeps the connection
// alive with pings.
func (s *Session) WritePump() {
	pingPeriod := s.idleTimeout * 9 / 10
	if pingPeriod <= 0 {
		pingPeriod = 54 * time.Second
	}
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.shutdown()
	}()

	for {
		select {
		case env := <-s.send:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(env); err != nil {
				log.Printf("session %s write failed: %v", s.ID, err)
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-s.done:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			s.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}
