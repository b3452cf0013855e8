// Package ws holds the presence and subscription registry plus the
// websocket transport behind it. The registry is process-local; a
// cross-process fabric substitutes behind the common.Broadcaster interface.
package ws

import (
	"log"
	"sync"

	"intrachat/internal/common"
)

// Registry maps each user identifier to the set of live sessions in that
// user's mailbox.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]map[string]*Session // userID -> sessionID -> session

	listeners []common.AttachListener
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]map[string]*Session),
	}
}

// AddAttachListener registers a catch-up hook; call during wiring, before
// traffic.
func (r *Registry) AddAttachListener(l common.AttachListener) {
	r.listeners = append(r.listeners, l)
}

func (r *Registry) Attach(s *Session) {
	r.mu.Lock()
	mailbox, ok := r.sessions[s.UserID]
	if !ok {
		mailbox = make(map[string]*Session)
		r.sessions[s.UserID] = mailbox
	}
	mailbox[s.ID] = s
	r.mu.Unlock()

	log.Printf("session %s attached for user %s", s.ID, s.UserID)

	for _, l := range r.listeners {
		l.OnAttach(s.UserID)
	}
}

func (r *Registry) Detach(s *Session) {
	r.mu.Lock()
	if mailbox, ok := r.sessions[s.UserID]; ok {
		delete(mailbox, s.ID)
		if len(mailbox) == 0 {
			delete(r.sessions, s.UserID)
		}
	}
	r.mu.Unlock()

	s.shutdown()
	log.Printf("session %s detached for user %s", s.ID, s.UserID)
}

// Broadcast delivers an envelope to every live session of one mailbox,
// best-effort and at most once per session. A session that refuses the
// envelope is dropped and detached.
func (r *Registry) Broadcast(userID string, env common.Envelope) {
	r.mu.RLock()
	snapshot := make([]*Session, 0, len(r.sessions[userID]))
	for _, s := range r.sessions[userID] {
		snapshot = append(snapshot, s)
	}
	r.mu.RUnlock()

	for _, s := range snapshot {
		if !s.Enqueue(env) {
			log.Printf("session %s refused envelope, dropping session", s.ID)
			r.Detach(s)
		}
	}
}

func (r *Registry) BroadcastMany(userIDs []string, env common.Envelope) {
	for _, userID := range userIDs {
		r.Broadcast(userID, env)
	}
}

// SessionCount reports the number of live sessions in a mailbox.
func (r *Registry) SessionCount(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions[userID])
}

// TotalSessions reports the number of live sessions across all mailboxes.
func (r *Registry) TotalSessions() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	total := 0
	for _, mailbox := range r.sessions {
		total += len(mailbox)
	}
	return total
}
