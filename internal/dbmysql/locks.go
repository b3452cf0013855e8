package dbmysql

import (
	"sync"
)

// ConvLocks hands out the per-conversation writer lock. Touch, appends and
// membership changes serialize under it; readers never take it.
type ConvLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewConvLocks() *ConvLocks {
	return &ConvLocks{locks: make(map[string]*sync.Mutex)}
}

// Get returns the writer lock for a conversation id.
func (c *ConvLocks) Get(conversationID string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()

	l, ok := c.locks[conversationID]
	if !ok {
		l = &sync.Mutex{}
		c.locks[conversationID] = l
	}
	return l
}
