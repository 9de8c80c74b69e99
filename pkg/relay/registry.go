package relay

import "sync"

// Registry maps an online user id to its live relay connection. It is
// ephemeral process-wide state: cleared on restart, and presence doubles as
// a best-effort "is this user online" answer.
//
// Register is last-write-wins: a fresh connection for a user replaces any
// prior entry. Unregister only removes the entry while it still points at
// the given connection, so the close of a superseded connection cannot
// evict its replacement.
type Registry struct {
	mu    sync.RWMutex
	conns map[string]*Conn
}

func NewRegistry() *Registry {
	return &Registry{conns: make(map[string]*Conn)}
}

func (r *Registry) Register(userID string, c *Conn) {
	if userID == "" || c == nil {
		return
	}
	r.mu.Lock()
	r.conns[userID] = c
	r.mu.Unlock()
}

func (r *Registry) Unregister(userID string, c *Conn) {
	r.mu.Lock()
	if cur, ok := r.conns[userID]; ok && cur == c {
		delete(r.conns, userID)
	}
	r.mu.Unlock()
}

func (r *Registry) Lookup(userID string) (*Conn, bool) {
	r.mu.RLock()
	c, ok := r.conns[userID]
	r.mu.RUnlock()
	return c, ok
}

// Online reports how many users currently have a registered connection.
func (r *Registry) Online() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
