package relay

import (
	"errors"
	"sync"

	"github.com/gorilla/websocket"
)

// ErrClosed is returned when writing to a connection that has been closed.
var ErrClosed = errors.New("relay: connection closed")

// Conn wraps a websocket connection with a write lock. A recipient's
// connection is written to both by its own handler goroutine (pongs, acks)
// and by other senders' handlers (forwarded messages); gorilla permits only
// one concurrent writer.
type Conn struct {
	ws *websocket.Conn

	mu     sync.Mutex
	closed bool
}

func NewConn(ws *websocket.Conn) *Conn {
	return &Conn{ws: ws}
}

// WriteJSON sends v as a single JSON frame.
func (c *Conn) WriteJSON(v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	return c.ws.WriteJSON(v)
}

// Open reports whether the connection has not been closed locally. A true
// result is best effort; the peer may already be gone until the next write
// fails.
func (c *Conn) Open() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed
}

// Close marks the connection closed and closes the underlying socket.
// Subsequent writes return ErrClosed.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	if c.ws != nil {
		return c.ws.Close()
	}
	return nil
}
