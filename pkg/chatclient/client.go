// Package chatclient manages a client's relay connection: it connects with
// the user's identity, reconnects with exponential backoff after unexpected
// closes, queues outbound envelopes while disconnected, and keeps the
// connection alive with periodic pings.
package chatclient

import (
	"encoding/json"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"studenthub/models"
	"studenthub/pkg/relay"
)

// State of the connection manager.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	default:
		return "disconnected"
	}
}

// SendMessageData is the payload for a chat message send.
type SendMessageData struct {
	ConversationID string
	SenderID       string
	Content        string
	MessageType    string
}

// Options configures a Client. Zero values fall back to the defaults noted
// per field. The On* callbacks run on the read goroutine and hand inbound
// envelopes to whatever keeps the UI's data fresh.
type Options struct {
	URL                  string        // relay endpoint, e.g. ws://host/ws
	BaseReconnectDelay   time.Duration // default 1s
	MaxReconnectAttempts int           // default 5
	PingInterval         time.Duration // default 30s
	Dialer               *websocket.Dialer

	OnNewMessage  func(*models.Message)
	OnMessageSent func(*models.Message)
	OnPong        func()
	OnError       func(string)
}

// Client is safe for concurrent use. Construct one per signed-in user and
// tear it down with Disconnect on sign-out; there is deliberately no
// package-level instance.
type Client struct {
	opts Options

	mu       sync.Mutex
	state    State
	userID   string
	ws       *websocket.Conn
	queue    []relay.Inbound
	attempts int
	pingStop chan struct{}
	retry    *time.Timer

	wmu sync.Mutex // serializes writes to the active socket
}

func New(opts Options) *Client {
	if opts.BaseReconnectDelay <= 0 {
		opts.BaseReconnectDelay = time.Second
	}
	if opts.MaxReconnectAttempts <= 0 {
		opts.MaxReconnectAttempts = 5
	}
	if opts.PingInterval <= 0 {
		opts.PingInterval = 30 * time.Second
	}
	return &Client{opts: opts}
}

// Connect establishes the relay connection for userID. It is a no-op when
// the connection is already open or being opened. On success the reconnect
// counter resets and any envelopes queued while disconnected are flushed in
// FIFO order before newly issued sends.
func (c *Client) Connect(userID string) error {
	c.mu.Lock()
	if c.state == StateOpen || c.state == StateConnecting {
		c.mu.Unlock()
		return nil
	}
	c.userID = userID
	c.state = StateConnecting
	c.mu.Unlock()

	target, err := wsURL(c.opts.URL, userID)
	if err != nil {
		c.mu.Lock()
		c.state = StateDisconnected
		c.mu.Unlock()
		return err
	}

	dialer := c.opts.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}
	ws, resp, err := dialer.Dial(target, nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		log.Printf("[chatclient] connect failed: %v", err)
		c.mu.Lock()
		c.state = StateDisconnected
		c.scheduleReconnectLocked()
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	if c.userID != userID || c.state != StateConnecting {
		// Disconnect happened while dialing
		c.mu.Unlock()
		_ = ws.Close()
		return nil
	}
	c.ws = ws
	c.state = StateOpen
	c.attempts = 0
	stop := make(chan struct{})
	c.pingStop = stop
	pending := c.queue
	c.queue = nil
	// hold the write lock across the flush so concurrent sends line up
	// behind the queued envelopes
	c.wmu.Lock()
	c.mu.Unlock()

	go c.readLoop(ws)
	go c.heartbeat(ws, stop)

	for _, env := range pending {
		if err := ws.WriteJSON(env); err != nil {
			log.Printf("[chatclient] queue flush failed: %v", err)
			break
		}
	}
	c.wmu.Unlock()

	log.Printf("[chatclient] connected as %q", userID)
	return nil
}

// SendMessage sends a chat message, queueing it when disconnected.
func (c *Client) SendMessage(data SendMessageData) {
	c.Send(relay.Inbound{
		Type:           relay.TypeSendMessage,
		ConversationID: data.ConversationID,
		SenderID:       data.SenderID,
		Content:        data.Content,
		MessageType:    data.MessageType,
	})
}

// Send transmits the envelope immediately when open, otherwise appends it
// to the outbound queue for the next successful connect. FIFO order holds
// within this client only.
func (c *Client) Send(env relay.Inbound) {
	c.mu.Lock()
	if c.state == StateOpen && c.ws != nil {
		ws := c.ws
		c.mu.Unlock()
		if err := c.write(ws, env); err != nil {
			log.Printf("[chatclient] send failed: %v", err)
		}
		return
	}
	c.queue = append(c.queue, env)
	c.mu.Unlock()
	log.Printf("[chatclient] not connected; envelope queued")
}

// Disconnect tears the connection down intentionally: it clears the user
// identity, drops the outbound queue, stops timers, and closes with a
// normal-closure frame so no reconnect is attempted.
func (c *Client) Disconnect() {
	c.mu.Lock()
	c.userID = ""
	c.queue = nil
	c.state = StateDisconnected
	c.stopHeartbeatLocked()
	if c.retry != nil {
		c.retry.Stop()
		c.retry = nil
	}
	ws := c.ws
	c.ws = nil
	c.mu.Unlock()

	if ws != nil {
		_ = ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "user disconnected"),
			time.Now().Add(time.Second))
		_ = ws.Close()
	}
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// IsConnected reports whether the connection is open.
func (c *Client) IsConnected() bool {
	return c.State() == StateOpen
}

func (c *Client) readLoop(ws *websocket.Conn) {
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			c.connLost(ws, err)
			return
		}
		c.dispatch(data)
	}
}

func (c *Client) dispatch(data []byte) {
	var env relay.Outbound
	if err := json.Unmarshal(data, &env); err != nil {
		log.Printf("[chatclient] malformed envelope: %v", err)
		return
	}
	switch env.Type {
	case relay.TypeNewMessage:
		if c.opts.OnNewMessage != nil && env.Message != nil {
			c.opts.OnNewMessage(env.Message)
		}
	case relay.TypeMessageSent:
		if c.opts.OnMessageSent != nil && env.Message != nil {
			c.opts.OnMessageSent(env.Message)
		}
	case relay.TypePong:
		if c.opts.OnPong != nil {
			c.opts.OnPong()
		}
	case relay.TypeError:
		log.Printf("[chatclient] server error: %s", env.Error)
		if c.opts.OnError != nil {
			c.opts.OnError(env.Error)
		}
	default:
		log.Printf("[chatclient] unknown envelope type %q", env.Type)
	}
}

// connLost handles the end of a connection's read loop. A close caused by
// Disconnect has already cleared the user id, which suppresses reconnect.
func (c *Client) connLost(ws *websocket.Conn, err error) {
	c.mu.Lock()
	if c.ws != ws {
		// a newer connection already took over
		c.mu.Unlock()
		return
	}
	c.ws = nil
	c.state = StateDisconnected
	c.stopHeartbeatLocked()
	if c.userID != "" {
		log.Printf("[chatclient] connection lost: %v", err)
		c.scheduleReconnectLocked()
	}
	c.mu.Unlock()
	_ = ws.Close()
}

// scheduleReconnectLocked arms the next reconnect attempt; caller holds
// c.mu. After MaxReconnectAttempts the client stays disconnected until
// Connect is called explicitly.
func (c *Client) scheduleReconnectLocked() {
	if c.attempts >= c.opts.MaxReconnectAttempts {
		log.Printf("[chatclient] max reconnect attempts reached; giving up")
		return
	}
	c.attempts++
	delay := reconnectDelay(c.opts.BaseReconnectDelay, c.attempts)
	log.Printf("[chatclient] reconnecting in %v (attempt %d)", delay, c.attempts)
	c.retry = time.AfterFunc(delay, func() {
		c.mu.Lock()
		uid := c.userID
		st := c.state
		c.mu.Unlock()
		if uid != "" && st == StateDisconnected {
			_ = c.Connect(uid)
		}
	})
}

// reconnectDelay doubles the base delay for every attempt after the first.
func reconnectDelay(base time.Duration, attempt int) time.Duration {
	return base << (attempt - 1)
}

func (c *Client) heartbeat(ws *websocket.Conn, stop chan struct{}) {
	t := time.NewTicker(c.opts.PingInterval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			if err := c.write(ws, relay.Inbound{Type: relay.TypePing}); err != nil {
				return
			}
		}
	}
}

// stopHeartbeatLocked stops the ping goroutine; caller holds c.mu.
func (c *Client) stopHeartbeatLocked() {
	if c.pingStop != nil {
		close(c.pingStop)
		c.pingStop = nil
	}
}

func (c *Client) write(ws *websocket.Conn, env relay.Inbound) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	return ws.WriteJSON(env)
}

func wsURL(base, userID string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("userId", userID)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
