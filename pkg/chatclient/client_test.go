package chatclient

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"studenthub/models"
	"studenthub/pkg/relay"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// captureServer accepts relay connections, counts handshakes, and streams
// every inbound envelope into inbox.
type captureServer struct {
	srv      *httptest.Server
	dials    atomic.Int64
	inbox    chan relay.Inbound
	sessions chan *websocket.Conn
}

func newCaptureServer(t *testing.T) *captureServer {
	t.Helper()
	cs := &captureServer{
		inbox:    make(chan relay.Inbound, 64),
		sessions: make(chan *websocket.Conn, 16),
	}
	cs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		cs.dials.Add(1)
		cs.sessions <- ws
		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				return
			}
			var env relay.Inbound
			if json.Unmarshal(data, &env) == nil {
				cs.inbox <- env
			}
		}
	}))
	t.Cleanup(cs.srv.Close)
	return cs
}

func (cs *captureServer) wsURL() string {
	return "ws" + strings.TrimPrefix(cs.srv.URL, "http") + "/ws"
}

func (cs *captureServer) nextEnvelope(t *testing.T) relay.Inbound {
	t.Helper()
	select {
	case env := <-cs.inbox:
		return env
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for envelope")
		return relay.Inbound{}
	}
}

func waitFor(t *testing.T, cond func() bool, what string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func TestConnectIsNoOpWhenOpen(t *testing.T) {
	cs := newCaptureServer(t)
	c := New(Options{URL: cs.wsURL()})
	defer c.Disconnect()

	if err := c.Connect("u1"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := c.Connect("u1"); err != nil {
		t.Fatalf("second connect: %v", err)
	}
	waitFor(t, func() bool { return c.IsConnected() }, "open state")
	if n := cs.dials.Load(); n != 1 {
		t.Fatalf("expected one handshake, got %d", n)
	}
}

func TestQueueWhileDisconnectedFlushesInOrder(t *testing.T) {
	cs := newCaptureServer(t)
	c := New(Options{URL: cs.wsURL()})
	defer c.Disconnect()

	c.SendMessage(SendMessageData{ConversationID: "c1", SenderID: "u1", Content: "first"})
	c.SendMessage(SendMessageData{ConversationID: "c1", SenderID: "u1", Content: "second"})
	if c.State() != StateDisconnected {
		t.Fatalf("expected disconnected state while queueing")
	}

	if err := c.Connect("u1"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	c.SendMessage(SendMessageData{ConversationID: "c1", SenderID: "u1", Content: "third"})

	for i, want := range []string{"first", "second", "third"} {
		env := cs.nextEnvelope(t)
		if env.Type != relay.TypeSendMessage || env.Content != want {
			t.Fatalf("envelope %d: expected %q, got type=%q content=%q", i, want, env.Type, env.Content)
		}
	}
}

func TestDispatchCallbacks(t *testing.T) {
	cs := newCaptureServer(t)

	newMsgs := make(chan *models.Message, 1)
	sentMsgs := make(chan *models.Message, 1)
	pongs := make(chan struct{}, 1)
	errs := make(chan string, 1)

	c := New(Options{
		URL:           cs.wsURL(),
		OnNewMessage:  func(m *models.Message) { newMsgs <- m },
		OnMessageSent: func(m *models.Message) { sentMsgs <- m },
		OnPong:        func() { pongs <- struct{}{} },
		OnError:       func(e string) { errs <- e },
	})
	defer c.Disconnect()

	if err := c.Connect("u1"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	ws := <-cs.sessions

	msg := &models.Message{ID: "m1", ConversationID: "c1", SenderID: "u2", Content: "hello"}
	for _, out := range []relay.Outbound{
		{Type: relay.TypeNewMessage, Message: msg},
		{Type: relay.TypeMessageSent, Message: msg},
		{Type: relay.TypePong},
		{Type: relay.TypeError, Error: "conversation not found"},
		{Type: "user_status_changed"}, // unknown: logged and ignored
	} {
		if err := ws.WriteJSON(out); err != nil {
			t.Fatalf("server write: %v", err)
		}
	}

	select {
	case m := <-newMsgs:
		if m.ID != "m1" {
			t.Fatalf("expected message m1, got %q", m.ID)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for new_message callback")
	}
	select {
	case <-sentMsgs:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for message_sent callback")
	}
	select {
	case <-pongs:
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for pong callback")
	}
	select {
	case e := <-errs:
		if e != "conversation not found" {
			t.Fatalf("unexpected error text %q", e)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for error callback")
	}
}

func TestHeartbeatPings(t *testing.T) {
	cs := newCaptureServer(t)
	c := New(Options{URL: cs.wsURL(), PingInterval: 30 * time.Millisecond})
	defer c.Disconnect()

	if err := c.Connect("u1"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	env := cs.nextEnvelope(t)
	if env.Type != relay.TypePing {
		t.Fatalf("expected ping, got %q", env.Type)
	}
}

func TestReconnectAfterUnexpectedClose(t *testing.T) {
	cs := newCaptureServer(t)
	c := New(Options{URL: cs.wsURL(), BaseReconnectDelay: 20 * time.Millisecond})
	defer c.Disconnect()

	if err := c.Connect("u1"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	ws := <-cs.sessions

	// abnormal close: no close frame
	_ = ws.Close()

	waitFor(t, func() bool { return cs.dials.Load() >= 2 }, "reconnect handshake")
	waitFor(t, func() bool { return c.IsConnected() }, "reopened state")
}

func TestNoReconnectAfterDisconnect(t *testing.T) {
	cs := newCaptureServer(t)
	c := New(Options{URL: cs.wsURL(), BaseReconnectDelay: 10 * time.Millisecond})

	if err := c.Connect("u1"); err != nil {
		t.Fatalf("connect: %v", err)
	}
	<-cs.sessions
	c.Disconnect()

	time.Sleep(100 * time.Millisecond)
	if n := cs.dials.Load(); n != 1 {
		t.Fatalf("expected no reconnect after Disconnect, got %d handshakes", n)
	}
	if c.State() != StateDisconnected {
		t.Fatalf("expected disconnected state")
	}
}

func TestReconnectGivesUpAfterCap(t *testing.T) {
	// server that never upgrades: every dial fails
	var dials atomic.Int64
	counting := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dials.Add(1)
		http.Error(w, "no", http.StatusServiceUnavailable)
	}))
	defer counting.Close()

	c := New(Options{
		URL:                  "ws" + strings.TrimPrefix(counting.URL, "http") + "/ws",
		BaseReconnectDelay:   5 * time.Millisecond,
		MaxReconnectAttempts: 3,
	})

	if err := c.Connect("u1"); err == nil {
		t.Fatalf("expected initial connect to fail")
	}

	// initial dial + 3 scheduled retries, then give up
	waitFor(t, func() bool { return dials.Load() >= 4 }, "retry dials")
	settled := dials.Load()
	time.Sleep(200 * time.Millisecond)
	if n := dials.Load(); n != settled || n != 4 {
		t.Fatalf("expected exactly 4 dials (1 initial + 3 retries), got %d", n)
	}
	if c.State() != StateDisconnected {
		t.Fatalf("expected terminal disconnected state")
	}
}

func TestReconnectDelayDoubles(t *testing.T) {
	base := time.Second
	want := []time.Duration{
		1 * time.Second,
		2 * time.Second,
		4 * time.Second,
		8 * time.Second,
		16 * time.Second,
	}
	for i, w := range want {
		if got := reconnectDelay(base, i+1); got != w {
			t.Fatalf("attempt %d: expected %v, got %v", i+1, w, got)
		}
	}
}
