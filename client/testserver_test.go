package client

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"kazhutha/protocol"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// gameServer stands in for the real game server's push channel. It
// records every socket opened against it and lets tests push frames or
// drop the line under the client's feet.
type gameServer struct {
	srv       *httptest.Server
	connected chan *serverConn

	mu    sync.Mutex
	conns []*serverConn
}

type serverConn struct {
	identity string
	ws       *websocket.Conn
	received chan string
}

func newGameServer(t *testing.T) *gameServer {
	t.Helper()

	g := &gameServer{connected: make(chan *serverConn, 8)}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws/", g.handleWS)
	g.srv = httptest.NewServer(mux)
	t.Cleanup(g.srv.Close)

	return g
}

func (g *gameServer) handleWS(w http.ResponseWriter, r *http.Request) {
	ws, err := testUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	conn := &serverConn{
		identity: strings.TrimPrefix(r.URL.Path, "/ws/"),
		ws:       ws,
		received: make(chan string, 8),
	}

	go func() {
		for {
			_, data, err := ws.ReadMessage()
			if err != nil {
				close(conn.received)
				return
			}
			conn.received <- string(data)
		}
	}()

	g.mu.Lock()
	g.conns = append(g.conns, conn)
	g.mu.Unlock()

	g.connected <- conn
}

// config returns a Config pointing at the test server, with a short
// retry interval so reconnection tests stay fast
func (g *gameServer) config() Config {
	return Config{
		ServerHost:     strings.TrimPrefix(g.srv.URL, "http://"),
		Insecure:       true,
		RetryInterval:  50 * time.Millisecond,
		RequestTimeout: 2 * time.Second,
	}
}

func (g *gameServer) waitForConn(t *testing.T, within time.Duration) *serverConn {
	t.Helper()

	select {
	case conn := <-g.connected:
		return conn
	case <-time.After(within):
		t.Fatal("timed out waiting for the client to connect")
		return nil
	}
}

func (g *gameServer) expectNoConn(t *testing.T, within time.Duration) {
	t.Helper()

	select {
	case <-g.connected:
		t.Fatal("expected no further connections")
	case <-time.After(within):
	}
}

func (c *serverConn) push(t *testing.T, frame string) {
	t.Helper()

	if err := c.ws.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
		t.Fatalf("could not push frame: %s", err.Error())
	}
}

func (c *serverConn) drop() {
	c.ws.Close()
}

func (c *serverConn) expectText(t *testing.T, want string, within time.Duration) {
	t.Helper()

	select {
	case got, ok := <-c.received:
		if !ok {
			t.Fatal("connection closed before the expected text arrived")
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	case <-time.After(within):
		t.Fatalf("timed out waiting for %q", want)
	}
}

// chanSink collects dispatched events for assertions
type chanSink struct {
	events chan protocol.Event
}

func newChanSink() *chanSink {
	return &chanSink{events: make(chan protocol.Event, 8)}
}

func (s *chanSink) HandleEvent(event protocol.Event) {
	s.events <- event
}

func (s *chanSink) expectEvent(t *testing.T, want protocol.EventType, within time.Duration) protocol.Event {
	t.Helper()

	select {
	case event := <-s.events:
		if event.Type != want {
			t.Errorf("got event %q, want %q", event.Type, want)
		}
		return event
	case <-time.After(within):
		t.Fatalf("timed out waiting for a %q event", want)
		return protocol.Event{}
	}
}

func (s *chanSink) expectNoEvent(t *testing.T, within time.Duration) {
	t.Helper()

	select {
	case event := <-s.events:
		t.Fatalf("expected no event, got %q", event.Type)
	case <-time.After(within):
	}
}
