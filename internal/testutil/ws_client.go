package testutil

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	gorillaWS "github.com/gorilla/websocket"
	"github.com/mwhitford/deskchat/internal/websocket"
)

// WSClient is a test WebSocket client
type WSClient struct {
	t      *testing.T
	conn   *gorillaWS.Conn
	events chan *websocket.ChatEvent
	errors chan error
	done   chan struct{}
	mu     sync.Mutex
}

// NewWSClient connects a test client to the given websocket URL
func NewWSClient(t *testing.T, url string) *WSClient {
	t.Helper()

	client, err := DialWS(t, url)
	if err != nil {
		t.Fatalf("failed to connect to websocket: %v", err)
	}
	return client
}

// DialWS attempts the websocket handshake, returning the error so tests
// can assert on rejected handshakes.
func DialWS(t *testing.T, url string) (*WSClient, error) {
	t.Helper()

	dialer := gorillaWS.DefaultDialer
	dialer.HandshakeTimeout = 5 * time.Second

	conn, _, err := dialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}

	client := &WSClient{
		t:      t,
		conn:   conn,
		events: make(chan *websocket.ChatEvent, 100),
		errors: make(chan error, 10),
		done:   make(chan struct{}),
	}

	go client.readPump()

	t.Cleanup(func() {
		client.Close()
	})

	return client, nil
}

// readPump reads events from the WebSocket connection
func (c *WSClient) readPump() {
	defer close(c.events)
	for {
		select {
		case <-c.done:
			return
		default:
			_, data, err := c.conn.ReadMessage()
			if err != nil {
				select {
				case <-c.done:
					return
				case c.errors <- err:
				}
				return
			}

			var event websocket.ChatEvent
			if err := json.Unmarshal(data, &event); err != nil {
				c.errors <- err
				continue
			}

			select {
			case c.events <- &event:
			case <-c.done:
				return
			}
		}
	}
}

// Send writes a chat event to the connection
func (c *WSClient) Send(event websocket.ChatEvent) {
	c.t.Helper()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.WriteJSON(event); err != nil {
		c.t.Fatalf("failed to send event: %v", err)
	}
}

// SendRaw writes an arbitrary payload, for malformed-event tests
func (c *WSClient) SendRaw(payload []byte) {
	c.t.Helper()

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.WriteMessage(gorillaWS.TextMessage, payload); err != nil {
		c.t.Fatalf("failed to send payload: %v", err)
	}
}

// WaitForEvent blocks until an event arrives or the timeout elapses
func (c *WSClient) WaitForEvent(timeout time.Duration) *websocket.ChatEvent {
	c.t.Helper()

	select {
	case event, ok := <-c.events:
		if !ok {
			c.t.Fatal("websocket closed while waiting for event")
		}
		return event
	case err := <-c.errors:
		c.t.Fatalf("websocket error while waiting for event: %v", err)
	case <-time.After(timeout):
		c.t.Fatal("timed out waiting for event")
	}
	return nil
}

// ExpectNoEvent asserts that nothing arrives within the window
func (c *WSClient) ExpectNoEvent(window time.Duration) {
	c.t.Helper()

	select {
	case event := <-c.events:
		c.t.Fatalf("unexpected event: %+v", event)
	case <-time.After(window):
	}
}

// Close closes the WebSocket connection gracefully
func (c *WSClient) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	select {
	case <-c.done:
		return
	default:
		close(c.done)
		c.conn.WriteMessage(gorillaWS.CloseMessage, gorillaWS.FormatCloseMessage(gorillaWS.CloseNormalClosure, ""))
		c.conn.Close()
	}
}
