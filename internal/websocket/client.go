package websocket

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/mwhitford/deskchat/internal/service"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024
	outboxSize     = 256
)

// Client drives one authenticated chat connection: a read pump that
// validates, persists, and routes inbound events, and a write pump that
// drains the outbox.
type Client struct {
	registry *Registry
	chat     *service.ChatService
	conn     *websocket.Conn
	send     chan []byte
	userID   uint
	connID   uuid.UUID
}

func NewClient(registry *Registry, chat *service.ChatService, conn *websocket.Conn, userID uint) *Client {
	return &Client{
		registry: registry,
		chat:     chat,
		conn:     conn,
		send:     make(chan []byte, outboxSize),
		userID:   userID,
		connID:   uuid.New(),
	}
}

// UserID returns the authenticated identity this connection belongs to.
func (c *Client) UserID() uint {
	return c.userID
}

// ReadPump consumes inbound events until the transport drops. Each
// well-formed event is persisted before routing is attempted; malformed
// events are dropped and the connection stays open.
func (c *Client) ReadPump() {
	defer func() {
		c.registry.Unregister(c.userID, c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("websocket: connection %s read error: %v", c.connID, err)
			}
			break
		}

		var event ChatEvent
		if err := json.Unmarshal(data, &event); err != nil {
			log.Printf("websocket: connection %s dropped undecodable event: %v", c.connID, err)
			continue
		}

		c.handleEvent(&event)
	}
}

// WritePump drains the outbox onto the wire and keeps the connection
// alive with periodic pings.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (c *Client) handleEvent(event *ChatEvent) {
	if !event.Valid() {
		log.Printf("websocket: connection %s dropped malformed event", c.connID)
		return
	}

	// A connection may only send as its authenticated user.
	if event.SenderID != c.userID {
		log.Printf("websocket: connection %s dropped event with spoofed sender %d (user %d)",
			c.connID, event.SenderID, c.userID)
		return
	}

	// Background context: a disconnect racing this handler must not
	// cancel a write for an event already accepted.
	msg, err := c.chat.Append(context.Background(), event.SenderID, event.ReceiverID, event.Content)
	if err != nil {
		log.Printf("ERROR [websocket] connection %s failed to persist message: %v", c.connID, err)
		return
	}

	payload, err := json.Marshal(ChatEvent{
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Content:    msg.Content,
	})
	if err != nil {
		log.Printf("ERROR [websocket] failed to marshal event: %v", err)
		return
	}

	// Fire and forget: an offline receiver reads the message from
	// history on their next page load.
	c.registry.Route(event.ReceiverID, payload)
}

// enqueue offers the payload to the outbox without blocking.
func (c *Client) enqueue(payload []byte) bool {
	select {
	case c.send <- payload:
		return true
	default:
		return false
	}
}
