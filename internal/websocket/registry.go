package websocket

import (
	"log"
	"sync"
)

// Registry maps a user id to that user's single live connection. It is
// constructed once at server start and shared by every connection
// handler.
type Registry struct {
	mu      sync.RWMutex
	clients map[uint]*Client
}

func NewRegistry() *Registry {
	return &Registry{
		clients: make(map[uint]*Client),
	}
}

// Register stores the client as the user's live connection. An existing
// entry for the same user is replaced; the old handle is dropped but
// not closed, since its own pumps tear it down on disconnect.
func (r *Registry) Register(userID uint, client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.clients[userID]; ok && old != client {
		log.Printf("registry: replacing connection %s for user %d", old.connID, userID)
	}
	r.clients[userID] = client
}

// Unregister removes the user's entry only if it still points at the
// given client. A disconnect from an already-replaced connection must
// not evict the replacement.
func (r *Registry) Unregister(userID uint, client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if current, ok := r.clients[userID]; ok && current == client {
		delete(r.clients, userID)
	}
}

// Route hands the payload to the receiver's connection if one is
// registered. Returns false when the receiver is offline. The enqueue
// never blocks: a receiver with a full outbox loses the push, which is
// acceptable because the message is already durable by the time Route
// is called.
func (r *Registry) Route(receiverID uint, payload []byte) bool {
	r.mu.RLock()
	client, ok := r.clients[receiverID]
	r.mu.RUnlock()

	if !ok {
		return false
	}

	if !client.enqueue(payload) {
		log.Printf("registry: dropped push to user %d, connection %s outbox full", receiverID, client.connID)
	}
	return true
}

// Connected reports whether the user currently has a live connection.
func (r *Registry) Connected(userID uint) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.clients[userID]
	return ok
}
