package websocket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(userID uint) *Client {
	return &Client{
		send:   make(chan []byte, outboxSize),
		userID: userID,
		connID: uuid.New(),
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	registry := NewRegistry()

	oldConn := newTestClient(1)
	newConn := newTestClient(1)

	registry.Register(1, oldConn)
	registry.Register(1, newConn)

	delivered := registry.Route(1, []byte("hello"))
	assert.True(t, delivered)

	// Only the replacement receives; the evicted handle gets nothing
	select {
	case payload := <-newConn.send:
		assert.Equal(t, "hello", string(payload))
	default:
		t.Fatal("replacement connection did not receive the payload")
	}

	select {
	case <-oldConn.send:
		t.Fatal("evicted connection received a payload")
	default:
	}
}

func TestRegistry_UnregisterGuardsAgainstStaleDisconnect(t *testing.T) {
	registry := NewRegistry()

	oldConn := newTestClient(1)
	newConn := newTestClient(1)

	registry.Register(1, oldConn)
	registry.Register(1, newConn)

	// The replaced connection's disconnect arrives late; it must not
	// evict the replacement.
	registry.Unregister(1, oldConn)
	assert.True(t, registry.Connected(1))

	registry.Unregister(1, newConn)
	assert.False(t, registry.Connected(1))
}

func TestRegistry_RouteToAbsentUser(t *testing.T) {
	registry := NewRegistry()

	delivered := registry.Route(42, []byte("anyone there"))
	assert.False(t, delivered)
}

func TestRegistry_RouteDropsOnFullOutbox(t *testing.T) {
	registry := NewRegistry()

	client := newTestClient(1)
	registry.Register(1, client)

	for i := 0; i < outboxSize; i++ {
		require.True(t, registry.Route(1, []byte("fill")))
	}

	// The outbox is full: the push is dropped but the receiver still
	// counts as connected.
	delivered := registry.Route(1, []byte("overflow"))
	assert.True(t, delivered)
	assert.Len(t, client.send, outboxSize)
}

func TestRegistry_ConcurrentRegisterUnregister(t *testing.T) {
	registry := NewRegistry()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			c := newTestClient(1)
			registry.Register(1, c)
			registry.Unregister(1, c)
		}
	}()

	for i := 0; i < 1000; i++ {
		registry.Route(1, []byte("ping"))
	}
	<-done
}

func TestChatEvent_Valid(t *testing.T) {
	tests := []struct {
		name  string
		event ChatEvent
		want  bool
	}{
		{name: "complete event", event: ChatEvent{SenderID: 1, ReceiverID: 2, Content: "hi"}, want: true},
		{name: "missing sender", event: ChatEvent{ReceiverID: 2, Content: "hi"}, want: false},
		{name: "missing receiver", event: ChatEvent{SenderID: 1, Content: "hi"}, want: false},
		{name: "missing content", event: ChatEvent{SenderID: 1, ReceiverID: 2}, want: false},
		{name: "whitespace content", event: ChatEvent{SenderID: 1, ReceiverID: 2, Content: " \t"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.event.Valid())
		})
	}
}
