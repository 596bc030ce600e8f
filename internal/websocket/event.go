package websocket

import "strings"

// ChatEvent is the wire format exchanged over a chat connection, in
// both directions.
type ChatEvent struct {
	SenderID   uint   `json:"sender_id"`
	ReceiverID uint   `json:"receiver_id"`
	Content    string `json:"content"`
}

// Valid reports whether the event carries every required field. Zero
// ids and blank content count as missing.
func (e *ChatEvent) Valid() bool {
	return e.SenderID != 0 && e.ReceiverID != 0 && strings.TrimSpace(e.Content) != ""
}
