package handlers

import (
	"log"
	"net/http"

	ws "github.com/gorilla/websocket"
	"github.com/mwhitford/deskchat/internal/api/middleware"
	"github.com/mwhitford/deskchat/internal/service"
	"github.com/mwhitford/deskchat/internal/websocket"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

type WebSocketHandler struct {
	registry    *websocket.Registry
	chatService *service.ChatService
	authService *service.AuthService
}

func NewWebSocketHandler(registry *websocket.Registry, chatService *service.ChatService, authService *service.AuthService) *WebSocketHandler {
	return &WebSocketHandler{
		registry:    registry,
		chatService: chatService,
		authService: authService,
	}
}

// Handle upgrades an authenticated request to a chat connection. The
// connection's identity comes from the session token, never from
// anything the client puts in the URL.
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	token := middleware.TokenFromRequest(r)
	if token == "" {
		token = r.URL.Query().Get("token")
	}
	if token == "" {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	user, err := h.authService.Validate(r.Context(), token)
	if err != nil {
		http.Error(w, "Invalid session", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ERROR [websocket.Handle] upgrade failed: %v", err)
		return
	}

	client := websocket.NewClient(h.registry, h.chatService, conn, user.ID)
	h.registry.Register(user.ID, client)

	go client.WritePump()
	go client.ReadPump()
}
