package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/mwhitford/deskchat/internal/api/middleware"
	"github.com/mwhitford/deskchat/internal/domain"
	"github.com/mwhitford/deskchat/internal/service"
)

type MessageHandler struct {
	chatService *service.ChatService
}

func NewMessageHandler(chatService *service.ChatService) *MessageHandler {
	return &MessageHandler{chatService: chatService}
}

type MessageResponse struct {
	ID         uint   `json:"id"`
	SenderID   uint   `json:"senderId"`
	ReceiverID uint   `json:"receiverId"`
	Content    string `json:"content"`
	CreatedAt  int64  `json:"createdAt"`
}

func newMessageResponse(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		Content:    m.Content,
		CreatedAt:  m.CreatedAt.UnixMilli(),
	}
}

// History returns the caller's conversation with another user, oldest
// message first. A reconnecting client uses this to catch up on
// anything sent while it was offline.
func (h *MessageHandler) History(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	otherID, err := strconv.ParseUint(chi.URLParam(r, "userID"), 10, 32)
	if err != nil {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return
	}

	messages, err := h.chatService.History(r.Context(), user.ID, uint(otherID))
	if err != nil {
		log.Printf("ERROR [messages.History] %v", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	resp := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		resp = append(resp, newMessageResponse(m))
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
