package service

import (
	"context"
	"strings"

	"github.com/mwhitford/deskchat/internal/domain"
	"github.com/mwhitford/deskchat/internal/repository"
)

type ChatService struct {
	messageRepo repository.MessageRepository
}

func NewChatService(messageRepo repository.MessageRepository) *ChatService {
	return &ChatService{messageRepo: messageRepo}
}

// Append persists one chat message. Blank content is rejected before
// anything is written.
func (s *ChatService) Append(ctx context.Context, senderID, receiverID uint, content string) (*domain.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domain.ErrEmptyContent
	}

	message := &domain.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
	}

	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// History returns the full conversation between two users, oldest
// first. The result is the same whichever way round the ids are given.
func (s *ChatService) History(ctx context.Context, userA, userB uint) ([]*domain.Message, error) {
	return s.messageRepo.GetConversation(ctx, userA, userB)
}
