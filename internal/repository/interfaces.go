package repository

import (
	"context"

	"github.com/mwhitford/deskchat/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByToken(ctx context.Context, token string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	ListExcept(ctx context.Context, excludeID uint) ([]*domain.User, error)
	Search(ctx context.Context, query string, excludeID uint) ([]*domain.User, error)
}

type MessageRepository interface {
	Create(ctx context.Context, message *domain.Message) error
	GetConversation(ctx context.Context, userA, userB uint) ([]*domain.Message, error)
}

type Repositories struct {
	User    UserRepository
	Message MessageRepository
}
