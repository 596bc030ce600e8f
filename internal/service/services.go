package service

import (
	"github.com/mwhitford/deskchat/internal/repository"
)

type Services struct {
	Auth      *AuthService
	Chat      *ChatService
	Directory *DirectoryService
}

func NewServices(repos *repository.Repositories) *Services {
	return &Services{
		Auth:      NewAuthService(repos.User),
		Chat:      NewChatService(repos.Message),
		Directory: NewDirectoryService(repos.User),
	}
}
