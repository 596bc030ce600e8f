package service

import (
	"context"
	"errors"
	"strings"

	"github.com/mwhitford/deskchat/internal/domain"
	"github.com/mwhitford/deskchat/internal/repository"
	"gorm.io/gorm"
)

type DirectoryService struct {
	userRepo repository.UserRepository
}

func NewDirectoryService(userRepo repository.UserRepository) *DirectoryService {
	return &DirectoryService{userRepo: userRepo}
}

// ListExcept returns every user except the given one, for the directory
// page.
func (s *DirectoryService) ListExcept(ctx context.Context, excludeID uint) ([]*domain.User, error) {
	return s.userRepo.ListExcept(ctx, excludeID)
}

// Search matches the query as a case-insensitive substring of a user's
// name or interests. An empty query behaves like ListExcept.
func (s *DirectoryService) Search(ctx context.Context, query string, excludeID uint) ([]*domain.User, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.userRepo.ListExcept(ctx, excludeID)
	}
	return s.userRepo.Search(ctx, query, excludeID)
}

// AddInterest appends a tag to the user's interests and persists the
// result.
func (s *DirectoryService) AddInterest(ctx context.Context, userID uint, interest string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	user.AddInterest(interest)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
