package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"github.com/mwhitford/deskchat/internal/domain"
	"github.com/mwhitford/deskchat/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const sessionTokenBytes = 32

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Department string
	Bio        string
	Interests  string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResult struct {
	User  *domain.User
	Token string
}

// Register creates the user and immediately issues a session token, the
// same as a successful login.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*AuthResult, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		Department:   input.Department,
		Bio:          input.Bio,
		Interests:    input.Interests,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	return s.issueToken(ctx, user)
}

// issueToken rotates the user's session token. Any previously issued
// token stops validating as soon as the new one is persisted.
func (s *AuthService) issueToken(ctx context.Context, user *domain.User) (*AuthResult, error) {
	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	user.SessionToken = token
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// Validate resolves a session token to its user. Empty and unknown
// tokens both come back as ErrInvalidToken.
func (s *AuthService) Validate(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, domain.ErrInvalidToken
	}
	user, err := s.userRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidToken
		}
		return nil, err
	}
	return user, nil
}

// Logout clears the token's session. Unknown or already-cleared tokens
// are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	user, err := s.userRepo.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	user.SessionToken = ""
	return s.userRepo.Update(ctx, user)
}

// EmailExists backs the entry form's login-or-register routing step.
func (s *AuthService) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id uint) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func generateToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
