package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/mwhitford/deskchat/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	name       string
	email      string
	password   string
	department string
	bio        string
	interests  string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		name:       fmt.Sprintf("Test User %s", suffix),
		email:      fmt.Sprintf("testuser_%s@example.com", suffix),
		password:   "testpassword123",
		department: "Engineering",
	}
}

// WithName sets the display name
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.name = name
	return b
}

// WithEmail sets the email
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

// WithPassword sets the password
func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// WithDepartment sets the department
func (b *UserBuilder) WithDepartment(department string) *UserBuilder {
	b.department = department
	return b
}

// WithInterests sets the delimited interests string
func (b *UserBuilder) WithInterests(interests string) *UserBuilder {
	b.interests = interests
	return b
}

// Build creates the user in the database and returns the user with the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		Name:         b.name,
		Email:        b.email,
		PasswordHash: string(hashedPassword),
		Department:   b.department,
		Bio:          b.bio,
		Interests:    b.interests,
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// BuildAndAuthenticate creates a user via the API and returns the user
// plus its session token.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, string) {
	t.Helper()

	reqBody := map[string]string{
		"name":       b.name,
		"email":      b.email,
		"password":   b.password,
		"department": b.department,
		"bio":        b.bio,
		"interests":  b.interests,
	}
	body, _ := json.Marshal(reqBody)

	resp, err := http.Post(ts.APIURL("/auth/register"), "application/json", bytes.NewBuffer(body))
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}

	var userResp struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&userResp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	var token string
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "session_token" {
			token = cookie.Value
		}
	}
	if token == "" {
		t.Fatal("register response did not set a session cookie")
	}

	return &domain.User{
		ID:    userResp.ID,
		Name:  userResp.Name,
		Email: userResp.Email,
	}, token
}
