package domain

import "errors"

// Account errors
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid session token")
	ErrUserNotFound       = errors.New("user not found")
)

// Messaging errors
var (
	ErrEmptyContent = errors.New("message content is empty")
)
