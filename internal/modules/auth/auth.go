package auth

import (
	"context"
	"errors"
)

var (
	// ErrInvalidCredentials is returned when the email or password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned for a missing, malformed or expired token.
	ErrInvalidToken = errors.New("invalid token")
)

// Service defines the interface for authentication-related business logic.
type Service interface {
	// Login checks the administrator credentials and returns a signed token.
	Login(ctx context.Context, email, password string) (string, error)

	// Verify parses a token and returns its subject.
	Verify(ctx context.Context, token string) (string, error)
}

// Config holds the administrator account and the token signing key.
type Config struct {
	AdminEmail        string
	AdminPasswordHash string
	Secret            []byte
}
