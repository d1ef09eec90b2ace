// Package auth provides token-based authentication for the API edge.
// User registration and session management live outside this service; it
// only mints tokens for tests and validates bearer tokens on requests.
package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common authentication errors
var (
	// ErrInvalidToken is returned when a token fails signature or format validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token's expiry time has passed.
	ErrExpiredToken = errors.New("token expired")
)

// JWTService defines operations for managing JWT authentication tokens.
type JWTService interface {
	// GenerateToken creates a signed JWT access token for the given owner.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, ownerID uuid.UUID) (string, error)

	// ValidateToken validates the provided token string and extracts the
	// claims. Returns ErrExpiredToken or ErrInvalidToken on failure.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims carries the application-level claims extracted from a validated token.
type Claims struct {
	// OwnerID is the unique identifier of the learner the token was issued for.
	OwnerID uuid.UUID
}
