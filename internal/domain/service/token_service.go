package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims defines the claims embedded in a session token.
// A session token is stateless: its validity rests entirely on the
// signature and expiry, never on stored state.
type SessionClaims struct {
	AccountID uuid.UUID
	Email     string
	jwt.RegisteredClaims
}

// TokenService defines the interface for generating and validating signed tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// GenerateSessionToken creates a signed session token bound to an account
	// id and email, expiring after the configured session TTL.
	GenerateSessionToken(accountID uuid.UUID, email string) (string, error)

	// ValidateSessionToken checks the signature and expiry of a session token
	// and returns its claims.
	ValidateSessionToken(tokenString string) (*SessionClaims, error)

	// GenerateResetToken creates a signed password-reset token embedding the
	// target email, expiring after the configured reset TTL.
	GenerateResetToken(email string) (string, error)

	// ValidateResetToken checks the signature and expiry of a reset token and
	// returns the embedded email.
	ValidateResetToken(tokenString string) (string, error)

	// GenerateRefreshToken creates a long-lived opaque bearer value. It is not
	// signed; it is only honored while its exact value exists in the store.
	GenerateRefreshToken() (string, error)

	// SessionTokenDuration returns the configured session token lifetime.
	SessionTokenDuration() time.Duration
}
