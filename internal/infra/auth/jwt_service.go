// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"unica/config"
	"unica/internal/domain/service"
)

// Token type claims. A reset token must never validate as a session token,
// so each carries an explicit type checked on validation.
const (
	tokenTypeSession = "session"
	tokenTypeReset   = "reset"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret     string        // Secret key for signing session and reset tokens.
	sessionTTL time.Duration // Time-to-live for session tokens.
	resetTTL   time.Duration // Time-to-live for password-reset tokens.
}

type sessionTokenClaims struct {
	Email string `json:"email"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

type resetTokenClaims struct {
	Email string `json:"email"`
	Type  string `json:"type"`
	jwt.RegisteredClaims
}

// NewJWTService is the constructor for jwtService.
// It takes configuration values to create a new token service instance.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Token == "" {
		return nil, errors.New("jwt secret must be provided")
	}

	return &jwtService{
		secret:     cfg.SecretKey.Token,
		sessionTTL: cfg.Auth.SessionTokenTTL,
		resetTTL:   cfg.Auth.ResetTokenTTL,
	}, nil
}

// GenerateSessionToken creates a signed session token bound to an account id and email.
func (s *jwtService) GenerateSessionToken(accountID uuid.UUID, email string) (string, error) {
	now := time.Now()
	claims := sessionTokenClaims{
		Email: email,
		Type:  tokenTypeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject: accountID.String(),
			// A unique jti keeps two tokens minted within the same second distinct.
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.sessionTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// ValidateSessionToken checks the signature and expiry of a session token and returns its claims.
func (s *jwtService) ValidateSessionToken(tokenString string) (*service.SessionClaims, error) {
	claims := &sessionTokenClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return nil, err
	}
	if claims.Type != tokenTypeSession {
		return nil, jwt.ErrTokenInvalidClaims
	}

	accountID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, jwt.ErrTokenInvalidSubject
	}

	return &service.SessionClaims{
		AccountID:        accountID,
		Email:            claims.Email,
		RegisteredClaims: claims.RegisteredClaims,
	}, nil
}

// GenerateResetToken creates a signed password-reset token embedding the target email.
func (s *jwtService) GenerateResetToken(email string) (string, error) {
	now := time.Now()
	claims := resetTokenClaims{
		Email: email,
		Type:  tokenTypeReset,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.resetTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString([]byte(s.secret))
}

// ValidateResetToken checks the signature and expiry of a reset token and returns the embedded email.
func (s *jwtService) ValidateResetToken(tokenString string) (string, error) {
	claims := &resetTokenClaims{}
	if err := s.parse(tokenString, claims); err != nil {
		return "", err
	}
	if claims.Type != tokenTypeReset || claims.Email == "" {
		return "", jwt.ErrTokenInvalidClaims
	}

	return claims.Email, nil
}

// GenerateRefreshToken creates a cryptographically random opaque bearer value.
func (s *jwtService) GenerateRefreshToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}

	return hex.EncodeToString(bytes), nil
}

// SessionTokenDuration returns the configured session token lifetime.
func (s *jwtService) SessionTokenDuration() time.Duration {
	return s.sessionTTL
}

// parse verifies the signature, signing method and registered claims (expiry included).
func (s *jwtService) parse(tokenString string, claims jwt.Claims) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return err
	}
	if !token.Valid {
		return jwt.ErrTokenUnverifiable
	}

	return nil
}
