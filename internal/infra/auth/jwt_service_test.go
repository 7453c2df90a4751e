package auth

import (
	"testing"
	"time"

	"unica/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(t *testing.T, sessionTTL, resetTTL time.Duration) *jwtService {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Token = "test_signing_secret_very_long_for_testing"
	cfg.Auth = &config.AuthConfig{
		SessionTokenTTL: sessionTTL,
		ResetTokenTTL:   resetTTL,
	}

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)

	return svc.(*jwtService)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{SessionTokenTTL: time.Hour, ResetTokenTTL: time.Hour}

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_GenerateAndValidateSessionToken(t *testing.T) {
	svc := newTestTokenService(t, 24*time.Hour, time.Hour)

	accountID := uuid.New()
	email := "test@example.com"

	token, err := svc.GenerateSessionToken(accountID, email)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateSessionToken(token)
	require.NoError(t, err)
	assert.Equal(t, accountID, claims.AccountID)
	assert.Equal(t, email, claims.Email)

	// expiresAt = issuedAt + 24h
	lifetime := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 24*time.Hour, lifetime)
}

func TestJWTService_GenerateRefreshToken(t *testing.T) {
	svc := newTestTokenService(t, 24*time.Hour, time.Hour)

	t1, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	assert.Len(t, t1, 64) // 32 random bytes, hex encoded

	t2, err := svc.GenerateRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
}

func TestJWTService_SessionTokensAreUniquePerIssue(t *testing.T) {
	svc := newTestTokenService(t, 24*time.Hour, time.Hour)
	accountID := uuid.New()

	t1, err := svc.GenerateSessionToken(accountID, "a@x.com")
	require.NoError(t, err)

	// Each issue carries a fresh jti, so back-to-back tokens are distinct.
	t2, err := svc.GenerateSessionToken(accountID, "a@x.com")
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2)

	_, err = svc.ValidateSessionToken(t1)
	assert.NoError(t, err)
	_, err = svc.ValidateSessionToken(t2)
	assert.NoError(t, err)
}

func TestJWTService_ExpiredSessionTokenRejected(t *testing.T) {
	svc := newTestTokenService(t, -time.Minute, time.Hour)

	token, err := svc.GenerateSessionToken(uuid.New(), "a@x.com")
	require.NoError(t, err)

	claims, err := svc.ValidateSessionToken(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_InvalidSessionToken(t *testing.T) {
	svc := newTestTokenService(t, 24*time.Hour, time.Hour)

	claims, err := svc.ValidateSessionToken("clearly-not-a-jwt-token")
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	issuer := newTestTokenService(t, 24*time.Hour, time.Hour)

	cfg := &config.Config{}
	cfg.SecretKey.Token = "a_different_secret_entirely"
	cfg.Auth = &config.AuthConfig{SessionTokenTTL: 24 * time.Hour, ResetTokenTTL: time.Hour}
	verifier, err := NewJWTService(cfg)
	require.NoError(t, err)

	token, err := issuer.GenerateSessionToken(uuid.New(), "a@x.com")
	require.NoError(t, err)

	_, err = verifier.ValidateSessionToken(token)
	assert.Error(t, err)
}

func TestJWTService_GenerateAndValidateResetToken(t *testing.T) {
	svc := newTestTokenService(t, 24*time.Hour, time.Hour)

	token, err := svc.GenerateResetToken("reset@example.com")
	require.NoError(t, err)

	email, err := svc.ValidateResetToken(token)
	require.NoError(t, err)
	assert.Equal(t, "reset@example.com", email)
}

func TestJWTService_ExpiredResetTokenRejected(t *testing.T) {
	svc := newTestTokenService(t, 24*time.Hour, -time.Minute)

	token, err := svc.GenerateResetToken("reset@example.com")
	require.NoError(t, err)

	_, err = svc.ValidateResetToken(token)
	assert.Error(t, err)
}

func TestJWTService_TokenTypesAreNotInterchangeable(t *testing.T) {
	svc := newTestTokenService(t, 24*time.Hour, time.Hour)

	resetToken, err := svc.GenerateResetToken("a@x.com")
	require.NoError(t, err)

	// A reset token must never grant a session.
	_, err = svc.ValidateSessionToken(resetToken)
	assert.Error(t, err)

	sessionToken, err := svc.GenerateSessionToken(uuid.New(), "a@x.com")
	require.NoError(t, err)

	// And a session token must never authorize a password reset.
	_, err = svc.ValidateResetToken(sessionToken)
	assert.Error(t, err)
}

func TestJWTService_SessionTokenDuration(t *testing.T) {
	svc := newTestTokenService(t, 24*time.Hour, time.Hour)
	assert.Equal(t, 24*time.Hour, svc.SessionTokenDuration())
}
