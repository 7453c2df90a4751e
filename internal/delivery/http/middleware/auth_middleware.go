// Package middleware contains the echo middleware for the HTTP delivery.
package middleware

import (
	"strings"

	"unica/internal/delivery/http/response"
	"unica/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// Context keys set by Authenticate for downstream handlers.
const (
	KeyAccountID    = "accountID"
	KeyAccountEmail = "accountEmail"
)

// AuthMiddleware provides middleware for session token authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer session token before the handler runs.
// A missing or malformed header is 401; a token that fails signature or
// expiry checks is 403.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "TOKEN_MISSING", "缺少授權標頭")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return response.Unauthorized(c, "TOKEN_MISSING", "授權標頭格式錯誤")
		}

		claims, err := m.tokenSvc.ValidateSessionToken(tokenString)
		if err != nil {
			return response.Forbidden(c, "TOKEN_INVALID", "無效或已過期的權杖")
		}

		// Expose the authenticated identity to handlers.
		c.Set(KeyAccountID, claims.AccountID)
		c.Set(KeyAccountEmail, claims.Email)

		return next(c)
	}
}
