package middleware

import (
	"time"

	"unica/config"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// NewCredentialRateLimiter builds a per-client limiter for the credential
// endpoints (login, forgot-password), keyed by client IP. Brute-force
// throttling only; the limiter never replaces credential checks.
func NewCredentialRateLimiter(cfg *config.Config) echo.MiddlewareFunc {
	if cfg.RateLimit == nil || !cfg.RateLimit.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return next
		}
	}

	limit := rate.Limit(cfg.RateLimit.Rate)
	if limit <= 0 {
		limit = rate.Limit(5)
	}
	burst := cfg.RateLimit.Burst
	if burst <= 0 {
		burst = 10
	}

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
			Rate:      limit,
			Burst:     burst,
			ExpiresIn: 3 * time.Minute,
		}),
	})
}
