package middleware

import (
	"log/slog"

	deliverycontext "unica/internal/delivery/context"

	"github.com/labstack/echo/v4"
)

// RequestContextMiddleware propagates a request id and a request-scoped
// logger into the request's context, where the usecases pick them up.
type RequestContextMiddleware struct {
	logger *slog.Logger
}

// NewRequestContextMiddleware creates a new request context middleware.
func NewRequestContextMiddleware(logger *slog.Logger) *RequestContextMiddleware {
	return &RequestContextMiddleware{logger: logger}
}

// Handle attaches the request id (honoring an inbound X-Request-Id header)
// and a logger carrying it to both the echo context and the request context.
func (m *RequestContextMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		requestID := c.Request().Header.Get(deliverycontext.HeaderXRequestID)
		if requestID == "" {
			requestID = deliverycontext.GetRequestID(c)
		}
		deliverycontext.SetRequestID(c, requestID)
		c.Response().Header().Set(deliverycontext.HeaderXRequestID, requestID)

		requestLogger := m.logger.With(slog.String("requestID", requestID))

		ctx := c.Request().Context()
		ctx = deliverycontext.WithRequestID(ctx, requestID)
		ctx = deliverycontext.WithLogger(ctx, requestLogger)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
