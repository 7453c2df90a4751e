// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"unica/internal/delivery/http/middleware"
	"unica/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    echo.MiddlewareFunc `name:"credentialRateLimiter"`
	Registry       *prometheus.Registry
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    echo.MiddlewareFunc
	registry       *prometheus.Registry
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		authMiddleware: params.AuthMiddleware,
		rateLimiter:    params.RateLimiter,
		registry:       params.Registry,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/", handler.Banner)
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})))

	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login, r.rateLimiter)
		authGroup.POST("/refresh-token", r.authHandler.RefreshToken)
		authGroup.POST("/forgot-password", r.authHandler.ForgotPassword, r.rateLimiter)
		authGroup.POST("/reset-password", r.authHandler.ResetPassword)
		authGroup.POST("/validate-credentials", r.authHandler.ValidateCredentials)

		// Endpoints below require an already-validated session token.
		authGroup.POST("/logout", r.authHandler.Logout, r.authMiddleware.Authenticate)
		authGroup.GET("/profile", r.authHandler.GetProfile, r.authMiddleware.Authenticate)
		authGroup.GET("/2fa", r.authHandler.Get2FAStatus, r.authMiddleware.Authenticate)
	}
}
