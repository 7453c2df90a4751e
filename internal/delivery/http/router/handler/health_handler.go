package handler

import (
	"net/http"

	"unica/internal/delivery/http/response"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports process liveness.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "")
}

// Banner identifies the service at the root path.
func Banner(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"service": "unica-auth"}, "")
}
