// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"unica/internal/delivery/http/middleware"
	"unica/internal/delivery/http/response"
	"unica/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthHandler holds dependencies for the authentication endpoints.
type AuthHandler struct {
	authUc    usecase.AuthUsecase
	profileUc usecase.ProfileUsecase
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(authUc usecase.AuthUsecase, profileUc usecase.ProfileUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUc:    authUc,
		profileUc: profileUc,
		logger:    logger,
	}
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	FullName string `json:"fullname" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

type resetPasswordRequest struct {
	ResetToken  string `json:"resetToken" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}

type sessionResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// Register handles the account registration request.
func (h *AuthHandler) Register(c echo.Context) error {
	var input registerRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的註冊資料")
	}
	if err := c.Validate(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的註冊資料")
	}

	output, err := h.authUc.Register(c.Request().Context(), usecase.RegisterInput{
		Email:    input.Email,
		Password: input.Password,
		FullName: input.FullName,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{
		"user":  output.Account.Public(),
		"token": output.SessionToken,
	}, "註冊成功")
}

// Login handles the login request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的登入資料")
	}
	if err := c.Validate(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的登入資料")
	}

	output, err := h.authUc.Login(c.Request().Context(), usecase.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	payload := map[string]any{
		"user":  output.Account.Public(),
		"token": output.SessionToken,
	}
	if output.RefreshToken != "" {
		payload["refreshToken"] = output.RefreshToken
	}

	return response.Success(c, http.StatusOK, payload, "登入成功")
}

// Logout acknowledges client-side token discard. The auth middleware has
// already validated the bearer token by the time this runs.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authUc.Logout(c.Request().Context()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "登出成功")
}

// RefreshToken exchanges a refresh token for a new session token.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var input refreshRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的重新整理資料")
	}
	if err := c.Validate(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的重新整理資料")
	}

	output, err := h.authUc.RefreshToken(c.Request().Context(), usecase.RefreshInput{
		RefreshToken: input.RefreshToken,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, sessionResponse{
		Token:        output.SessionToken,
		RefreshToken: output.RefreshToken,
	}, "權杖已更新")
}

// ForgotPassword issues a password-reset token for the given address.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	var input forgotPasswordRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的電子郵件")
	}
	if err := c.Validate(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的電子郵件")
	}

	output, err := h.authUc.ForgotPassword(c.Request().Context(), input.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	data := map[string]any{}
	if output.ResetToken != "" {
		data["resetToken"] = output.ResetToken
	}

	return response.Success(c, http.StatusOK, data, "若該信箱存在,重設信件已寄出")
}

// ResetPassword redeems a reset token and replaces the password.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	var input resetPasswordRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的重設資料")
	}
	if err := c.Validate(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的重設資料")
	}

	if err := h.authUc.ResetPassword(c.Request().Context(), usecase.ResetPasswordInput{
		Token:       input.ResetToken,
		NewPassword: input.NewPassword,
	}); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "密碼已重設")
}

// ValidateCredentials reports whether an email and password pair matches an
// account. A boolean probe, not an authentication grant: no token is issued.
func (h *AuthHandler) ValidateCredentials(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的驗證資料")
	}
	if err := c.Validate(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "無效的驗證資料")
	}

	valid, err := h.authUc.ValidateCredentials(c.Request().Context(), usecase.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"valid": valid}, "")
}

// GetProfile returns the authenticated account's public record.
func (h *AuthHandler) GetProfile(c echo.Context) error {
	accountID, ok := c.Get(middleware.KeyAccountID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "TOKEN_MISSING", "缺少身分資訊")
	}

	output, err := h.profileUc.GetProfile(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, output.Account.Public(), "")
}

// Get2FAStatus reports whether two-factor auth is enabled for the account.
func (h *AuthHandler) Get2FAStatus(c echo.Context) error {
	accountID, ok := c.Get(middleware.KeyAccountID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "TOKEN_MISSING", "缺少身分資訊")
	}

	output, err := h.profileUc.Get2FAStatus(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]bool{"enabled": output.Enabled}, "")
}
