// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"unica/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email    string
	Password string
}

// RefreshInput carries a previously issued refresh token.
type RefreshInput struct {
	RefreshToken string
}

// ResetPasswordInput carries a reset token together with the new password.
type ResetPasswordInput struct {
	Token       string
	NewPassword string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created account's public projection
// together with a freshly minted session token.
type RegisterOutput struct {
	Account      *entity.Account
	SessionToken string
}

// LoginOutput returns the session and refresh tokens after a successful login.
type LoginOutput struct {
	Account      *entity.Account
	SessionToken string
	RefreshToken string
}

// RefreshOutput returns the replacement session token, and under token
// rotation a replacement refresh token as well.
type RefreshOutput struct {
	SessionToken string
	RefreshToken string
}

// ForgotPasswordOutput reports the outcome of a password reset request.
// ResetToken is populated only when token exposure is configured on, for
// environments without outbound mail.
type ForgotPasswordOutput struct {
	ResetToken string
}

// AuthUsecase defines the interface for credential and token lifecycle
// operations. This is the contract the delivery layer depends on.
type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)

	// Logout never touches the store. Session tokens are stateless and
	// unrevoked, so logout only acknowledges client-side token discard.
	Logout(ctx context.Context) error
	RefreshToken(ctx context.Context, input RefreshInput) (*RefreshOutput, error)
	ForgotPassword(ctx context.Context, email string) (*ForgotPasswordOutput, error)
	ResetPassword(ctx context.Context, input ResetPasswordInput) error
	ValidateCredentials(ctx context.Context, input LoginInput) (bool, error)
}
