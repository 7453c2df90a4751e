package usecase

import (
	"context"

	"unica/internal/domain/entity"

	"github.com/google/uuid"
)

// ProfileOutput returns the public projection of an account.
type ProfileOutput struct {
	Account *entity.Account
}

// TwoFactorStatusOutput reports whether two-factor auth is enabled.
type TwoFactorStatusOutput struct {
	Enabled bool
}

// ProfileUsecase defines read operations over an authenticated account.
type ProfileUsecase interface {
	GetProfile(ctx context.Context, accountID uuid.UUID) (*ProfileOutput, error)
	Get2FAStatus(ctx context.Context, accountID uuid.UUID) (*TwoFactorStatusOutput, error)
}
