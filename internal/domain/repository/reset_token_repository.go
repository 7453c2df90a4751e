// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"unica/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrResetTokenNotFound is returned when no stored record matches a presented reset token.
var ErrResetTokenNotFound = errors.New("password reset token not found")

// ResetTokenRepository defines the operations for password reset token persistence.
// The stored record enforces single use; expiry is carried by the token's own signature.
type ResetTokenRepository interface {
	// Create persists a new reset token record keyed by email.
	Create(ctx context.Context, token *entity.PasswordResetToken) error

	// FindByToken retrieves a reset token record by its exact value.
	FindByToken(ctx context.Context, token string) (*entity.PasswordResetToken, error)

	// DeleteByToken removes the record matching the exact token value,
	// consuming the token.
	DeleteByToken(ctx context.Context, token string) error
}
