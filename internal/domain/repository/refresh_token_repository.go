// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"unica/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrRefreshTokenNotFound is returned when no record matches a presented refresh token.
var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository defines the operations for refresh token persistence.
// Records are inserted by login when issuance is enabled and by rotation;
// otherwise they arrive out-of-band and this service only honors them.
type RefreshTokenRepository interface {
	// FindByToken retrieves a refresh token record by its exact opaque value.
	FindByToken(ctx context.Context, token string) (*entity.RefreshToken, error)

	// Create persists a new refresh token record.
	Create(ctx context.Context, token *entity.RefreshToken) error

	// DeleteByToken removes a refresh token record by its exact opaque value.
	// Used by rotation to retire the replaced token.
	DeleteByToken(ctx context.Context, token string) error
}
