// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"unica/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrTwoFactorNotFound is returned when an account has no two-factor record.
// Callers treat this as "disabled", not as a failure.
var ErrTwoFactorNotFound = errors.New("two-factor record not found")

// TwoFactorRepository defines read access to two-factor enrollment records.
// Enrollment itself is owned by an external flow; this service only checks presence.
type TwoFactorRepository interface {
	// FindByAccountID retrieves the two-factor record for an account.
	FindByAccountID(ctx context.Context, accountID uuid.UUID) (*entity.TwoFactorRecord, error)
}
