// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// RefreshToken represents a long-lived, opaque bearer value that can be
// exchanged for a new session token. It is honored only while a matching
// record exists in the store; the raw value itself carries no signature.
type RefreshToken struct {
	Token        string    // The opaque bearer value, looked up by exact match.
	AccountID    uuid.UUID // The account this token is bound to.
	AccountEmail string    // The bound account's email, denormalized into the record.
	CreatedAt    time.Time // Timestamp of when this token was issued.
}

// PasswordResetToken represents a single-use, time-boxed credential for
// resetting a password. The token string is itself a signed token embedding
// the target email; expiry is enforced by the signature, single use by
// deleting this record on consumption.
type PasswordResetToken struct {
	Email     string    // The email the reset was requested for.
	Token     string    // The signed reset token value.
	CreatedAt time.Time // Timestamp of when this token was issued.
}

// TwoFactorRecord marks an account as having two-factor authentication
// enabled. Presence of the record is the enabled flag; enrollment and
// removal happen outside this service.
type TwoFactorRecord struct {
	AccountID uuid.UUID
	CreatedAt time.Time
}
