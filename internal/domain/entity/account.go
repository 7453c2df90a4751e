// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the core entity in the system, representing a registered identity.
// The id is immutable once assigned and the email is unique across all accounts.
type Account struct {
	ID           uuid.UUID // The unique identifier for the account, generated by the store.
	Email        string    // The account's login identifier. Unique.
	PasswordHash string    // The bcrypt hash of the account's password. Never the plaintext.
	FullName     string    // The account holder's display name.
	CreatedAt    time.Time // Timestamp of when this account was created.
}

// PublicAccount is the projection of an Account that is safe to return to clients.
// It never carries the password hash.
type PublicAccount struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullname"`
	CreatedAt time.Time `json:"created_at"`
}

// Public projects the account to its client-safe fields.
func (a *Account) Public() *PublicAccount {
	return &PublicAccount{
		ID:        a.ID,
		Email:     a.Email,
		FullName:  a.FullName,
		CreatedAt: a.CreatedAt,
	}
}
