// Package service defines interfaces for core, stateless domain logic.
// These services encapsulate business rules that don't naturally fit within a single entity.
package service

import "context"

// PasswordHasher defines the interface for password hashing and verification.
// This abstracts the underlying hashing algorithm (e.g., bcrypt), keeping the domain pure.
// Hashing is deliberately CPU-expensive, so both operations take a context:
// implementations may queue work behind a bounded pool and must respect
// cancellation while waiting.
type PasswordHasher interface {
	// Hash generates a salted hash from a plaintext password.
	Hash(ctx context.Context, password string) (string, error)

	// Check compares a plaintext password with a hash. A mismatch is reported
	// as (false, nil); the error is reserved for cancellation or internal failure.
	Check(ctx context.Context, password, hash string) (bool, error)
}
