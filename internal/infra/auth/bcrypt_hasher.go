// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"context"
	"runtime"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"

	"unica/config"
	"unica/internal/domain/service"
)

// bcryptHasher is a concrete implementation of the PasswordHasher interface using bcrypt.
// A weighted semaphore bounds concurrent hashing: bcrypt at the configured work
// factor is CPU-expensive, and unbounded parallel hashes under a login burst
// would starve every other request of CPU time.
type bcryptHasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewBcryptHasher is the constructor for bcryptHasher.
// It returns the implementation as a service.PasswordHasher interface.
func NewBcryptHasher(cfg *config.Config) service.PasswordHasher {
	return NewBcryptHasherWithCost(cfg.Auth.BcryptCost, cfg.Auth.MaxConcurrentHashes)
}

// NewBcryptHasherWithCost builds a hasher with an explicit cost and
// concurrency bound. Tests use a low cost to keep runs fast.
func NewBcryptHasherWithCost(cost, maxConcurrent int) service.PasswordHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	if maxConcurrent <= 0 {
		maxConcurrent = runtime.NumCPU()
	}

	return &bcryptHasher{
		cost: cost,
		sem:  semaphore.NewWeighted(int64(maxConcurrent)),
	}
}

// Hash generates a salted hash from a plaintext password using bcrypt.
// bcrypt handles salt generation itself.
func (h *bcryptHasher) Hash(ctx context.Context, password string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)

	return string(bytes), err
}

// Check compares a plaintext password with a bcrypt hash.
// A mismatch is (false, nil); the error is reserved for cancellation.
func (h *bcryptHasher) Check(ctx context.Context, password, hash string) (bool, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer h.sem.Release(1)

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))

	// err is nil if the password and hash match. Any comparison failure,
	// including a malformed hash, is treated as a mismatch.
	return err == nil, nil
}
