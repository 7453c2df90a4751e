package service

import "context"

// Mailer defines the interface for out-of-band delivery of password reset
// tokens. In production the raw token must reach the user by email, never in
// the HTTP response.
type Mailer interface {
	// SendPasswordReset delivers a reset token to the given address.
	SendPasswordReset(ctx context.Context, toEmail, token string) error
}
