// Package mail provides the concrete Mailer implementation using the Resend API.
package mail

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/resend/resend-go/v3"

	"unica/config"
	"unica/internal/domain/service"
)

// resendMailer delivers password-reset tokens by email through Resend.
type resendMailer struct {
	client    *resend.Client
	fromEmail string // Verified sender address, e.g. noreply@unica.app
	appURL    string // Public application URL used to build reset links.
}

// NewResendMailer builds a Mailer from configuration. When the Resend section
// is absent it returns nil: the use case then falls back to the
// exposeResetToken development behavior.
func NewResendMailer(cfg *config.Config) service.Mailer {
	if cfg.Resend == nil || cfg.Resend.APIKey == "" {
		return nil
	}

	return &resendMailer{
		client:    resend.NewClient(cfg.Resend.APIKey),
		fromEmail: cfg.Resend.FromEmail,
		appURL:    cfg.Resend.AppURL,
	}
}

// SendPasswordReset emails a reset link embedding the raw token.
// The token itself is time-boxed by its signature; the link simply carries it
// to the frontend, which posts it to /auth/reset-password.
func (m *resendMailer) SendPasswordReset(ctx context.Context, toEmail, token string) error {
	resetLink := fmt.Sprintf("%s/reset-password?token=%s", m.appURL, token)

	html := fmt.Sprintf(`<p>我們收到了重設密碼的請求。請點擊以下連結設定新密碼（一小時內有效）：</p>
<p><a href="%s">重設密碼</a></p>
<p>若您沒有提出此請求，請忽略這封郵件。</p>`, resetLink)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("ÚNICA <%s>", m.fromEmail),
		To:      []string{toEmail},
		Subject: "重設您的密碼 — ÚNICA",
		Html:    html,
	}

	if _, err := m.client.Emails.SendWithContext(ctx, params); err != nil {
		return errors.Wrap(err, "failed to send password reset email")
	}

	return nil
}
