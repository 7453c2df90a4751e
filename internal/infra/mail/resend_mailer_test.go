package mail

import (
	"testing"

	"unica/config"

	"github.com/stretchr/testify/assert"
)

func TestNewResendMailer_NilWhenUnconfigured(t *testing.T) {
	assert.Nil(t, NewResendMailer(&config.Config{}))

	cfg := &config.Config{Resend: &config.ResendConfig{}}
	assert.Nil(t, NewResendMailer(cfg))
}

func TestNewResendMailer_BuildsClientWhenConfigured(t *testing.T) {
	cfg := &config.Config{Resend: &config.ResendConfig{
		APIKey:    "re_test_key",
		FromEmail: "noreply@unica.app",
		AppURL:    "https://app.unica.app",
	}}

	mailer := NewResendMailer(cfg)
	assert.NotNil(t, mailer)
}
