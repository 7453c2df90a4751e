package config

import "testing"

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"secretKey": map[string]any{
			"token": "",
		},
		"rateLimit": map[string]any{
			"enabled": false,
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "SECRETKEY_TOKEN", want: "secretKey.token"},
		{envKey: "RATELIMIT_ENABLED", want: "rateLimit.enabled"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestAuthConfigDefaults(t *testing.T) {
	cfg := &AuthConfig{}
	cfg.applyDefaults()

	if cfg.BcryptCost != 10 {
		t.Fatalf("BcryptCost = %d, want 10", cfg.BcryptCost)
	}
	if cfg.SessionTokenTTL.Hours() != 24 {
		t.Fatalf("SessionTokenTTL = %v, want 24h", cfg.SessionTokenTTL)
	}
	if cfg.ResetTokenTTL.Hours() != 1 {
		t.Fatalf("ResetTokenTTL = %v, want 1h", cfg.ResetTokenTTL)
	}
}
