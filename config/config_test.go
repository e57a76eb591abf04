package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearMailEnv(t *testing.T) {
	for _, key := range []string{
		"MAIL_DRIVER", "SMTP_HOST", "SMTP_PORT", "SMTP_USER", "SMTP_PASS", "SMTP_SECURE",
		"CONTACT_FROM_EMAIL", "CONTACT_INBOX_EMAIL", "NEXT_PUBLIC_CONTACT_EMAIL",
		"ALLOWED_ORIGINS", "TRUSTED_PROXIES", "RATE_LIMIT_WINDOW_SECONDS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearMailEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "smtp", cfg.MailDriver)
	assert.Equal(t, 587, cfg.SMTPPort)
	assert.False(t, cfg.SMTPSecure)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.TrustedProxies)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow())
	assert.False(t, cfg.Mail().Configured())
}

func TestLoadConfigSMTP(t *testing.T) {
	clearMailEnv(t)
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("SMTP_PORT", "465")
	t.Setenv("SMTP_USER", "mailer@example.com")
	t.Setenv("SMTP_PASS", "secret")
	t.Setenv("SMTP_SECURE", "true")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	mail := cfg.Mail()
	assert.True(t, mail.Configured())
	assert.Equal(t, 465, mail.Port)
	assert.True(t, mail.Secure)
}

func TestMailAddressFallbacks(t *testing.T) {
	t.Run("Should fall back to the transport user", func(t *testing.T) {
		cfg := &Config{SMTPUser: "mailer@example.com"}
		mail := cfg.Mail()
		assert.Equal(t, "mailer@example.com", mail.FromEmail)
		assert.Equal(t, "mailer@example.com", mail.ContactInbox)
	})

	t.Run("Should prefer the public contact address over the transport user", func(t *testing.T) {
		cfg := &Config{SMTPUser: "mailer@example.com", PublicContactEmail: "info@example.com"}
		assert.Equal(t, "info@example.com", cfg.Mail().ContactInbox)
	})

	t.Run("Should prefer explicit overrides", func(t *testing.T) {
		cfg := &Config{
			SMTPUser:           "mailer@example.com",
			PublicContactEmail: "info@example.com",
			ContactInboxEmail:  "team@example.com",
			ContactFromEmail:   "hello@example.com",
		}
		mail := cfg.Mail()
		assert.Equal(t, "hello@example.com", mail.FromEmail)
		assert.Equal(t, "team@example.com", mail.ContactInbox)
	})
}

func TestTrustedProxies(t *testing.T) {
	clearMailEnv(t)
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 192.0.2.10")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.10"}, cfg.TrustedProxies)
}

func TestSecureFlagOnlyAcceptsTrue(t *testing.T) {
	clearMailEnv(t)
	t.Setenv("SMTP_SECURE", "yes")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.False(t, cfg.SMTPSecure)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t,
		[]string{"https://kanamacademy.com", "http://localhost:3000"},
		splitList(" https://kanamacademy.com/ ,http://localhost:3000,,"),
	)
}
