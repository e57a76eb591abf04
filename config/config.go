package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"kanam-academy-backend/internal/domain"
)

type Config struct {
	Port            string
	Env             string
	Version         string
	SiteName        string
	AllowedOrigins  []string
	TrustedProxies  []string // IPs/CIDRs allowed to set X-Forwarded-For; empty trusts none
	ShutdownTimeout time.Duration
	// Logging
	LogLevel     string
	LogFormat    string
	RollbarToken string
	// Mail transport
	MailDriver     string // smtp, sendgrid or console
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPass       string
	SMTPSecure     bool
	SendgridAPIKey string
	// Contact addresses
	ContactFromEmail   string
	ContactInboxEmail  string
	PublicContactEmail string
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	ContactRateLimit       int
	RateLimitWindowSeconds int
}

func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Env:             getEnv("APP_ENV", "development"),
		Version:         getEnv("APP_VERSION", "dev"),
		SiteName:        getEnv("SITE_NAME", "Kanam Academy"),
		AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		TrustedProxies:  splitList(getEnv("TRUSTED_PROXIES", "")),
		ShutdownTimeout: time.Duration(getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 5)) * time.Second,

		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		RollbarToken: getEnv("ROLLBAR_TOKEN", ""),

		MailDriver:     strings.ToLower(getEnv("MAIL_DRIVER", "smtp")),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		SMTPUser:       getEnv("SMTP_USER", ""),
		SMTPPass:       getEnv("SMTP_PASS", ""),
		SMTPSecure:     getEnv("SMTP_SECURE", "") == "true",
		SendgridAPIKey: getEnv("SENDGRID_API_KEY", ""),

		ContactFromEmail:   getEnv("CONTACT_FROM_EMAIL", ""),
		ContactInboxEmail:  getEnv("CONTACT_INBOX_EMAIL", ""),
		PublicContactEmail: getEnv("NEXT_PUBLIC_CONTACT_EMAIL", ""),

		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),

		ContactRateLimit:       getEnvInt("CONTACT_RATE_LIMIT", 5),
		RateLimitWindowSeconds: getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
	}

	return cfg, nil
}

// Mail resolves the contact mail settings, applying the sender and inbox fallbacks.
func (c *Config) Mail() domain.MailSettings {
	return domain.MailSettings{
		Driver:       c.MailDriver,
		Host:         c.SMTPHost,
		Port:         c.SMTPPort,
		Username:     c.SMTPUser,
		Password:     c.SMTPPass,
		Secure:       c.SMTPSecure,
		APIKey:       c.SendgridAPIKey,
		FromEmail:    firstNonEmpty(c.ContactFromEmail, c.SMTPUser),
		ContactInbox: firstNonEmpty(c.ContactInboxEmail, c.PublicContactEmail, c.SMTPUser),
		SiteName:     c.SiteName,
	}
}

// RateLimitWindow returns the contact rate limit window.
func (c *Config) RateLimitWindow() time.Duration {
	if c.RateLimitWindowSeconds <= 0 {
		return time.Minute
	}
	return time.Duration(c.RateLimitWindowSeconds) * time.Second
}

// IsProduction reports whether the service runs in production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimRight(strings.TrimSpace(part), "/"); part != "" {
			out = append(out, part)
		}
	}
	return out
}
