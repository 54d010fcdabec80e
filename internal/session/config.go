package session

import (
	"errors"
	"os"
	"time"
)

var ErrMissingSecret = errors.New("SESSION_SECRET is empty")

// Config holds the signing secret and cookie behavior for session artifacts.
type Config struct {
	// Secret signs the session artifact (HS256).
	Secret string

	// TTL is the hard artifact lifetime. Expired artifacts are rejected
	// regardless of token match.
	TTL time.Duration

	// SecureCookies controls the Secure attribute and whether the
	// __Secure- prefixed cookie variants are written.
	SecureCookies bool
}

// LoadFromEnv loads session configuration from environment variables.
//
// Environment variables:
//   - SESSION_SECRET: signing secret for the session artifact (required)
//   - SESSION_TTL: artifact lifetime as a Go duration (default: 24h)
//   - SESSION_SECURE_COOKIES: "true" writes the __Secure- prefixed cookie
//     variants with the Secure attribute; leave unset for plain-HTTP local
//     dev, where browsers would drop a Secure cookie
func LoadFromEnv() Config {
	ttl := 24 * time.Hour
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
			ttl = parsed
		}
	}

	return Config{
		Secret:        os.Getenv("SESSION_SECRET"),
		TTL:           ttl,
		SecureCookies: os.Getenv("SESSION_SECURE_COOKIES") == "true",
	}
}

func (c Config) Validate() error {
	if c.Secret == "" {
		return ErrMissingSecret
	}
	return nil
}
