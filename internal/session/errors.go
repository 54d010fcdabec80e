package session

import "errors"

// Sentinel errors for the session core; handlers map them to HTTP status.
var (
	// ErrInvalidCredentials covers both a missing account and a wrong
	// password so login failures give no enumeration signal.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrTooManyAttempts is returned when the per-email login limiter trips.
	ErrTooManyAttempts = errors.New("too many login attempts")

	// ErrArtifactInvalid covers a missing, malformed, badly signed, or
	// expired session artifact.
	ErrArtifactInvalid = errors.New("invalid session artifact")
)
