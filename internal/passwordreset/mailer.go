package passwordreset

import "log"

// Mailer delivers the reset link. Delivery itself is outside this backend;
// the default implementation just logs so dev environments work without an
// email provider.
type Mailer interface {
	SendPasswordReset(email, token string) error
}

type logMailer struct{}

func (logMailer) SendPasswordReset(email, token string) error {
	log.Printf("password reset requested for %s (token %s...)", email, token[:8])
	return nil
}
