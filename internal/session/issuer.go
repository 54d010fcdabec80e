package session

import (
	"fmt"

	"github.com/TaskHive/TH-Backend/internal/accounts"
	"golang.org/x/crypto/bcrypt"
)

// CredentialStore is the slice of the account store the issuer needs.
type CredentialStore interface {
	FindByEmail(kind, email string) (accounts.Account, error)
	IssueSession(a accounts.Account) (string, error)
}

// dummyHash is compared against when the email has no account, so a miss
// costs the same bcrypt work as a wrong password.
var dummyHash = []byte("$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy")

// Issuer verifies credentials and mints session artifacts. Issuing
// overwrites the account's stored active token first, so every artifact
// from an earlier login stops validating as soon as a new one exists.
type Issuer struct {
	tokens  *Tokens
	store   CredentialStore
	limiter *loginLimiter
}

func NewIssuer(tokens *Tokens, store CredentialStore) *Issuer {
	return &Issuer{
		tokens:  tokens,
		store:   store,
		limiter: newLoginLimiter(),
	}
}

// Login authenticates the claimed account kind by email and password and
// returns a signed session artifact. All credential failures collapse to
// ErrInvalidCredentials; a storage failure during token persistence aborts
// the login with no artifact issued.
func (i *Issuer) Login(email, password, kind string) (string, accounts.Account, error) {
	if !i.limiter.allow(email) {
		return "", nil, ErrTooManyAttempts
	}

	account, err := i.store.FindByEmail(kind, email)
	if err != nil {
		bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash()), []byte(password)); err != nil {
		return "", nil, ErrInvalidCredentials
	}

	return i.issue(account)
}

// IssueFor mints an artifact for an already-verified account. The OAuth
// sign-in path lands here after the provider vouched for the identity.
func (i *Issuer) IssueFor(account accounts.Account) (string, error) {
	artifact, _, err := i.issue(account)
	return artifact, err
}

func (i *Issuer) issue(account accounts.Account) (string, accounts.Account, error) {
	token, err := i.store.IssueSession(account)
	if err != nil {
		return "", nil, fmt.Errorf("persist session token: %w", err)
	}

	artifact, err := i.tokens.Mint(account, token)
	if err != nil {
		return "", nil, err
	}

	return artifact, account, nil
}
