package session

import (
	"errors"

	"github.com/TaskHive/TH-Backend/internal/accounts"
	"gorm.io/gorm"
)

// Status classifies the outcome of an authoritative session check.
type Status int

const (
	// StatusValid: artifact checks out and its token matches the stored one.
	StatusValid Status = iota
	// StatusUnauthenticated: no artifact, bad signature, expired, or the
	// account no longer exists.
	StatusUnauthenticated
	// StatusStale: artifact is intact but its token was superseded or
	// cleared — signed in elsewhere, or signed out.
	StatusStale
)

func (s Status) String() string {
	switch s {
	case StatusValid:
		return "valid"
	case StatusStale:
		return "stale"
	default:
		return "unauthenticated"
	}
}

// Result carries the classification plus the loaded account when valid.
type Result struct {
	Status  Status
	Claims  *Claims
	Account accounts.Account
}

// AccountSource is the slice of the account store the validator needs.
type AccountSource interface {
	FindByID(kind, id string) (accounts.Account, error)
}

// SessionStore is the slice of the account store sign-out needs.
type SessionStore interface {
	FindByID(kind, id string) (accounts.Account, error)
	ClearSession(a accounts.Account) error
}

// ReleaseIfCurrent nulls the account's stored token only when the
// artifact's embedded token is still the current one. A superseded artifact
// holds no claim on the stored token: when a forced-out device posts its
// sign-out, the session the newer login just issued stays intact and the
// stale holder only gets its cookies expired. A missing account is a no-op.
func ReleaseIfCurrent(store SessionStore, claims *Claims) error {
	account, err := store.FindByID(claims.AccountType, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, accounts.ErrUnknownKind) {
			return nil
		}
		return err
	}

	stored := account.CurrentSessionToken()
	if stored == nil || *stored != claims.SessionToken {
		return nil
	}

	return store.ClearSession(account)
}

// Validator performs the storage-backed session check. Unlike the route
// guard's artifact-only inspection, this reflects concurrent sign-ins and
// sign-outs from elsewhere, so it runs wherever authoritative correctness
// matters: protected layout loads, the poll endpoint, sensitive mutations.
type Validator struct {
	tokens *Tokens
	store  AccountSource
}

func NewValidator(tokens *Tokens, store AccountSource) *Validator {
	return &Validator{tokens: tokens, store: store}
}

// Validate classifies a raw artifact. A non-nil error means storage failed;
// the Result is still StatusUnauthenticated so callers fail closed, the
// error is only for logging and the poll endpoint's 500.
func (v *Validator) Validate(raw string) (*Result, error) {
	claims, err := v.tokens.Parse(raw)
	if err != nil {
		return &Result{Status: StatusUnauthenticated}, nil
	}

	account, err := v.store.FindByID(claims.AccountType, claims.Subject)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, accounts.ErrUnknownKind) {
			return &Result{Status: StatusUnauthenticated, Claims: claims}, nil
		}
		return &Result{Status: StatusUnauthenticated, Claims: claims}, err
	}

	stored := account.CurrentSessionToken()
	if stored == nil || *stored != claims.SessionToken {
		return &Result{Status: StatusStale, Claims: claims}, nil
	}

	return &Result{Status: StatusValid, Claims: claims, Account: account}, nil
}
