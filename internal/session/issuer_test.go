package session_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/TaskHive/TH-Backend/internal/accounts"
	"github.com/TaskHive/TH-Backend/internal/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// fakeCredStore implements session.CredentialStore over a single in-memory
// account. Issued tokens are counted so tests can assert the overwrite.
type fakeCredStore struct {
	account  accounts.Account
	issueErr error
	issued   int
}

func (f *fakeCredStore) FindByEmail(kind, email string) (accounts.Account, error) {
	if f.account == nil || f.account.AccountEmail() != email || f.account.Kind() != kind {
		return nil, gorm.ErrRecordNotFound
	}
	return f.account, nil
}

func (f *fakeCredStore) IssueSession(a accounts.Account) (string, error) {
	if f.issueErr != nil {
		return "", f.issueErr
	}
	f.issued++
	token := fmt.Sprintf("issued-%d", f.issued)
	if c, ok := a.(*accounts.Company); ok {
		c.ActiveSessionToken = &token
	}
	return token, nil
}

func hashedCompany(t *testing.T, email, password string) *accounts.Company {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt failed: %v", err)
	}
	return &accounts.Company{
		ID:             "company-1",
		Email:          email,
		CompanyName:    "Acme",
		HashedPassword: string(hashed),
	}
}

// TestLogin_Success verifies that a correct login returns an artifact whose
// embedded token is the one just persisted.
func TestLogin_Success(t *testing.T) {
	tokens := session.NewTokens(testConfig(time.Hour))
	store := &fakeCredStore{account: hashedCompany(t, "hq@acme.test", "hunter2")}
	issuer := session.NewIssuer(tokens, store)

	artifact, account, err := issuer.Login("hq@acme.test", "hunter2", accounts.KindCompany)
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if account.AccountID() != "company-1" {
		t.Errorf("expected account company-1, got %s", account.AccountID())
	}

	claims, err := tokens.Parse(artifact)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.SessionToken != "issued-1" {
		t.Errorf("expected artifact to embed the persisted token, got %q", claims.SessionToken)
	}
}

// TestLogin_NoEnumeration verifies that an unknown email and a wrong
// password are indistinguishable: same error value, no account leak.
func TestLogin_NoEnumeration(t *testing.T) {
	tokens := session.NewTokens(testConfig(time.Hour))
	store := &fakeCredStore{account: hashedCompany(t, "hq@acme.test", "hunter2")}
	issuer := session.NewIssuer(tokens, store)

	_, _, unknownErr := issuer.Login("nobody@acme.test", "hunter2", accounts.KindCompany)
	_, _, wrongPassErr := issuer.Login("hq@acme.test", "wrong", accounts.KindCompany)

	if !errors.Is(unknownErr, session.ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", unknownErr)
	}
	if !errors.Is(wrongPassErr, session.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassErr)
	}
	if unknownErr.Error() != wrongPassErr.Error() {
		t.Errorf("error messages differ between unknown email and wrong password: %q vs %q",
			unknownErr.Error(), wrongPassErr.Error())
	}
}

// TestLogin_WrongKind verifies that the claimed account kind must match:
// company credentials do not sign in the employee flow.
func TestLogin_WrongKind(t *testing.T) {
	tokens := session.NewTokens(testConfig(time.Hour))
	store := &fakeCredStore{account: hashedCompany(t, "hq@acme.test", "hunter2")}
	issuer := session.NewIssuer(tokens, store)

	if _, _, err := issuer.Login("hq@acme.test", "hunter2", accounts.KindUser); !errors.Is(err, session.ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong kind, got %v", err)
	}
}

// TestLogin_PersistFailureNoArtifact verifies that a storage failure while
// overwriting the stored token aborts the login with no artifact issued.
func TestLogin_PersistFailureNoArtifact(t *testing.T) {
	tokens := session.NewTokens(testConfig(time.Hour))
	store := &fakeCredStore{
		account:  hashedCompany(t, "hq@acme.test", "hunter2"),
		issueErr: errors.New("connection refused"),
	}
	issuer := session.NewIssuer(tokens, store)

	artifact, _, err := issuer.Login("hq@acme.test", "hunter2", accounts.KindCompany)
	if err == nil {
		t.Fatal("expected an error when token persistence fails")
	}
	if errors.Is(err, session.ErrInvalidCredentials) {
		t.Errorf("persistence failure must not masquerade as bad credentials: %v", err)
	}
	if artifact != "" {
		t.Errorf("expected no artifact on persistence failure, got %q", artifact)
	}
}

// TestLogin_RateLimited verifies the per-email throttle: a burst of rapid
// attempts trips 429 for that email while other emails are unaffected.
func TestLogin_RateLimited(t *testing.T) {
	tokens := session.NewTokens(testConfig(time.Hour))
	store := &fakeCredStore{account: hashedCompany(t, "hq@acme.test", "hunter2")}
	issuer := session.NewIssuer(tokens, store)

	var limited bool
	for i := 0; i < 10; i++ {
		_, _, err := issuer.Login("target@acme.test", "guess", accounts.KindCompany)
		if errors.Is(err, session.ErrTooManyAttempts) {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("expected ErrTooManyAttempts within 10 rapid attempts")
	}

	// A different email still gets through.
	if _, _, err := issuer.Login("hq@acme.test", "hunter2", accounts.KindCompany); err != nil {
		t.Errorf("unrelated email should not be throttled: %v", err)
	}
}

// TestIssueFor_SkipsCredentialCheck verifies the provider-verified path:
// IssueFor mints an artifact without a password ever being involved.
func TestIssueFor_SkipsCredentialCheck(t *testing.T) {
	tokens := session.NewTokens(testConfig(time.Hour))
	store := &fakeCredStore{account: hashedCompany(t, "hq@acme.test", "hunter2")}
	issuer := session.NewIssuer(tokens, store)

	artifact, err := issuer.IssueFor(store.account)
	if err != nil {
		t.Fatalf("IssueFor failed: %v", err)
	}

	claims, err := tokens.Parse(artifact)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if claims.SessionToken != "issued-1" {
		t.Errorf("expected the persisted token in the artifact, got %q", claims.SessionToken)
	}
}
