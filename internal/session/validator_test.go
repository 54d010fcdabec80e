package session_test

import (
	"errors"
	"testing"
	"time"

	"github.com/TaskHive/TH-Backend/internal/accounts"
	"github.com/TaskHive/TH-Backend/internal/session"
	"gorm.io/gorm"
)

// fakeSource implements session.AccountSource without a database. It hands
// back a single account (or an error) regardless of the lookup key.
type fakeSource struct {
	account accounts.Account
	err     error
}

func (f fakeSource) FindByID(kind, id string) (accounts.Account, error) {
	return f.account, f.err
}

// mintFor signs an artifact for the account embedding the given session
// token, failing the test on error.
func mintFor(t *testing.T, tokens *session.Tokens, a accounts.Account, sessionToken string) string {
	t.Helper()
	artifact, err := tokens.Mint(a, sessionToken)
	if err != nil {
		t.Fatalf("Mint failed: %v", err)
	}
	return artifact
}

func strptr(s string) *string { return &s }

// TestValidate_MatchingToken verifies the happy path: the artifact's
// embedded token matches the stored active token.
func TestValidate_MatchingToken(t *testing.T) {
	tokens := session.NewTokens(testConfig(time.Hour))
	stored := testCompany()
	stored.ActiveSessionToken = strptr("tok-current")
	v := session.NewValidator(tokens, fakeSource{account: stored})

	result, err := v.Validate(mintFor(t, tokens, stored, "tok-current"))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if result.Status != session.StatusValid {
		t.Fatalf("expected StatusValid, got %s", result.Status)
	}
	if result.Account == nil || result.Account.AccountID() != stored.ID {
		t.Errorf("expected the stored account in the result")
	}
}

// TestValidate_SupersededToken verifies the single-active-session rule: an
// artifact minted before a newer login is stale, not merely unauthenticated.
func TestValidate_SupersededToken(t *testing.T) {
	tokens := session.NewTokens(testConfig(time.Hour))
	stored := testCompany()
	stored.ActiveSessionToken = strptr("tok-newer")
	v := session.NewValidator(tokens, fakeSource{account: stored})

	result, err := v.Validate(mintFor(t, tokens, stored, "tok-older"))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if result.Status != session.StatusStale {
		t.Errorf("expected StatusStale for superseded token, got %s", result.Status)
	}
}

// TestValidate_SignedOut verifies that a cleared stored token (sign-out)
// makes every outstanding artifact stale.
func TestValidate_SignedOut(t *testing.T) {
	tokens := session.NewTokens(testConfig(time.Hour))
	stored := testCompany() // ActiveSessionToken nil
	v := session.NewValidator(tokens, fakeSource{account: stored})

	result, err := v.Validate(mintFor(t, tokens, stored, "tok-anything"))
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if result.Status != session.StatusStale {
		t.Errorf("expected StatusStale after sign-out, got %s", result.Status)
	}
}

// TestValidate_OnlyLatestLoginWins walks the overwrite sequence end to end:
// after each login only the newest artifact validates and every earlier one
// reports stale.
func TestValidate_OnlyLatestLoginWins(t *testing.T) {
	tokens := session.NewTokens(testConfig(time.Hour))
	stored := testCompany()
	v := session.NewValidator(tokens, fakeSource{account: stored})

	sessionTokens := []string{"tok-1", "tok-2", "tok-3"}
	artifacts := make([]string, len(sessionTokens))
	for i, tok := range sessionTokens {
		artifacts[i] = mintFor(t, tokens, stored, tok)
	}

	// Each login overwrites the stored token with its own.
	for login := range sessionTokens {
		stored.ActiveSessionToken = strptr(sessionTokens[login])

		for i, artifact := range artifacts[:login+1] {
			result, err := v.Validate(artifact)
			if err != nil {
				t.Fatalf("Validate returned error: %v", err)
			}
			want := session.StatusStale
			if i == login {
				want = session.StatusValid
			}
			if result.Status != want {
				t.Errorf("after login %d, artifact %d: expected %s, got %s", login, i, want, result.Status)
			}
		}
	}
}

// TestValidate_ExpiredArtifact verifies that expiry trumps a token match.
func TestValidate_ExpiredArtifact(t *testing.T) {
	expiredTokens := session.NewTokens(testConfig(-time.Minute))
	liveTokens := session.NewTokens(testConfig(time.Hour))
	stored := testCompany()
	stored.ActiveSessionToken = strptr("tok-current")

	artifact := mintFor(t, expiredTokens, stored, "tok-current")
	v := session.NewValidator(liveTokens, fakeSource{account: stored})

	result, err := v.Validate(artifact)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if result.Status != session.StatusUnauthenticated {
		t.Errorf("expected StatusUnauthenticated for expired artifact, got %s", result.Status)
	}
}

// TestValidate_AccountGone verifies that a deleted account is
// unauthenticated, not an internal error.
func TestValidate_AccountGone(t *testing.T) {
	tokens := session.NewTokens(testConfig(time.Hour))
	v := session.NewValidator(tokens, fakeSource{err: gorm.ErrRecordNotFound})

	result, err := v.Validate(mintFor(t, tokens, testCompany(), "tok"))
	if err != nil {
		t.Fatalf("expected nil error for a missing account, got %v", err)
	}
	if result.Status != session.StatusUnauthenticated {
		t.Errorf("expected StatusUnauthenticated, got %s", result.Status)
	}
}

// TestValidate_StorageFailure verifies fail-closed behavior: a storage
// outage is reported as an error but the status is still unauthenticated,
// never valid.
func TestValidate_StorageFailure(t *testing.T) {
	tokens := session.NewTokens(testConfig(time.Hour))
	outage := errors.New("connection refused")
	v := session.NewValidator(tokens, fakeSource{err: outage})

	result, err := v.Validate(mintFor(t, tokens, testCompany(), "tok"))
	if !errors.Is(err, outage) {
		t.Errorf("expected the storage error to surface, got %v", err)
	}
	if result.Status != session.StatusUnauthenticated {
		t.Errorf("expected StatusUnauthenticated on storage failure, got %s", result.Status)
	}
}

// fakeSessionStore implements session.SessionStore over one in-memory
// account, recording whether the stored token was cleared.
type fakeSessionStore struct {
	account accounts.Account
	findErr error
	cleared bool
}

func (f *fakeSessionStore) FindByID(kind, id string) (accounts.Account, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.account, nil
}

func (f *fakeSessionStore) ClearSession(a accounts.Account) error {
	f.cleared = true
	if c, ok := a.(*accounts.Company); ok {
		c.ActiveSessionToken = nil
	}
	return nil
}

// TestReleaseIfCurrent_CurrentTokenClears verifies that signing out with
// the artifact that holds the current token nulls the stored one.
func TestReleaseIfCurrent_CurrentTokenClears(t *testing.T) {
	tokens := session.NewTokens(testConfig(time.Hour))
	stored := testCompany()
	stored.ActiveSessionToken = strptr("tok-current")
	fake := &fakeSessionStore{account: stored}

	claims, err := tokens.Parse(mintFor(t, tokens, stored, "tok-current"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if err := session.ReleaseIfCurrent(fake, claims); err != nil {
		t.Fatalf("ReleaseIfCurrent failed: %v", err)
	}
	if !fake.cleared {
		t.Error("expected the stored token to be cleared")
	}
}

// TestReleaseIfCurrent_SupersededTokenLeavesSessionAlone pins the
// forced-sign-out rule: when device 1's stale artifact is signed out after
// device 2 logged in, device 2's stored token survives and its artifact
// still validates.
func TestReleaseIfCurrent_SupersededTokenLeavesSessionAlone(t *testing.T) {
	tokens := session.NewTokens(testConfig(time.Hour))
	stored := testCompany()

	artifact1 := mintFor(t, tokens, stored, "tok-device-1")
	stored.ActiveSessionToken = strptr("tok-device-1")
	artifact2 := mintFor(t, tokens, stored, "tok-device-2")
	stored.ActiveSessionToken = strptr("tok-device-2")

	fake := &fakeSessionStore{account: stored}
	claims1, err := tokens.Parse(artifact1)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if err := session.ReleaseIfCurrent(fake, claims1); err != nil {
		t.Fatalf("ReleaseIfCurrent failed: %v", err)
	}
	if fake.cleared {
		t.Fatal("a superseded artifact must not clear the newer session's token")
	}

	v := session.NewValidator(tokens, fakeSource{account: stored})
	result, err := v.Validate(artifact2)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if result.Status != session.StatusValid {
		t.Errorf("device 2's session should survive device 1's sign-out, got %s", result.Status)
	}
}

// TestReleaseIfCurrent_SignedOutAlready verifies idempotence: with the
// stored token already nil there is nothing to clear.
func TestReleaseIfCurrent_SignedOutAlready(t *testing.T) {
	tokens := session.NewTokens(testConfig(time.Hour))
	stored := testCompany() // ActiveSessionToken nil
	fake := &fakeSessionStore{account: stored}

	claims, err := tokens.Parse(mintFor(t, tokens, stored, "tok-old"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if err := session.ReleaseIfCurrent(fake, claims); err != nil {
		t.Fatalf("ReleaseIfCurrent failed: %v", err)
	}
	if fake.cleared {
		t.Error("nothing should be cleared for an already signed-out account")
	}
}

// TestReleaseIfCurrent_AccountGone verifies that a deleted account is a
// no-op, not an error.
func TestReleaseIfCurrent_AccountGone(t *testing.T) {
	tokens := session.NewTokens(testConfig(time.Hour))
	fake := &fakeSessionStore{findErr: gorm.ErrRecordNotFound}

	claims, err := tokens.Parse(mintFor(t, tokens, testCompany(), "tok"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if err := session.ReleaseIfCurrent(fake, claims); err != nil {
		t.Errorf("expected nil error for a missing account, got %v", err)
	}
}

// TestValidate_NoArtifact verifies that an absent artifact short-circuits
// to unauthenticated without touching storage.
func TestValidate_NoArtifact(t *testing.T) {
	tokens := session.NewTokens(testConfig(time.Hour))
	v := session.NewValidator(tokens, fakeSource{err: errors.New("storage must not be called")})

	result, err := v.Validate("")
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if result.Status != session.StatusUnauthenticated {
		t.Errorf("expected StatusUnauthenticated, got %s", result.Status)
	}
}
