package session

import (
	"fmt"
	"time"

	"github.com/TaskHive/TH-Backend/internal/accounts"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed session artifact payload. SessionToken carries the
// opaque value copied from the account record at issuance; the validator
// compares it against the stored active token.
type Claims struct {
	Email        string `json:"email"`
	Name         string `json:"name"`
	AccountType  string `json:"account_type"`
	Role         string `json:"role,omitempty"`
	SessionToken string `json:"session_token"`
	jwt.RegisteredClaims
}

// Tokens signs and verifies session artifacts.
type Tokens struct {
	cfg Config
}

func NewTokens(cfg Config) *Tokens {
	return &Tokens{cfg: cfg}
}

// Mint builds and signs an artifact for the account embedding the freshly
// issued session token. Expiry is a fixed TTL from now.
func (t *Tokens) Mint(account accounts.Account, sessionToken string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email:        account.AccountEmail(),
		Name:         account.DisplayName(),
		AccountType:  account.Kind(),
		Role:         accounts.RoleOf(account),
		SessionToken: sessionToken,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.AccountID(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.TTL)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(t.cfg.Secret))
	if err != nil {
		return "", fmt.Errorf("sign session artifact: %w", err)
	}
	return signed, nil
}

// Parse verifies signature and expiry and returns the claims. Any failure
// collapses to ErrArtifactInvalid; the caller treats the request as
// unauthenticated.
func (t *Tokens) Parse(raw string) (*Claims, error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(raw, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(t.cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return nil, ErrArtifactInvalid
	}

	if claims.Subject == "" || claims.AccountType == "" || claims.SessionToken == "" {
		return nil, ErrArtifactInvalid
	}

	return &claims, nil
}
