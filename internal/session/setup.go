package session

import (
	"log"

	"github.com/TaskHive/TH-Backend/internal/accounts"
)

var (
	cfg       Config
	tokens    *Tokens
	store     accounts.Store
	issuer    *Issuer
	validator *Validator
)

func Init() {
	cfg = LoadFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatal("Session config invalid: ", err)
	}

	tokens = NewTokens(cfg)
	store = accounts.Store{}
	issuer = NewIssuer(tokens, store)
	validator = NewValidator(tokens, store)
}

// CurrentTokens exposes the artifact parser for the route guard.
func CurrentTokens() *Tokens { return tokens }

// CurrentValidator exposes the storage-backed validator for middleware.
func CurrentValidator() *Validator { return validator }

// CurrentConfig exposes cookie configuration for middleware redirect paths.
func CurrentConfig() Config { return cfg }

// CurrentIssuer exposes artifact issuance for the OAuth sign-in path.
func CurrentIssuer() *Issuer { return issuer }
