package oauth

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/TaskHive/TH-Backend/internal/accounts"
	"github.com/TaskHive/TH-Backend/internal/session"
	"github.com/go-chi/chi/v5"
)

var fetcher ProfileFetcher = NewGoogleFetcher()

type signInRequest struct {
	AccessToken string `json:"access_token"`
	CompanyName string `json:"company_name"`
}

// GoogleSignInHandler exchanges a provider access token for a session
// artifact. Token verification belongs to the provider; this handler only
// maps the vouched identity onto an account and issues the session.
func GoogleSignInHandler(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}
	if req.AccessToken == "" {
		http.Error(w, "Missing access token", http.StatusBadRequest)
		return
	}

	profile, err := fetcher.Fetch(req.AccessToken)
	if err != nil {
		if errors.Is(err, ErrProviderRejected) {
			http.Error(w, "Sign-in rejected", http.StatusUnauthorized)
			return
		}
		log.Printf("google profile fetch: %v", err)
		http.Error(w, "Sign-in failed", http.StatusBadGateway)
		return
	}

	account, err := CompleteSignIn(profile, req.CompanyName)
	if err != nil {
		if errors.Is(err, ErrNoCompanyMatch) {
			http.Error(w, "Sign-in rejected", http.StatusForbidden)
			return
		}
		log.Printf("oauth sign-in for %s: %v", profile.Email, err)
		http.Error(w, "Sign-in failed", http.StatusInternalServerError)
		return
	}

	artifact, err := session.CurrentIssuer().IssueFor(account)
	if err != nil {
		log.Printf("issue session for %s: %v", account.AccountID(), err)
		http.Error(w, "Sign-in failed", http.StatusInternalServerError)
		return
	}

	session.WriteArtifactCookie(w, session.CurrentConfig(), artifact)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"id":           account.AccountID(),
		"name":         account.DisplayName(),
		"email":        account.AccountEmail(),
		"account_type": account.Kind(),
		"role":         accounts.RoleOf(account),
	})
}

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Post("/google", GoogleSignInHandler)
	return r
}
