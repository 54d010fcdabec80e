package session

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/TaskHive/TH-Backend/internal/accounts"
	"github.com/TaskHive/TH-Backend/internal/utils"
)

type loginRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	AccountType string `json:"account_type"`
}

type loginResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	AccountType string `json:"account_type"`
	Role        string `json:"role,omitempty"`
}

func LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid Request Format", http.StatusBadRequest)
		return
	}

	if req.Email == "" || req.Password == "" {
		http.Error(w, "Email and password are required", http.StatusBadRequest)
		return
	}
	if req.AccountType == "" {
		req.AccountType = accounts.KindCompany
	}

	artifact, account, err := issuer.Login(req.Email, req.Password, req.AccountType)
	if err != nil {
		switch {
		case errors.Is(err, ErrTooManyAttempts):
			http.Error(w, "Too many attempts, try again later", http.StatusTooManyRequests)
		case errors.Is(err, ErrInvalidCredentials):
			http.Error(w, "Invalid Credentials", http.StatusUnauthorized)
		default:
			log.Printf("login failed for %s account: %v", req.AccountType, err)
			http.Error(w, "Login failed", http.StatusInternalServerError)
		}
		return
	}

	WriteArtifactCookie(w, cfg, artifact)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(loginResponse{
		ID:          account.AccountID(),
		Name:        account.DisplayName(),
		Email:       account.AccountEmail(),
		AccountType: account.Kind(),
		Role:        accounts.RoleOf(account),
	})
}

// LogoutHandler clears the stored active token and every session cookie.
// Idempotent: a missing, dead, or superseded artifact still gets its
// cookies cleared, but only the artifact holding the current token may
// null the stored one.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if raw := ReadArtifact(r); raw != "" {
		if claims, err := tokens.Parse(raw); err == nil {
			if err := ReleaseIfCurrent(store, claims); err != nil {
				log.Printf("clear session for %s: %v", claims.Subject, err)
			}
		}
	}

	ClearArtifactCookies(w, cfg)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"message": "Signed out"})
}

// SignoutHandler is the server side of the /signout flow: the stale-session
// redirect target. It clears every cookie and, when the artifact still
// holds the current token, the stored token too — a stale arrival here must
// not tear down the session of the login that superseded it.
func SignoutHandler(w http.ResponseWriter, r *http.Request) {
	if raw := ReadArtifact(r); raw != "" {
		if claims, err := tokens.Parse(raw); err == nil {
			if err := ReleaseIfCurrent(store, claims); err != nil {
				log.Printf("clear session for %s: %v", claims.Subject, err)
			}
		}
	}

	ClearArtifactCookies(w, cfg)
	http.Redirect(w, r, "/login", http.StatusFound)
}

// MeHandler backs the protected layout boundary. It sits behind the
// storage-backed check, so reaching it at all means the session is the
// account's current one; it just echoes who the caller is.
func MeHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}
	kind, _ := utils.GetAccountTypeFromContext(r.Context())

	account, err := store.FindByID(kind, id)
	if err != nil {
		log.Printf("load account %s: %v", id, err)
		http.Error(w, "Failed to load account", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(loginResponse{
		ID:          account.AccountID(),
		Name:        account.DisplayName(),
		Email:       account.AccountEmail(),
		AccountType: account.Kind(),
		Role:        accounts.RoleOf(account),
	})
}

// ValidateHandler is the poll endpoint. 200 {"valid":true} only when the
// artifact's embedded token still matches the stored active token; 401 on
// anything stale or unauthenticated; 500 when storage failed (fail closed).
func ValidateHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	result, err := validator.Validate(ReadArtifact(r))
	if err != nil {
		log.Printf("session validation storage error: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]bool{"valid": false})
		return
	}

	if result.Status != StatusValid {
		log.Printf("session validation rejected: %s", result.Status)
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]bool{"valid": false})
		return
	}

	json.NewEncoder(w).Encode(map[string]bool{"valid": true})
}
