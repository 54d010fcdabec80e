package middleware

import (
	"context"
	"net/http"

	"github.com/TaskHive/TH-Backend/internal/accounts"
	"github.com/TaskHive/TH-Backend/internal/session"
	"github.com/TaskHive/TH-Backend/internal/utils"
)

// RouteGuard is the fast path: it inspects the signed artifact locally and
// never touches storage. A request with no parseable artifact is bounced to
// login; otherwise the artifact's claims are trusted for routing and placed
// in the context. Staleness (signed in elsewhere) is deliberately not
// checked here — that is RequireSession's job, invoked deeper in the
// protected layout and by the poller.
func RouteGuard(tokens *session.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := tokens.Parse(session.ReadArtifact(r))
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), claims)))
		})
	}
}

// RedirectAuthenticated keeps signed-in clients off the login and signup
// pages.
func RedirectAuthenticated(tokens *session.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, err := tokens.Parse(session.ReadArtifact(r)); err == nil {
				http.Redirect(w, r, "/", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CompanyOnly restricts a route subtree to company accounts. A signed-in
// employee is sent to the dashboard root, not an error page.
func CompanyOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kind, ok := utils.GetAccountTypeFromContext(r.Context())
		if !ok || kind != accounts.KindCompany {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ManagerOnly restricts a route subtree to company users holding the
// Project Manager role.
func ManagerOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		kind, ok := utils.GetAccountTypeFromContext(r.Context())
		if !ok || kind != accounts.KindUser {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}
		role, ok := utils.GetRoleFromContext(r.Context())
		if !ok || role != accounts.RoleProjectManager {
			http.Redirect(w, r, "/dashboard", http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSession is the slow path: the storage-backed check that catches
// sessions superseded by a login elsewhere or cleared by sign-out. Stale
// sessions are routed through /signout so the client sees the
// signed-in-elsewhere flow; everything else unauthenticated goes to /login.
// A storage failure counts as unauthenticated — never fail open.
func RequireSession(validator *session.Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, _ := validator.Validate(session.ReadArtifact(r))
			switch result.Status {
			case session.StatusValid:
				next.ServeHTTP(w, r.WithContext(withClaims(r.Context(), result.Claims)))
			case session.StatusStale:
				http.Redirect(w, r, "/signout", http.StatusFound)
			default:
				http.Redirect(w, r, "/login", http.StatusFound)
			}
		})
	}
}

func withClaims(ctx context.Context, claims *session.Claims) context.Context {
	ctx = context.WithValue(ctx, utils.ContextAccountIDKey, claims.Subject)
	ctx = context.WithValue(ctx, utils.ContextAccountTypeKey, claims.AccountType)
	return context.WithValue(ctx, utils.ContextRoleKey, claims.Role)
}

var allowed = map[string]struct{}{
	"http://localhost:3000":    {},
	"http://localhost:5173":    {},
	"https://app.taskhive.dev": {},
	"https://taskhive.dev":     {},
}

func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		// Echo the origin back only if it's on our allow-list
		if _, ok := allowed[origin]; ok {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin") // important for caches
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods",
				"GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers",
				"Content-Type, Authorization")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
