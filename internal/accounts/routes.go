package accounts

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes wires the account endpoints. The session middlewares are
// injected by main to keep this package below the session layer.
func SetupRoutes(requireSession, companyOnly func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Post("/signup", SignupCompanyHandler)
	r.Post("/users/signup", SignupCompanyUserHandler)
	r.Get("/check", CheckCompanyHandler)

	r.Group(func(r chi.Router) {
		r.Use(requireSession)
		r.Delete("/account", DeleteAccountHandler)

		r.Group(func(r chi.Router) {
			r.Use(companyOnly)
			r.Get("/users", ListCompanyUsersHandler)
		})
	})

	return r
}
