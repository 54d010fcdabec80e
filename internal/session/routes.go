package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()

	r.Post("/login", LoginHandler)
	r.Post("/logout", LogoutHandler)
	r.Get("/validate", ValidateHandler)

	return r
}
