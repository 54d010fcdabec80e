package passwordreset

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func SetupRoutes() http.Handler {
	r := chi.NewRouter()
	r.Post("/forgot-password", ForgotPasswordHandler)
	r.Post("/reset-password", ResetPasswordHandler)
	return r
}
