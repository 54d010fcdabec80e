package teams

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts under the artifact-only route guard. Reads trust the
// signed claims; mutations take the storage-backed check on top.
func SetupRoutes(requireSession, companyOnly, managerOnly func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(companyOnly)
		r.Get("/", ListTeamsHandler)

		r.Group(func(r chi.Router) {
			r.Use(requireSession)
			r.Post("/", CreateTeamHandler)
			r.Delete("/{id}", DeleteTeamHandler)
		})
	})

	r.With(managerOnly).Get("/my-team", MyTeamHandler)

	return r
}
