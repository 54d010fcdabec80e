package projects

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts under the artifact-only route guard. The list read
// trusts the signed claims; mutations take the storage-backed check.
func SetupRoutes(requireSession, companyOnly func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(companyOnly)

	r.Get("/", ListProjectsHandler)

	r.Group(func(r chi.Router) {
		r.Use(requireSession)
		r.Post("/", CreateProjectHandler)
		r.Delete("/{id}", DeleteProjectHandler)
	})

	return r
}
