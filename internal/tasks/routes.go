package tasks

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SetupRoutes mounts under the artifact-only route guard. Reads trust the
// signed claims; mutations take the storage-backed check on top.
func SetupRoutes(requireSession, managerOnly func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(managerOnly)
		r.Get("/", ListTasksHandler)
		r.With(requireSession).Post("/", CreateTaskHandler)
	})

	r.Get("/my-tasks", MyTasksHandler)
	r.With(requireSession).Put("/my-tasks/{id}", UpdateMyTaskHandler)
	r.Get("/dashboard-stats", DashboardStatsHandler)

	return r
}
