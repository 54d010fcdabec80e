package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"

	"github.com/TaskHive/TH-Backend/internal/accounts"
	"github.com/TaskHive/TH-Backend/internal/db"
	"github.com/TaskHive/TH-Backend/internal/middleware"
	"github.com/TaskHive/TH-Backend/internal/oauth"
	"github.com/TaskHive/TH-Backend/internal/passwordreset"
	"github.com/TaskHive/TH-Backend/internal/projects"
	"github.com/TaskHive/TH-Backend/internal/session"
	"github.com/TaskHive/TH-Backend/internal/tasks"
	"github.com/TaskHive/TH-Backend/internal/teams"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found (this is fine in production)")
	}

	db.Connect()

	accounts.Init()
	teams.Init()
	projects.Init()
	tasks.Init()
	session.Init()

	routeGuard := middleware.RouteGuard(session.CurrentTokens())
	requireSession := middleware.RequireSession(session.CurrentValidator())
	redirectAuthenticated := middleware.RedirectAuthenticated(session.CurrentTokens())

	r := chi.NewRouter()
	r.Use(middleware.CORSMiddleware)

	r.Get("/", RootHandler)

	// Session endpoints stay outside the guard: login must be reachable
	// signed-out, and /validate reports rather than redirects.
	r.With(redirectAuthenticated).Get("/login", LoginPageHandler)
	r.With(redirectAuthenticated).Get("/signup", SignupPageHandler)
	r.Get("/signout", session.SignoutHandler)
	r.Mount("/api/session", session.SetupRoutes())
	r.Mount("/api/oauth", oauth.SetupRoutes())
	r.Mount("/api/auth", passwordreset.SetupRoutes())
	r.Mount("/api/company", accounts.SetupRoutes(requireSession, middleware.CompanyOnly))

	// Everything behind the guard rides on the artifact's claims; the
	// storage-backed check is layered on inside each feature where it
	// matters.
	r.Group(func(r chi.Router) {
		r.Use(routeGuard)
		r.With(requireSession).Get("/api/me", session.MeHandler)
		r.Mount("/api/teams", teams.SetupRoutes(requireSession, middleware.CompanyOnly, middleware.ManagerOnly))
		r.Mount("/api/projects", projects.SetupRoutes(requireSession, middleware.CompanyOnly))
		r.Mount("/api/tasks", tasks.SetupRoutes(requireSession, middleware.ManagerOnly))
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Println("Server running on port " + port)
	log.Fatal(http.ListenAndServe(":"+port, r))
}

func RootHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("TaskHive API is live"))
}

// LoginPageHandler and SignupPageHandler exist so RedirectAuthenticated has
// server-side pages to wrap; the SPA serves the real forms.
func LoginPageHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Sign in to TaskHive"))
}

func SignupPageHandler(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Create your TaskHive account"))
}
