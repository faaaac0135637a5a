package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the middleware stack and every route.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(h.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Healthz)

	r.Group(func(r chi.Router) {
		r.Use(h.LoadSession)

		r.Get("/", h.Home)
		r.Get("/register", h.RegisterForm)
		r.Post("/register", h.Register)
		r.Get("/login", h.LoginForm)
		r.Post("/login", h.Login)
		r.Get("/logout", h.Logout)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(h.RequireAuthenticated)
			r.Get("/dashboard", h.Dashboard)
			r.Post("/upload", h.Upload)
		})
	})

	return r
}
