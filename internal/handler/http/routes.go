package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withSession)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.With(h.withCSRF).Post("/api/auth/login", h.login)
		r.With(h.withCSRF).Post("/api/auth/logout", h.logout)

		r.Get("/api/auth/login", h.loginPage)

		r.Get("/api/register/start", h.registerStart)
		r.Get("/api/register/step/{step}", h.stepGet)
		r.With(h.withCSRF).Post("/api/register/step/{step}", h.stepPost)
	})

	// member-only routes
	router.Group(func(r chi.Router) {
		r.Use(h.requireMember)
		r.Get("/api/members", h.members)
		r.Get("/api/profile", h.profileGet)
		r.With(h.withCSRF).Post("/api/profile", h.profileUpdate)
		r.With(h.withCSRF).Post("/api/profile/delete", h.profileDelete)
	})

	uploads := http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.uploadsDir)))
	router.Get("/uploads/*", uploads.ServeHTTP)

	return router
}
