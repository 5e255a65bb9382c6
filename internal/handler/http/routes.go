package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// compressionLevel is the gzip level used for JSON and text responses.
const compressionLevel = 5

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.withMetrics)
	router.Use(middleware.Compress(compressionLevel, "application/json", "text/plain"))

	router.Get("/api/version", h.getServerVersion)
	if h.metrics != nil {
		router.Method("GET", "/metrics", h.metrics.Handler())
	}

	router.Group(func(r chi.Router) {
		if h.requestTimeout > 0 {
			r.Use(middleware.Timeout(h.requestTimeout))
		}
		r.Use(h.withSession)

		// routes without authorization
		r.Post("/api/user", h.register)
		r.Post("/api/login", h.login)
		r.Delete("/api/password", h.resetPassword)

		// routes with authorization
		r.Group(func(r chi.Router) {
			r.Use(h.requireAuthenticated)

			r.Get("/api/logout", h.logout)
			r.Post("/api/logout", h.logout)
			r.Put("/api/password", h.changePassword)

			r.Post("/api/post", h.makePost)
			r.Get("/api/post", h.getPosts)
			r.Put("/api/post", h.editPost)
			r.Delete("/api/post", h.deletePost)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
