package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the HTTP surface. Route shapes mirror the frontend's
// expectations exactly.
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors)

	r.Get("/", h.home)
	r.Post("/createUserAccount", h.createUserAccount)
	r.Post("/validateUserLogin", h.validateUserLogin)

	r.Route("/entries", func(r chi.Router) {
		r.Post("/", h.createEntry)
		r.Get("/", h.listEntries)
		r.Route("/{entryID}", func(r chi.Router) {
			r.Get("/", h.getEntry)
			r.Put("/", h.updateEntry)
			r.Delete("/", h.deleteEntry)
		})
	})

	r.Get("/achievements/{accountID}", h.rankProgress)
	r.Get("/testEnv", h.testEnv)

	return r
}
