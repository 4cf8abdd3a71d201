// internal/app/features/wines/routes.go
package wines

import (
	"github.com/go-chi/chi/v5"

	"github.com/oakbarrel/cellar/internal/app/system/auth"
)

// Routes mounts all Wine routes under the base path (typically "/wines"
// from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	// Public reads (anonymous callers see published records only).
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeView)

	// Editor and admin writes; ownership is checked in the handlers.
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole("admin", "editor"))

		pr.Post("/", h.HandleCreate)
		pr.Put("/{id}", h.HandleUpdate)
		pr.Delete("/{id}", h.HandleDelete)

		pr.Post("/{id}/awards", h.HandleAddAward)
		pr.Put("/{id}/awards/{awardId}", h.HandleUpdateAward)
		pr.Delete("/{id}/awards/{awardId}", h.HandleRemoveAward)
	})

	return r
}
