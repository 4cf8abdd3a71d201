// internal/app/features/vintages/routes.go
package vintages

import (
	"github.com/go-chi/chi/v5"

	"github.com/oakbarrel/cellar/internal/app/system/auth"
)

// Routes mounts all Vintage routes under the base path (typically
// "/vintages" from bootstrap).
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

		pr.Put("/{id}/assets/{assetType}", h.HandleSetAsset)
		pr.Delete("/{id}/assets/{assetType}", h.HandleClearAsset)
	})

	return r
}
