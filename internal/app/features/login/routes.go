// internal/app/features/login/routes.go
package login

import (
	"github.com/go-chi/chi/v5"

	"github.com/oakbarrel/cellar/internal/app/system/auth"
)

// Routes mounts authentication routes under the base path (typically
// "/auth" from bootstrap).
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/login", h.HandleLogin)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Get("/me", h.ServeMe)
	})

	return r
}
