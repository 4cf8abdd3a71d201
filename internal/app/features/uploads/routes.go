// internal/app/features/uploads/routes.go
package uploads

import (
	"github.com/go-chi/chi/v5"

	"github.com/oakbarrel/cellar/internal/app/system/auth"
)

// Routes mounts the upload routes under the base path (typically "/upload"
// from bootstrap). Uploads are writes, so the whole router is gated.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireRole("admin", "editor"))

	r.Post("/", h.HandleUpload)
	r.Post("/multiple", h.HandleUploadMultiple)
	r.Delete("/{filename}", h.HandleDelete)

	return r
}
