// internal/app/features/stockphotos/handler.go
package stockphotos

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/oakbarrel/cellar/internal/app/system/auth"
	"github.com/oakbarrel/cellar/internal/app/system/stockphoto"
	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
)

// Handler is the feature-level entry point for stock photo search.
type Handler struct {
	Photos *stockphoto.Client
	Log    *zap.Logger
}

// NewHandler constructs a stock photo handler over the provider client.
func NewHandler(client *stockphoto.Client, logger *zap.Logger) *Handler {
	return &Handler{Photos: client, Log: logger}
}

// Routes mounts the stock photo routes (typically "/stockphotos" from
// bootstrap). Search drives editorial workflows, so it is gated like any
// other write surface.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireRole("admin", "editor"))

	r.Get("/", h.ServeSearch)

	return r
}

// ServeSearch handles GET /stockphotos?query=. An unconfigured provider
// degrades to placeholder results rather than failing.
func (h *Handler) ServeSearch(w http.ResponseWriter, r *http.Request) {
	q := query.Get(r, "query")

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	photos, err := h.Photos.Search(ctx, q, 12)
	if err != nil {
		webapi.ServerError(w, h.Log, "stock photo search failed", err)
		return
	}

	webapi.OK(w, photos)
}
