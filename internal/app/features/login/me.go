// internal/app/features/login/me.go
package login

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oakbarrel/cellar/internal/app/system/auth"
	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
)

// ServeMe handles GET /auth/me. The token middleware has already verified
// the bearer token; this returns the full user document.
func (h *Handler) ServeMe(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		webapi.Unauthorized(w, "")
		return
	}
	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		webapi.Unauthorized(w, "")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, oid)
	if err == mongo.ErrNoDocuments {
		webapi.Unauthorized(w, "")
		return
	}
	if err != nil {
		webapi.ServerError(w, h.Log, "me: user lookup failed", err)
		return
	}

	webapi.OK(w, user)
}
