// internal/app/features/vintages/delete.go
package vintages

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oakbarrel/cellar/internal/app/policy/catalogpolicy"
	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
)

// HandleDelete handles DELETE /vintages/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	existing, err := h.Vintages.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		webapi.NotFound(w, "Vintage not found.")
		return
	}
	if err != nil {
		webapi.ServerError(w, h.Log, "get vintage failed", err)
		return
	}

	if !catalogpolicy.CanMutate(r, existing.CreatedBy, catalogpolicy.ActionDelete) {
		webapi.Forbidden(w, "")
		return
	}

	deleted, err := h.Vintages.Delete(ctx, id)
	if err != nil {
		webapi.ServerError(w, h.Log, "delete vintage failed", err)
		return
	}
	if deleted == 0 {
		webapi.NotFound(w, "Vintage not found.")
		return
	}

	webapi.OKMessage(w, nil, "Vintage deleted.")
}
