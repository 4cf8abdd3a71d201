// internal/app/features/wines/delete.go
package wines

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/oakbarrel/cellar/internal/app/policy/catalogpolicy"
	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
)

// HandleDelete handles DELETE /wines/{id}, cascading to the wine's
// vintages.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	existing, err := h.Wines.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		webapi.NotFound(w, "Wine not found.")
		return
	}
	if err != nil {
		webapi.ServerError(w, h.Log, "get wine failed", err)
		return
	}

	if !catalogpolicy.CanMutate(r, existing.CreatedBy, catalogpolicy.ActionDelete) {
		webapi.Forbidden(w, "")
		return
	}

	deleted, err := h.Wines.DeleteCascade(ctx, h.Log, id)
	if err != nil {
		webapi.ServerError(w, h.Log, "delete wine failed", err)
		return
	}
	if deleted == 0 {
		webapi.NotFound(w, "Wine not found.")
		return
	}

	h.Log.Info("wine deleted with vintages", zap.String("wine_id", id.Hex()))
	webapi.OKMessage(w, nil, "Wine and its vintages deleted.")
}
