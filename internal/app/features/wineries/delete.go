// internal/app/features/wineries/delete.go
package wineries

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/oakbarrel/cellar/internal/app/policy/catalogpolicy"
	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
)

// HandleDelete handles DELETE /wineries/{id}. Winery deletion is admin-only
// regardless of authorship. A winery with wines still referencing it cannot
// be removed; the caller must delete or reassign the wines first.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if !catalogpolicy.CanDeleteWinery(r) {
		webapi.Forbidden(w, "")
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	n, err := h.Wines.CountByWinery(ctx, id)
	if err != nil {
		webapi.ServerError(w, h.Log, "count winery wines failed", err)
		return
	}
	if n > 0 {
		webapi.Conflict(w, "Cannot delete a winery that still has wines.")
		return
	}

	deleted, err := h.Wineries.Delete(ctx, id)
	if err != nil {
		webapi.ServerError(w, h.Log, "delete winery failed", err)
		return
	}
	if deleted == 0 {
		webapi.NotFound(w, "Winery not found.")
		return
	}

	h.Log.Info("winery deleted", zap.String("winery_id", id.Hex()))
	webapi.OKMessage(w, nil, "Winery deleted.")
}
