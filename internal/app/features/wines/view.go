// internal/app/features/wines/view.go
package wines

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
	"github.com/oakbarrel/cellar/internal/domain/models"
)

// wineDetail replaces the winery id with the populated winery document. The
// outer field shadows the embedded Wine's "winery" tag on purpose.
type wineDetail struct {
	models.Wine
	Winery *models.Winery `json:"winery"`
}

// ServeView handles GET /wines/{id}, populating the winery reference.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	wine, err := h.Wines.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		webapi.NotFound(w, "Wine not found.")
		return
	}
	if err != nil {
		webapi.ServerError(w, h.Log, "get wine failed", err)
		return
	}

	detail := wineDetail{Wine: wine}
	winery, err := h.Wineries.GetByID(ctx, wine.WineryID)
	if err == nil {
		detail.Winery = &winery
	} else if err != mongo.ErrNoDocuments {
		webapi.ServerError(w, h.Log, "get wine winery failed", err)
		return
	}

	webapi.OK(w, detail)
}
