// internal/app/features/vintages/view.go
package vintages

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
	"github.com/oakbarrel/cellar/internal/domain/models"
)

// vintageWine is the populated wine with its winery populated one level
// deeper.
type vintageWine struct {
	models.Wine
	Winery *models.Winery `json:"winery"`
}

// vintageDetail replaces the wine id with the populated wine document. The
// outer field shadows the embedded Vintage's "wine" tag on purpose.
type vintageDetail struct {
	models.Vintage
	Wine *vintageWine `json:"wine"`
}

// ServeView handles GET /vintages/{id}, populating the wine and its winery.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	vintage, err := h.Vintages.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		webapi.NotFound(w, "Vintage not found.")
		return
	}
	if err != nil {
		webapi.ServerError(w, h.Log, "get vintage failed", err)
		return
	}

	detail := vintageDetail{Vintage: vintage}
	wine, err := h.Wines.GetByID(ctx, vintage.WineID)
	if err == nil {
		pw := vintageWine{Wine: wine}
		winery, err := h.Wineries.GetByID(ctx, wine.WineryID)
		if err == nil {
			pw.Winery = &winery
		} else if err != mongo.ErrNoDocuments {
			webapi.ServerError(w, h.Log, "get vintage winery failed", err)
			return
		}
		detail.Wine = &pw
	} else if err != mongo.ErrNoDocuments {
		webapi.ServerError(w, h.Log, "get vintage wine failed", err)
		return
	}

	webapi.OK(w, detail)
}
