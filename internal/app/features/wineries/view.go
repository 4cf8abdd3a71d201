// internal/app/features/wineries/view.go
package wineries

import (
	"context"
	"net/http"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
	"github.com/oakbarrel/cellar/internal/domain/models"
)

// wineryDetail is a winery with its wines materialized. Wines reference the
// winery (not the reverse), so the back-reference is a second query.
type wineryDetail struct {
	models.Winery
	Wines []models.Wine `json:"wines"`
}

// ServeView handles GET /wineries/{id}.
func (h *Handler) ServeView(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	winery, err := h.Wineries.GetByID(ctx, id)
	if err == mongo.ErrNoDocuments {
		webapi.NotFound(w, "Winery not found.")
		return
	}
	if err != nil {
		webapi.ServerError(w, h.Log, "get winery failed", err)
		return
	}

	wines, err := h.Wines.Find(ctx, bson.M{"winery_id": id},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		webapi.ServerError(w, h.Log, "find winery wines failed", err)
		return
	}
	if wines == nil {
		wines = []models.Wine{}
	}

	webapi.OK(w, wineryDetail{Winery: winery, Wines: wines})
}
