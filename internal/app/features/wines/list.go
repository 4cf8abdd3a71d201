// internal/app/features/wines/list.go
package wines

import (
	"context"
	"net/http"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oakbarrel/cellar/internal/app/system/paging"
	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
	"github.com/oakbarrel/cellar/internal/domain/models"
)

// ServeList handles GET /wines with optional ?status=, ?winery=, ?region=,
// ?type=, ?search=, and offset pagination. Newest first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	p := paging.Parse(r)

	filter := bson.M{}
	if status := query.Get(r, "status"); status != "" {
		filter["status"] = status
	}
	if winery := query.Get(r, "winery"); winery != "" {
		oid, err := primitive.ObjectIDFromHex(winery)
		if err != nil {
			webapi.BadRequest(w, "Invalid winery filter.")
			return
		}
		filter["winery_id"] = oid
	}
	// Filters accept the same spellings create/update does.
	if region := query.Get(r, "region"); region != "" {
		filter["region"] = models.CanonicalRegion(region)
	}
	if wtype := query.Get(r, "type"); wtype != "" {
		filter["type"] = models.CanonicalWineType(wtype)
	}
	if q := query.Get(r, "search"); q != "" {
		for k, v := range searchFilter(q) {
			filter[k] = v
		}
	}
	restrictToPublished(r, filter)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	total, err := h.Wines.Count(ctx, filter)
	if err != nil {
		webapi.ServerError(w, h.Log, "count wines failed", err)
		return
	}

	find := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(p.Limit64())

	wines, err := h.Wines.Find(ctx, filter, find)
	if err != nil {
		webapi.ServerError(w, h.Log, "find wines failed", err)
		return
	}
	if wines == nil {
		wines = []models.Wine{}
	}

	webapi.List(w, wines, len(wines), total, p.TotalPages(total), p.Page)
}
