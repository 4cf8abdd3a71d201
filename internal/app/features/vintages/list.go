// internal/app/features/vintages/list.go
package vintages

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/oakbarrel/cellar/internal/app/system/paging"
	"github.com/oakbarrel/cellar/internal/app/system/timeouts"
	"github.com/oakbarrel/cellar/internal/app/system/webapi"
	"github.com/oakbarrel/cellar/internal/domain/models"
)

// ServeList handles GET /vintages with optional ?status=, ?wine=, ?year=,
// and offset pagination. Newest year first.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	p := paging.Parse(r)

	filter := bson.M{}
	if status := query.Get(r, "status"); status != "" {
		filter["status"] = status
	}
	if wine := query.Get(r, "wine"); wine != "" {
		oid, err := primitive.ObjectIDFromHex(wine)
		if err != nil {
			webapi.BadRequest(w, "Invalid wine filter.")
			return
		}
		filter["wine_id"] = oid
	}
	if year := query.Get(r, "year"); year != "" {
		n, err := strconv.Atoi(year)
		if err != nil {
			webapi.BadRequest(w, "Invalid year filter.")
			return
		}
		filter["year"] = n
	}
	restrictToPublished(r, filter)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	total, err := h.Vintages.Count(ctx, filter)
	if err != nil {
		webapi.ServerError(w, h.Log, "count vintages failed", err)
		return
	}

	find := options.Find().
		SetSort(bson.D{{Key: "year", Value: -1}}).
		SetSkip(p.Skip()).
		SetLimit(p.Limit64())

	vintages, err := h.Vintages.Find(ctx, filter, find)
	if err != nil {
		webapi.ServerError(w, h.Log, "find vintages failed", err)
		return
	}
	if vintages == nil {
		vintages = []models.Vintage{}
	}

	webapi.List(w, vintages, len(vintages), total, p.TotalPages(total), p.Page)
}
